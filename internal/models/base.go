package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by every collection entity (pointer receiver).
type Record interface {
	GetID() string
	GetCreatedAt() time.Time
	SetIdentity(id string, createdAt time.Time)
	PrepareCreate(now time.Time)
	PrepareUpdate(now time.Time)
}

// Base carries the generated id and creation time shared by all collection entities.
type Base struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index;autoCreateTime:false"`
}

func (b *Base) GetID() string { return b.ID }

func (b *Base) GetCreatedAt() time.Time { return b.CreatedAt }

func (b *Base) SetIdentity(id string, createdAt time.Time) {
	b.ID = id
	b.CreatedAt = createdAt
}

func (b *Base) PrepareCreate(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = now
}

func (b *Base) PrepareUpdate(time.Time) {}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// TrackedBase adds an updatedAt column refreshed on every update.
type TrackedBase struct {
	Base
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (b *TrackedBase) PrepareCreate(now time.Time) {
	b.Base.PrepareCreate(now)
	b.UpdatedAt = now
}

func (b *TrackedBase) PrepareUpdate(now time.Time) {
	b.UpdatedAt = now
}

// Singleton is implemented by content kinds that hold at most one row.
type Singleton interface {
	Stamp(key string, now time.Time)
}

// SingletonBase keys the single row of a content kind by a fixed id.
type SingletonBase struct {
	ID        string    `json:"id"        gorm:"type:varchar(16);primaryKey"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
}

func (s *SingletonBase) Stamp(key string, now time.Time) {
	s.ID = key
	s.UpdatedAt = now
}
