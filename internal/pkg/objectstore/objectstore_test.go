package objectstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestPutUsesPrefixedKey(t *testing.T) {
	fake := &fakePutter{}
	c := NewWithAPI(fake, "backups", "/folio/")
	key, err := c.Put(context.Background(), "2024/snapshot.json", "application/json", []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "folio/2024/snapshot.json" {
		t.Fatalf("key = %q", key)
	}
	if aws.ToString(fake.input.Bucket) != "backups" || aws.ToString(fake.input.ContentType) != "application/json" {
		t.Fatalf("unexpected input %+v", fake.input)
	}
	if aws.ToInt64(fake.input.ContentLength) != int64(len(fake.body)) || string(fake.body) != `{"ok":true}` {
		t.Fatalf("body mismatch: %q", fake.body)
	}
}

func TestPutWrapsErrors(t *testing.T) {
	cause := errors.New("denied")
	c := NewWithAPI(&fakePutter{err: cause}, "b", "")
	if _, err := c.Put(context.Background(), "x.json", "", nil); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(Options{Bucket: "b", Region: "us-east-1"}); err == nil {
		t.Fatal("expected error without credentials")
	}
	c, err := New(Options{Bucket: "b", Region: "auto", AccessKeyID: "k", SecretAccessKey: "s", Endpoint: "minio.local:9000"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Bucket() != "b" {
		t.Fatalf("bucket = %q", c.Bucket())
	}
}
