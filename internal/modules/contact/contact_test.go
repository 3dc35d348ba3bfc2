package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"github.com/folio-space/core/internal/pkg/mail"
	"github.com/folio-space/core/internal/store/memory"
	"github.com/folio-space/core/internal/store/storetest"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	router *gin.Engine
	svc    *Service
}

func newFixture(t *testing.T, mailer *mail.Sender) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := memory.New(memory.Options{Now: storetest.Clock()})
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	log := zap.NewNop()
	svc := NewService(st.Messages(), mailer, log)
	r := gin.New()
	api := r.Group("/api")
	NewHandler(svc, log).RegisterRoutes(api, api.Group("/admin"))
	return fixture{router: r, svc: svc}
}

func (f fixture) do(t *testing.T, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

type message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

func TestCreateThenList(t *testing.T) {
	f := newFixture(t, nil)

	code, env := f.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@example.com","message":"Hello there, nice site!"}`)
	if code != http.StatusCreated || !env.Success || env.Message != msgSent {
		t.Fatalf("create = %d %+v", code, env)
	}
	var created message
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.IsRead || created.CreatedAt == "" {
		t.Fatalf("created = %+v", created)
	}

	code, env = f.do(t, http.MethodGet, "/api/admin/messages", "")
	if code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	var list []message
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].IsRead {
		t.Fatalf("list = %+v", list)
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t, nil)

	code, env := f.do(t, http.MethodPost, "/api/contact", `{"name":"A","email":"nope","message":"short"}`)
	if code != http.StatusBadRequest || env.Success {
		t.Fatalf("create = %d %+v", code, env)
	}
	for _, want := range []string{"name", "email", "message"} {
		if !strings.Contains(env.Message, want) {
			t.Errorf("message %q does not mention %s", env.Message, want)
		}
	}

	items, err := f.svc.List(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("stored %d messages, err %v", len(items), err)
	}
}

func TestMarkReadAndDelete(t *testing.T) {
	f := newFixture(t, nil)
	_, env := f.do(t, http.MethodPost, "/api/contact",
		`{"name":"Grace","email":"grace@example.com","message":"Let us build a compiler."}`)
	var created message
	_ = json.Unmarshal(env.Data, &created)

	code, env := f.do(t, http.MethodPatch, "/api/admin/messages/"+created.ID+"/read", "")
	if code != http.StatusOK {
		t.Fatalf("read = %d %+v", code, env)
	}
	var updated message
	_ = json.Unmarshal(env.Data, &updated)
	if !updated.IsRead || updated.CreatedAt != created.CreatedAt {
		t.Fatalf("updated = %+v", updated)
	}

	if code, _ := f.do(t, http.MethodDelete, "/api/admin/messages/"+created.ID, ""); code != http.StatusOK {
		t.Fatalf("delete = %d", code)
	}
	if code, _ := f.do(t, http.MethodGet, "/api/admin/messages/"+created.ID, ""); code != http.StatusNotFound {
		t.Fatalf("get after delete = %d", code)
	}
	if code, _ := f.do(t, http.MethodDelete, "/api/admin/messages/"+created.ID, ""); code != http.StatusNotFound {
		t.Fatalf("second delete = %d", code)
	}
}

func TestCreateSendsNotification(t *testing.T) {
	var mu sync.Mutex
	var sent []string
	mailer := mail.New(mail.Config{Enable: true, Host: "smtp.example.com", Port: 587, From: "site@example.com", NotifyTo: "me@example.com"}).
		WithSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, string(msg))
			return nil
		})
	f := newFixture(t, mailer)

	code, _ := f.do(t, http.MethodPost, "/api/contact",
		`{"name":"Linus","email":"linus@example.com","message":"Patches welcome on the list."}`)
	if code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}
	f.svc.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 1 || !strings.Contains(sent[0], "Patches welcome") {
		t.Fatalf("sent = %v", sent)
	}
}
