package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/models"
)

func TestDecodeContactMessage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIssue string
	}{
		{"valid", `{"name":"Ada","email":"ada@example.com","message":"Hello there, friend"}`, ""},
		{"short name", `{"name":"A","email":"ada@example.com","message":"Hello there, friend"}`, "name must be at least 2 characters"},
		{"bad email", `{"name":"Ada","email":"nope","message":"Hello there, friend"}`, "email must be a valid email address"},
		{"short message", `{"name":"Ada","email":"ada@example.com","message":"hi"}`, "message must be at least 10 characters"},
		{"empty body", ``, "name is required"},
		{"malformed", `{"name":`, "valid JSON"},
		{"wrong type", `{"name":12,"email":"ada@example.com","message":"Hello there, friend"}`, "name must be of type string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[CreateContactMessage]([]byte(tt.body))
			if tt.wantIssue == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Name != "Ada" {
					t.Fatalf("name = %q", got.Name)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantIssue) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.wantIssue)
			}
		})
	}
}

func TestValidationErrorCombinesIssues(t *testing.T) {
	_, err := Decode[CreateContactMessage]([]byte(`{"name":"A","email":"x","message":"short"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Validation error: name must be at least 2 characters; email must be a valid email address; message must be at least 10 characters"
	if err.Error() != want {
		t.Fatalf("got %q\nwant %q", err.Error(), want)
	}
}

func TestBlogSlugRule(t *testing.T) {
	base := `{"title":"Hello","excerpt":"A short excerpt","content":"` + strings.Repeat("x", 60) + `","slug":"%s"}`
	tests := []struct {
		slug string
		ok   bool
	}{
		{"hello-world", true},
		{"post-2024", true},
		{"Hello-World", false},
		{"hello world", false},
		{"hello_world", false},
		{"ab", false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			_, err := Decode[CreateBlogPost]([]byte(strings.Replace(base, "%s", tt.slug, 1)))
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateBlogPostOnlyChecksPresentFields(t *testing.T) {
	p, err := Decode[UpdateBlogPost]([]byte(`{"published":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	post := models.BlogPost{Title: "Keep", Slug: "keep"}
	p.Apply(&post)
	if !post.Published || post.Title != "Keep" || post.Slug != "keep" {
		t.Fatalf("unexpected merge result %+v", post)
	}

	if _, err := Decode[UpdateBlogPost]([]byte(`{"slug":"Bad Slug"}`)); !IsValidationError(err) {
		t.Fatalf("expected validation error for bad slug, got %v", err)
	}
	if _, err := Decode[UpdateBlogPost]([]byte(`{"title":""}`)); !IsValidationError(err) {
		t.Fatalf("expected validation error for empty title, got %v", err)
	}
}

func TestCreateSkillDefaults(t *testing.T) {
	p, err := Decode[CreateSkill]([]byte(`{"name":"Go","category":"backend"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	skill := p.Model()
	if skill.Proficiency != DefaultProficiency || skill.Icon != "" {
		t.Fatalf("unexpected defaults %+v", skill)
	}

	p, err = Decode[CreateSkill]([]byte(`{"name":"Go","category":"backend","proficiency":0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model().Proficiency != 0 {
		t.Fatalf("explicit zero proficiency was replaced")
	}

	for _, body := range []string{
		`{"name":"Go","category":"backend","proficiency":101}`,
		`{"name":"Go","category":"backend","proficiency":-1}`,
		`{"name":"G","category":"backend"}`,
		`{"name":"Go"}`,
	} {
		if _, err := Decode[CreateSkill]([]byte(body)); !IsValidationError(err) {
			t.Errorf("%s: expected validation error, got %v", body, err)
		}
	}
}

func TestProjectURLs(t *testing.T) {
	ok := `{"title":"Folio","description":"A portfolio site","githubUrl":"https://github.com/x/y","liveUrl":""}`
	if _, err := Decode[CreateProject]([]byte(ok)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := `{"title":"Folio","description":"A portfolio site","githubUrl":"github.com/x/y"}`
	_, err := Decode[CreateProject]([]byte(bad))
	if err == nil || !strings.Contains(err.Error(), "githubUrl must be a valid URL") {
		t.Fatalf("expected githubUrl error, got %v", err)
	}

	p, err := Decode[UpdateProject]([]byte(`{"liveUrl":""}`))
	if err != nil {
		t.Fatalf("clearing liveUrl: %v", err)
	}
	project := models.Project{LiveURL: "https://example.com"}
	p.Apply(&project)
	if project.LiveURL != "" {
		t.Fatalf("liveUrl not cleared")
	}
}

func TestCertificateRules(t *testing.T) {
	_, err := Decode[CreateCertificate]([]byte(`{"title":"CKA","issuer":"C"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, issue := range []string{"issuer must be at least 2 characters", "issueDate is required"} {
		if !strings.Contains(err.Error(), issue) {
			t.Errorf("error %q missing %q", err.Error(), issue)
		}
	}
}

func TestHomeContentApplyMerges(t *testing.T) {
	p, err := Decode[HomeContentInput]([]byte(`{"heroTitle":"Hi"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home := models.HomeContent{HeroTitle: "Old", CtaText: "Contact"}
	p.Apply(&home)
	if home.HeroTitle != "Hi" || home.CtaText != "Contact" {
		t.Fatalf("unexpected merge %+v", home)
	}
}

func TestDecodeReader(t *testing.T) {
	got, err := DecodeReader[Login](strings.NewReader(`{"password":"admin123"}`))
	if err != nil || got.Password != "admin123" {
		t.Fatalf("DecodeReader = %+v, %v", got, err)
	}
	if _, err := DecodeReader[Login](nil); !IsValidationError(err) {
		t.Fatalf("nil reader err = %v", err)
	}
}
