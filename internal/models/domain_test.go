package models

import (
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		" Posts ":  KindPost,
		"blog":     KindPost,
		"project":  KindProject,
		"WORK":     KindProject,
		"projects": KindProject,
	}
	for raw, want := range tests {
		got, err := ParseKind(raw)
		if err != nil {
			t.Fatalf("parse kind %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("expected %q for %q, got %q", want, raw, got)
		}
	}

	if _, err := ParseKind("pages"); err == nil {
		t.Fatal("expected invalid kind error")
	}
	if _, err := ParseKind(""); err == nil {
		t.Fatal("expected missing kind error")
	}
}

func TestParseTheme(t *testing.T) {
	got, err := ParseTheme(" DARK ")
	if err != nil {
		t.Fatalf("parse theme: %v", err)
	}
	if got != ThemeDark {
		t.Fatalf("expected %q, got %q", ThemeDark, got)
	}
	if got.Toggle() != ThemeLight {
		t.Fatalf("expected dark to toggle to light")
	}
	if ThemeLight.Toggle() != ThemeDark {
		t.Fatalf("expected light to toggle to dark")
	}

	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatal("expected invalid theme error")
	}
}

func TestRecordPath(t *testing.T) {
	post := Record{Kind: KindPost, Category: "design", Slug: "type-scale", Date: time.Now()}
	if got := post.Path(); got != "/blog/design/type-scale" {
		t.Fatalf("unexpected post path %q", got)
	}
	if got := post.Key(); got != "design/type-scale" {
		t.Fatalf("unexpected key %q", got)
	}

	project := Record{Kind: KindProject, Category: "branding", Slug: "north-star"}
	if got := project.Path(); got != "/work/branding/north-star" {
		t.Fatalf("unexpected project path %q", got)
	}
}

func TestRecordPathEscapesSegments(t *testing.T) {
	tests := []struct {
		record Record
		want   string
	}{
		{Record{Kind: KindPost, Category: "web", Slug: "my post"}, "/blog/web/my%20post"},
		{Record{Kind: KindPost, Category: "web", Slug: "100%-done"}, "/blog/web/100%25-done"},
		{Record{Kind: KindProject, Category: "print & type", Slug: "a?b"}, "/work/print%20&%20type/a%3Fb"},
	}
	for _, tt := range tests {
		if got := tt.record.Path(); got != tt.want {
			t.Fatalf("Path(%q/%q) = %q, want %q", tt.record.Category, tt.record.Slug, got, tt.want)
		}
	}
}
