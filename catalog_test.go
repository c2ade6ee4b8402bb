/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}

	if catalog.Len() < 4 {
		t.Fatalf("expected at least 4 videos in the default catalog, got %d", catalog.Len())
	}

	v, ok := catalog.Lookup("dQw4w9WgXcQ")
	if !ok {
		t.Fatalf("expected default catalog to contain dQw4w9WgXcQ")
	}
	if v.Title == "" {
		t.Fatalf("expected a title for %s", v.ID)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
	}{
		{"videos.yaml", "- id: a1\n  title: First\n- id: b2\n  title: Second\n"},
		{"videos.json", `[{"id": "a1", "title": "First"}, {"id": "b2", "title": "Second"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatalf("write catalog: %v", err)
			}

			catalog, err := LoadCatalog(path)
			if err != nil {
				t.Fatalf("load catalog: %v", err)
			}

			videos := catalog.Videos()
			if len(videos) != 2 || videos[0].ID != "a1" || videos[1].Title != "Second" {
				t.Fatalf("unexpected videos: %+v", videos)
			}
		})
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("[]\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := LoadCatalog(empty); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}

	if _, err := LoadCatalog(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("id: [unterminated"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := LoadCatalog(broken); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name   string
		videos []Video
		want   error
	}{
		{"empty id", []Video{{ID: "", Title: "x"}}, ErrInvalidID},
		{"comma in id", []Video{{ID: "a,b", Title: "x"}}, ErrInvalidID},
		{"slash in id", []Video{{ID: "a/b", Title: "x"}}, ErrInvalidID},
		{"space in id", []Video{{ID: "a b", Title: "x"}}, ErrInvalidID},
		{"reserved id", []Video{{ID: "healthz", Title: "x"}}, ErrReservedID},
		{"reserved id any case", []Video{{ID: "Version", Title: "x"}}, ErrReservedID},
		{"missing title", []Video{{ID: "a", Title: "  "}}, ErrInvalidTitle},
		{"duplicate id", []Video{{ID: "a", Title: "x"}, {ID: "a", Title: "y"}}, ErrDuplicateID},
		{"duplicate title", []Video{{ID: "a", Title: "x"}, {ID: "b", Title: "x"}}, ErrDuplicateTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.videos)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCatalogWithout(t *testing.T) {
	catalog := lettersCatalog(t)

	got := catalog.Without("B", "D", "unknown")

	want := []string{"A", "C", "E"}
	if len(got) != len(want) {
		t.Fatalf("expected %d videos, got %d", len(want), len(got))
	}
	for i, v := range got {
		if v.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], v.ID)
		}
	}

	if n := len(catalog.Without()); n != catalog.Len() {
		t.Fatalf("expected the full catalog, got %d videos", n)
	}
}

func TestCatalogVideosIsACopy(t *testing.T) {
	catalog := lettersCatalog(t)

	videos := catalog.Videos()
	videos[0].Title = "changed"

	if v, _ := catalog.Lookup("A"); v.Title != "Alpha" {
		t.Fatalf("catalog was modified through Videos: %q", v.Title)
	}
}
