package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeIndex reports a fixed set of slugs as taken.
type fakeIndex struct {
	taken map[string]string // slug -> owning post ID
	calls int
	err   error
}

func (f *fakeIndex) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.taken[slug]
	if !ok {
		return false, nil
	}
	return owner != excludeID, nil
}

// TestSlugify verifies the normalization rules.
func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces --- and hyphens", "multiple-spaces-and-hyphens"},
		{"Already-a-slug", "already-a-slug"},
		{"MiXeD CaSe", "mixed-case"},
		{"Über uns", "über-uns"},
		{"Café & Restaurant", "café-restaurant"},
		{"C++ in 10 Tagen", "c-in-10-tagen"},
		{"100% legal?", "100-legal"},
		{"snake_case_title", "snakecasetitle"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

// TestSlugifyIdempotent verifies slugifying a slug changes nothing.
func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{"Hello, World!", "Über uns", "Multiple   spaces", "plain"}

	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify(%q) = %q, but Slugify of that = %q", title, once, twice)
		}
	}
}

// TestAllocateFree verifies an unclaimed candidate is returned unchanged.
func TestAllocateFree(t *testing.T) {
	a := NewAllocator(&fakeIndex{})

	got, err := a.Allocate(context.Background(), "Hello World", "")
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("expected %q, got %q", "hello-world", got)
	}
}

// TestAllocateCollision verifies a taken candidate gets a random suffix
// while the base stays intact.
func TestAllocateCollision(t *testing.T) {
	idx := &fakeIndex{taken: map[string]string{"hello-world": "other-post"}}
	a := NewAllocator(idx)

	got, err := a.Allocate(context.Background(), "Hello World", "")
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	if !strings.HasPrefix(got, "hello-world-") {
		t.Fatalf("expected suffixed variant of hello-world, got %q", got)
	}

	suffix := strings.TrimPrefix(got, "hello-world-")
	if len(suffix) != suffixLen {
		t.Errorf("expected %d-char suffix, got %q", suffixLen, suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("expected hex suffix, got %q", suffix)
		}
	}
}

// TestAllocateExcludesOwnPost verifies a post keeps its own slug on update.
func TestAllocateExcludesOwnPost(t *testing.T) {
	idx := &fakeIndex{taken: map[string]string{"hello-world": "post-1"}}
	a := NewAllocator(idx)

	got, err := a.Allocate(context.Background(), "Hello World", "post-1")
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("expected unchanged slug %q, got %q", "hello-world", got)
	}
}

// TestAllocateEmptyTitle verifies empty candidates fall back to "untitled".
func TestAllocateEmptyTitle(t *testing.T) {
	a := NewAllocator(&fakeIndex{})

	for _, title := range []string{"", "!!!", "???"} {
		got, err := a.Allocate(context.Background(), title, "")
		if err != nil {
			t.Fatalf("Allocate(%q) failed: %v", title, err)
		}
		if got != "untitled" {
			t.Errorf("Allocate(%q) = %q, want %q", title, got, "untitled")
		}
	}
}

// TestAllocateExhausted verifies allocation gives up after the attempt
// limit when every candidate is reported taken.
func TestAllocateExhausted(t *testing.T) {
	calls := 0
	a := NewAllocator(indexFunc(func(_ context.Context, _, _ string) (bool, error) {
		calls++
		return true, nil
	}))

	_, err := a.Allocate(context.Background(), "Hello World", "")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}

	// One base probe plus the bounded suffix probes
	if calls != defaultAttempts+1 {
		t.Errorf("expected %d probes, got %d", defaultAttempts+1, calls)
	}
}

// TestAllocateIndexError verifies index failures propagate.
func TestAllocateIndexError(t *testing.T) {
	idx := &fakeIndex{err: fmt.Errorf("database is locked")}
	a := NewAllocator(idx)

	if _, err := a.Allocate(context.Background(), "Hello World", ""); err == nil {
		t.Errorf("expected index error to propagate")
	}
}

// indexFunc adapts a function to the Index interface.
type indexFunc func(ctx context.Context, slug, excludeID string) (bool, error)

func (f indexFunc) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	return f(ctx, slug, excludeID)
}
