// Package slug derives unique, URL-safe identifiers from content titles.
package slug

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	// suffixLen is the length of the random hex disambiguator appended on
	// collision.
	suffixLen = 8

	// defaultAttempts bounds the number of suffixed candidates tried
	// before allocation gives up.
	defaultAttempts = 5

	// fallback is used when a title normalizes to an empty string.
	fallback = "untitled"
)

// ErrExhausted is returned when every candidate collided. Random suffixes
// colliding this often means storage or configuration is broken, so this
// is a server fault, not a user error.
var ErrExhausted = errors.New("slug: allocation attempts exhausted")

// Index reports whether a slug is already held by live content.
type Index interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// Allocator assigns unique slugs backed by an Index.
//
// The Index read is advisory only: two concurrent allocations can both see
// a candidate as free. The storage layer's UNIQUE constraint is the
// authority, and callers retry allocation when the subsequent write
// reports a duplicate.
type Allocator struct {
	index    Index
	attempts int
	randHex  func(n int) string
}

// NewAllocator creates an Allocator over the given index.
func NewAllocator(index Index) *Allocator {
	return &Allocator{
		index:    index,
		attempts: defaultAttempts,
		randHex:  randHex,
	}
}

// Slugify normalizes a title into a slug candidate: lowercase, keep only
// letters, digits, whitespace and hyphens, collapse whitespace/hyphen runs
// into a single hyphen, and trim leading/trailing hyphens.
//
// Pure and deterministic: the same title always yields the same candidate,
// and Slugify(Slugify(t)) == Slugify(t). Non-ASCII letters are kept and
// lowercased, so "Über uns" becomes "über-uns".
func Slugify(title string) string {
	var b strings.Builder
	pendingSep := false

	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		default:
			// Stripped characters do not act as separators:
			// "Hello, World!" -> "hello-world" (the comma is dropped,
			// the space separates).
		}
	}

	return b.String()
}

// Allocate returns a slug for the title that no post other than excludeID
// currently holds. Pass excludeID on update so a post keeps its own slug
// when the title is unchanged; pass "" on create.
//
// On collision a random 8-hex-char disambiguator is appended and the
// check retried, bounded by the attempt limit. Fails with ErrExhausted
// when every candidate collides.
func (a *Allocator) Allocate(ctx context.Context, title, excludeID string) (string, error) {
	candidate := Slugify(title)
	if candidate == "" {
		candidate = fallback
	}

	taken, err := a.index.SlugExists(ctx, candidate, excludeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}

	for i := 0; i < a.attempts; i++ {
		suffixed := candidate + "-" + a.randHex(suffixLen)

		taken, err := a.index.SlugExists(ctx, suffixed, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return suffixed, nil
		}
	}

	return "", ErrExhausted
}

// randHex returns n random lowercase hex characters.
func randHex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
