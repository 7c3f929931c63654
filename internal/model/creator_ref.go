package model

import (
	"strings"

	"github.com/google/uuid"
)

// CreatorRef identifies the creator of a deposit record. Historically the
// column held either a typed user reference or a raw legacy string, so the
// two forms are kept side by side and normalized to one canonical string for
// comparison.
type CreatorRef struct {
	id    uuid.UUID
	raw   string
	typed bool
}

func NewCreatorRef(raw string) CreatorRef {
	trimmed := strings.TrimSpace(raw)
	if id, err := uuid.Parse(trimmed); err == nil {
		return CreatorRef{id: id, raw: trimmed, typed: true}
	}
	return CreatorRef{raw: trimmed}
}

func CreatorRefFromID(id uuid.UUID) CreatorRef {
	return CreatorRef{id: id, raw: id.String(), typed: true}
}

func (r CreatorRef) IsTyped() bool { return r.typed }

func (r CreatorRef) IsZero() bool { return !r.typed && r.raw == "" }

// String returns the canonical form: the lowercase UUID text for typed
// references, the raw string otherwise.
func (r CreatorRef) String() string {
	if r.typed {
		return r.id.String()
	}
	return r.raw
}

// Forms returns every stored spelling that should match this reference.
// Legacy rows may carry the original raw text while newer rows carry the
// canonical lowercase UUID.
func (r CreatorRef) Forms() []string {
	canonical := r.String()
	if r.raw != "" && r.raw != canonical {
		return []string{canonical, r.raw}
	}
	return []string{canonical}
}

// Matches reports whether a stored creator column value refers to the same
// creator, accepting either spelling.
func (r CreatorRef) Matches(stored string) bool {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return false
	}
	if id, err := uuid.Parse(stored); err == nil {
		stored = id.String()
	}
	for _, form := range r.Forms() {
		if stored == form {
			return true
		}
	}
	return false
}
