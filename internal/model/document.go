package model

import (
	"fmt"
	"strings"
	"time"
)

// Visibility controls who may see a document besides its owner.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// ParseVisibility accepts "private" or "public" in any case.
// An empty string yields VisibilityPrivate.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(VisibilityPrivate):
		return VisibilityPrivate, nil
	case string(VisibilityPublic):
		return VisibilityPublic, nil
	default:
		return "", fmt.Errorf("unknown visibility %q", s)
	}
}

// Document represents an uploaded file.
// This is a pure domain model with no database-specific dependencies or tags.
// Name is the filename supplied by the uploader; StorageKey is the system-chosen
// name under which the bytes live in object storage.
type Document struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	StorageKey  string     `json:"storage_key"`
	Size        int64      `json:"size"`
	ContentType string     `json:"content_type"`
	Visibility  Visibility `json:"visibility"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsPublic reports whether the document is listed for every user.
func (d *Document) IsPublic() bool {
	return d.Visibility == VisibilityPublic
}

// VisibleTo reports whether p may see the document.
func (d *Document) VisibleTo(p Principal) bool {
	if d.IsPublic() {
		return true
	}
	return !p.IsAnonymous() && p.UserID == d.OwnerID
}

// SizeKiB is the display size: whole kibibytes, rounded down.
// It is lossy and must never be written back.
func (d *Document) SizeKiB() int64 {
	return d.Size / 1024
}

// PublicDocument is a public document joined with its owner for display.
type PublicDocument struct {
	Document
	Owner UserSummary `json:"owner"`
}
