package model

import "time"

// Favorite marks a document as liked by a user. At most one exists per
// (UserID, DocumentID) pair.
type Favorite struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	DocumentID string    `json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}
