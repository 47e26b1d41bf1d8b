package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/model"
)

// FilesPrefix is where stored documents are downloadable.
const FilesPrefix = "/files/"

// messageResponse is the body of mutating endpoints.
type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// documentView is the public JSON shape of a document. Size is in KiB.
type documentView struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	DocumentLink string             `json:"document_link"`
	DocSize      int64              `json:"doc_size"`
	Visibility   model.Visibility   `json:"visibility"`
	ContentType  string             `json:"content_type"`
	CreatedAt    time.Time          `json:"created_at"`
	Owner        *model.UserSummary `json:"owner,omitempty"`
	Favorited    *bool              `json:"favorited,omitempty"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func newDocumentView(d *model.Document) documentView {
	return documentView{
		ID:           d.ID,
		Name:         d.Name,
		DocumentLink: FilesPrefix + d.StorageKey,
		DocSize:      d.SizeKiB(),
		Visibility:   d.Visibility,
		ContentType:  d.ContentType,
		CreatedAt:    d.CreatedAt,
	}
}

func documentViews(docs []model.Document) []documentView {
	out := make([]documentView, 0, len(docs))
	for i := range docs {
		out = append(out, newDocumentView(&docs[i]))
	}
	return out
}

func publicDocumentViews(docs []model.PublicDocument) []documentView {
	out := make([]documentView, 0, len(docs))
	for i := range docs {
		v := newDocumentView(&docs[i].Document)
		owner := docs[i].Owner
		v.Owner = &owner
		out = append(out, v)
	}
	return out
}

func writeMessage(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(messageResponse{Message: message, Data: data})
}
