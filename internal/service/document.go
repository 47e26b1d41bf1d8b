package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"docshare/internal/model"
	"docshare/internal/naming"
	"docshare/internal/repository"
	"docshare/internal/storage"
)

// UploadInput describes one uploaded file.
type UploadInput struct {
	// Filename is the name supplied by the uploader. Only its extension
	// influences the storage key.
	Filename string
	Content  io.Reader
	// Size is the declared byte count, or -1 when unknown.
	Size int64
	// ContentType is what the client declared. It is kept as object
	// metadata only; the served type always comes from the extension.
	ContentType string
	// Visibility is "private" or "public"; empty means private.
	Visibility string
}

// DocumentOptions tune DocumentService behaviour.
type DocumentOptions struct {
	// PublicListingAnonymous lets anonymous principals list public documents.
	PublicListingAnonymous bool
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content, then records its metadata. When the record
	// cannot be saved the stored object is removed again.
	Upload(ctx context.Context, p model.Principal, in UploadInput) (*model.Document, error)

	// ListOwned returns the documents of ownerID, oldest first. Only the owner may list them.
	ListOwned(ctx context.Context, p model.Principal, ownerID string) ([]model.Document, error)

	// ListPublic returns every public document with its owner, oldest first.
	ListPublic(ctx context.Context, p model.Principal) ([]model.PublicDocument, error)

	// Get returns a document visible to p. Invisible documents are reported as ErrNotFound.
	Get(ctx context.Context, p model.Principal, id string) (*model.Document, error)

	// Open streams the content stored under key if p may see the document.
	Open(ctx context.Context, p model.Principal, key string) (io.ReadCloser, *model.Document, error)

	// PresignDownload returns a time-limited direct download URL for key.
	PresignDownload(ctx context.Context, p model.Principal, key string, expiry time.Duration) (string, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	db    repository.Querier
	store storage.Storage
	repo  repository.DocumentRepository
	alloc *naming.Allocator
	opts  DocumentOptions
	now   func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(db repository.Querier, store storage.Storage, repo repository.DocumentRepository, opts DocumentOptions) DocumentService {
	s := &documentService{
		db:    db,
		store: store,
		repo:  repo,
		opts:  opts,
		now:   time.Now,
	}
	s.alloc = naming.NewAllocator(func(ctx context.Context, key string) (bool, error) {
		return repo.StorageKeyExists(ctx, db, key)
	})
	return s
}

func (s *documentService) Upload(ctx context.Context, p model.Principal, in UploadInput) (_ *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Upload")
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	if in.Content == nil {
		return nil, ErrReaderNil
	}
	vis, err := model.ParseVisibility(in.Visibility)
	if err != nil {
		return nil, ErrInvalidVisibility
	}

	key, err := s.alloc.Allocate(ctx, in.Filename)
	switch {
	case errors.Is(err, naming.ErrUnsupportedExtension):
		return nil, fmt.Errorf("%w: allowed extensions are %s", ErrUnsupportedFileType, strings.Join(naming.AllowedExtensions(), ", "))
	case err != nil:
		return nil, fmt.Errorf("%w: allocate key: %w", ErrStorageWrite, err)
	}
	span.SetAttributes(attribute.String("document.storage_key", key))

	contentType := naming.ContentType(in.Filename)

	objInfo, err := s.store.Put(ctx, key, in.Content, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
			"owner-id":          p.UserID,
			"declared-type":     in.ContentType,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upload to storage: %w", ErrStorageWrite, err)
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		OwnerID:     p.UserID,
		Name:        in.Filename,
		StorageKey:  key,
		Size:        objInfo.Size,
		ContentType: contentType,
		Visibility:  vis,
		CreatedAt:   s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, s.db, doc)
	if err != nil {
		// Another record owns this key; its object is not ours to remove.
		if repository.IsUniqueViolationOn(err, repository.ConstraintDocumentsStorageKey) {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) ListOwned(ctx context.Context, p model.Principal, ownerID string) (_ []model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.ListOwned")
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() {
		return nil, ErrUnauthorized
	}
	if ownerID == "" {
		ownerID = p.UserID
	}
	if ownerID != p.UserID {
		return nil, ErrForbidden
	}
	return s.repo.ListByOwner(ctx, s.db, ownerID)
}

func (s *documentService) ListPublic(ctx context.Context, p model.Principal) (_ []model.PublicDocument, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.ListPublic")
	defer func() { endSpan(span, err) }()

	if p.IsAnonymous() && !s.opts.PublicListingAnonymous {
		return nil, ErrUnauthorized
	}
	return s.repo.ListPublic(ctx, s.db)
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, p model.Principal, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !doc.VisibleTo(p) {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *documentService) Open(ctx context.Context, p model.Principal, key string) (_ io.ReadCloser, _ *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Open")
	defer func() { endSpan(span, err) }()

	doc, err := s.visibleByKey(ctx, p, key)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("read from storage: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) PresignDownload(ctx context.Context, p model.Principal, key string, expiry time.Duration) (string, error) {
	presigner, ok := s.store.(storage.Presigner)
	if !ok || expiry <= 0 {
		return "", ErrPresignUnsupported
	}
	if _, err := s.visibleByKey(ctx, p, key); err != nil {
		return "", err
	}
	u, err := presigner.PresignGet(ctx, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return u, nil
}

func (s *documentService) visibleByKey(ctx context.Context, p model.Principal, key string) (*model.Document, error) {
	if storage.ValidateKey(key) != nil {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindByStorageKey(ctx, s.db, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !doc.VisibleTo(p) {
		return nil, ErrNotFound
	}
	return doc, nil
}
