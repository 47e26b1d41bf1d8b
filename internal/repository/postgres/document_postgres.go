package postgres

import (
	"context"

	"docshare/internal/model"
	"docshare/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses parameterized queries and contains no business logic.
type DocumentPostgres struct{}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres() *DocumentPostgres {
	return &DocumentPostgres{}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, owner_id, name, storage_key, size, content_type, visibility, created_at`

// qualifiedDocumentColumns is documentColumns for queries that alias documents as d.
const qualifiedDocumentColumns = `d.id, d.owner_id, d.name, d.storage_key, d.size, d.content_type, d.visibility, d.created_at`

func documentDest(d *model.Document) []any {
	return []any{
		&d.ID,
		&d.OwnerID,
		&d.Name,
		&d.StorageKey,
		&d.Size,
		&d.ContentType,
		&d.Visibility,
		&d.CreatedAt,
	}
}

func scanDocument(s rowScanner) (*model.Document, error) {
	var d model.Document
	if err := s.Scan(documentDest(&d)...); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, q repository.Querier, doc *model.Document) (*model.Document, error) {
	const query = `
		INSERT INTO documents (id, owner_id, name, storage_key, size, content_type, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := q.QueryRowContext(ctx, query,
		doc.ID,
		doc.OwnerID,
		doc.Name,
		doc.StorageKey,
		doc.Size,
		doc.ContentType,
		string(doc.Visibility),
		doc.CreatedAt,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, q repository.Querier, id string) (*model.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(q.QueryRowContext(ctx, query, id))
}

// FindByStorageKey fetches the document stored under key.
func (r *DocumentPostgres) FindByStorageKey(ctx context.Context, q repository.Querier, key string) (*model.Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM documents WHERE storage_key = $1`
	return scanDocument(q.QueryRowContext(ctx, query, key))
}

func (r *DocumentPostgres) ListByOwner(ctx context.Context, q repository.Querier, ownerID string) ([]model.Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	return queryDocuments(ctx, q, query, ownerID)
}

func (r *DocumentPostgres) ListPublic(ctx context.Context, q repository.Querier) ([]model.PublicDocument, error) {
	const query = `
		SELECT ` + qualifiedDocumentColumns + `, u.id, u.username
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE d.visibility = 'public'
		ORDER BY d.created_at ASC, d.id ASC
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PublicDocument, 0)
	for rows.Next() {
		var pd model.PublicDocument
		dest := append(documentDest(&pd.Document), &pd.Owner.ID, &pd.Owner.Username)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, pd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *DocumentPostgres) StorageKeyExists(ctx context.Context, q repository.Querier, key string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE storage_key = $1)`
	var exists bool
	if err := q.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func queryDocuments(ctx context.Context, q repository.Querier, query string, args ...any) ([]model.Document, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
