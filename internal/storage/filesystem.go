package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// filesystemStorage keeps objects as files in a single directory:
//
//	<root>/
//	  <key>          (object content)
//	  .meta/<key>    (content type and metadata as JSON)
type filesystemStorage struct {
	root    string
	metaDir string
}

var _ Storage = (*filesystemStorage)(nil)

type fsMeta struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewFilesystem stores objects under root, creating it if needed.
func NewFilesystem(root string) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("filesystem storage root is required")
	}
	metaDir := filepath.Join(root, ".meta")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &filesystemStorage{root: root, metaDir: metaDir}, nil
}

// Put writes to a temp file and hard-links it into place, so readers never
// see a partial object and an existing key is never replaced.
func (s *filesystemStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ValidateKey(key); err != nil {
		return ObjectInfo{}, err
	}
	dest := filepath.Join(s.root, key)

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(tmp, readerWithContext(ctx, r))
	if err != nil {
		tmp.Close()
		return ObjectInfo{}, fmt.Errorf("write data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("close temp file: %w", err)
	}
	if opt.Size >= 0 && written != opt.Size {
		return ObjectInfo{}, fmt.Errorf("size mismatch: expected %d bytes, got %d", opt.Size, written)
	}

	if err := os.Link(tmpPath, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ObjectInfo{}, fmt.Errorf("%s: %w", key, ErrExists)
		}
		return ObjectInfo{}, fmt.Errorf("link object: %w", err)
	}

	meta, err := json.Marshal(fsMeta{ContentType: opt.ContentType, Metadata: opt.Metadata})
	if err == nil {
		err = os.WriteFile(filepath.Join(s.metaDir, key), meta, 0o644)
	}
	if err != nil {
		os.Remove(dest)
		return ObjectInfo{}, fmt.Errorf("write metadata: %w", err)
	}

	return s.Stat(ctx, key)
}

func (s *filesystemStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	info, err := s.Stat(ctx, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(filepath.Join(s.root, key))
	if err != nil {
		return nil, ObjectInfo{}, s.mapError(key, err)
	}
	return f, info, nil
}

func (s *filesystemStorage) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	if err := ValidateKey(key); err != nil {
		return ObjectInfo{}, err
	}
	fi, err := os.Stat(filepath.Join(s.root, key))
	if err != nil {
		return ObjectInfo{}, s.mapError(key, err)
	}
	info := ObjectInfo{Key: key, Size: fi.Size(), LastModified: fi.ModTime()}

	if b, err := os.ReadFile(filepath.Join(s.metaDir, key)); err == nil {
		var m fsMeta
		if json.Unmarshal(b, &m) == nil {
			info.ContentType = m.ContentType
			info.Metadata = m.Metadata
		}
	}
	return info, nil
}

func (s *filesystemStorage) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	if err := os.Remove(filepath.Join(s.metaDir, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove metadata: %w", err)
	}
	return nil
}

func (s *filesystemStorage) mapError(key string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return err
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

// readerWithContext stops a copy once ctx is done.
func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
