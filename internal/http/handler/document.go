package handler

import (
	"errors"
	"mime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docshare/internal/http/middleware"
	"docshare/internal/naming"
	"docshare/internal/service"
)

// UploadFile godoc
// @Summary Upload a document
// @Description Stores the file under a generated name. Allowed types: txt, pdf, png, jpg, jpeg, gif.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Param visibility formData string false "private (default) or public"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 415 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/upload [post]
func UploadFile(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docs.Upload(c.UserContext(), middleware.PrincipalFrom(c), service.UploadInput{
			Filename:    fh.Filename,
			Content:     f,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Visibility:  c.FormValue("visibility"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeMessage(c, fiber.StatusCreated, "file uploaded", newDocumentView(doc))
	}
}

// ListMyFiles godoc
// @Summary List the caller's documents
// @Tags Documents
// @Produce json
// @Success 200 {array} documentView
// @Failure 401 {object} errorPayload
// @Router /api/files [get]
func ListMyFiles(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := docs.ListOwned(c.UserContext(), middleware.PrincipalFrom(c), "")
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(documentViews(list))
	}
}

// ListUserFiles godoc
// @Summary List a user's documents
// @Description Only the user themselves may list their documents
// @Tags Documents
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} documentView
// @Failure 401 {object} errorPayload
// @Failure 403 {object} errorPayload
// @Router /api/users/{id}/files [get]
func ListUserFiles(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := docs.ListOwned(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(documentViews(list))
	}
}

// ListAllFiles godoc
// @Summary List public documents of every user
// @Tags Documents
// @Produce json
// @Success 200 {array} documentView
// @Failure 401 {object} errorPayload
// @Router /api/all_files [get]
func ListAllFiles(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := docs.ListPublic(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(publicDocumentViews(list))
	}
}

// GetDocument godoc
// @Summary Get a document
// @Description Includes whether the caller has favorited it
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} documentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/documents/{id} [get]
func GetDocument(docs service.DocumentService, favs service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		p := middleware.PrincipalFrom(c)
		doc, err := docs.Get(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		favorited, err := favs.IsFavorite(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, err)
		}

		view := newDocumentView(doc)
		view.Favorited = &favorited
		return c.JSON(view)
	}
}

// DownloadFile godoc
// @Summary Download a stored file
// @Description Public files are readable by anyone, private ones by their owner. Redirects to a presigned URL when the backend supports it.
// @Tags Documents
// @Param key path string true "Storage key"
// @Success 200
// @Success 302
// @Failure 404 {object} errorPayload
// @Router /files/{key} [get]
func DownloadFile(docs service.DocumentService, presignTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		p := middleware.PrincipalFrom(c)

		if presignTTL > 0 {
			url, err := docs.PresignDownload(c.UserContext(), p, key, presignTTL)
			if err == nil {
				return c.Redirect(url, fiber.StatusFound)
			}
			if !errors.Is(err, service.ErrPresignUnsupported) {
				return writeServiceError(c, err)
			}
		}

		rc, doc, err := docs.Open(c.UserContext(), p, key)
		if err != nil {
			return writeServiceError(c, err)
		}

		// served type follows the storage key's extension, never the upload's declaration
		c.Set(fiber.HeaderContentType, naming.ContentType(doc.StorageKey))
		c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		c.Set(fiber.HeaderContentSecurityPolicy, "sandbox; default-src 'none'")
		c.Set(fiber.HeaderContentDisposition, contentDisposition(doc.Name))
		// fasthttp closes rc once the body is written
		return c.SendStream(rc, int(doc.Size))
	}
}

// contentDisposition encodes name per RFC 6266, using filename* for
// non-ASCII names.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("inline", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "inline"
}
