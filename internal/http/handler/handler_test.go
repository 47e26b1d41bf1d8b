package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docshare/internal/model"
	"docshare/internal/service"
	serviceMocks "docshare/internal/service/mocks"
)

const aliceToken = "alice-token"

var alice = model.Principal{UserID: "9a0c3f7e-4d55-4a44-9b1e-5b1f4b0c2a11", Username: "alice"}

type testEnv struct {
	app  *fiber.App
	ids  *serviceMocks.MockIdentityService
	docs *serviceMocks.MockDocumentService
	favs *serviceMocks.MockFavoriteService
}

func newTestEnv(t *testing.T, presignTTL time.Duration) *testEnv {
	t.Helper()
	env := &testEnv{
		app:  fiber.New(fiber.Config{ErrorHandler: ErrorHandler()}),
		ids:  new(serviceMocks.MockIdentityService),
		docs: new(serviceMocks.MockDocumentService),
		favs: new(serviceMocks.MockFavoriteService),
	}
	env.ids.On("ResolveCurrent", mock.Anything, aliceToken).Return(alice, nil).Maybe()

	RegisterRoutes(env.app, Deps{
		Identity:   env.ids,
		Documents:  env.docs,
		Favorites:  env.favs,
		Cookie:     CookieOptions{TTL: time.Hour},
		PresignTTL: presignTTL,
	})
	t.Cleanup(func() {
		env.docs.AssertExpectations(t)
		env.favs.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request, authed bool) *http.Response {
	t.Helper()
	if authed {
		req.Header.Set("Authorization", "Bearer "+aliceToken)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target string, v any) *http.Request {
	b, _ := json.Marshal(v)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, filename, content, visibility string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	if visibility != "" {
		require.NoError(t, writer.WriteField("visibility", visibility))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func sampleDocument(name, key string, size int64, vis model.Visibility) model.Document {
	return model.Document{
		ID:          uuid.NewString(),
		OwnerID:     alice.UserID,
		Name:        name,
		StorageKey:  key,
		Size:        size,
		ContentType: "text/plain",
		Visibility:  vis,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("success", func(t *testing.T) {
		user := &model.User{ID: uuid.NewString(), Username: "alice", Email: "a@x.io", PasswordHash: "secret-hash", Active: true}
		env.ids.On("Register", mock.Anything, service.RegisterInput{Username: "alice", Email: "a@x.io", Password: "pw1234"}).
			Return(user, nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
			"username": "alice", "email": "a@x.io", "password": "pw1234",
		}), false)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(raw), "secret-hash")

		var body struct {
			Message string     `json:"message"`
			Data    model.User `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "alice", body.Data.Username)
	})

	t.Run("duplicate", func(t *testing.T) {
		env.ids.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: username is taken", service.ErrDuplicateIdentity)).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
			"username": "alice", "email": "b@x.io", "password": "pw1234",
		}), false)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "DUPLICATE_IDENTITY", body.Error.Code)
		assert.Contains(t, body.Error.Message, "username is taken")
	})

	t.Run("invalid input", func(t *testing.T) {
		env.ids.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: password must be at least 6 characters", service.ErrInvalidInput)).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/register", map[string]string{
			"username": "alice", "email": "a@x.io", "password": "pw",
		}), false)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_INPUT", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")

		resp := env.do(t, req, false)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_INPUT", decodeError(t, resp).Error.Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("success sets cookie", func(t *testing.T) {
		user := &model.User{ID: alice.UserID, Username: "alice"}
		env.ids.On("Login", mock.Anything, "alice", "pw1234").Return("jwt-value", user, nil).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/login", map[string]string{
			"username": "alice", "password": "pw1234",
		}), false)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var token *http.Cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == "token" {
				token = ck
			}
		}
		require.NotNil(t, token)
		assert.Equal(t, "jwt-value", token.Value)
		assert.True(t, token.HttpOnly)

		var body struct {
			Data loginResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "jwt-value", body.Data.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		env.ids.On("Login", mock.Anything, "alice", "nope12").Return("", nil, service.ErrInvalidCredentials).Once()

		resp := env.do(t, jsonRequest(http.MethodPost, "/api/login", map[string]string{
			"username": "alice", "password": "nope12",
		}), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/login", map[string]string{"username": "alice"}), false)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("anonymous", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/logout", nil), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("clears cookie", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/logout", nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var cleared bool
		for _, ck := range resp.Cookies() {
			if ck.Name == "token" {
				cleared = ck.Value == "" && ck.Expires.Before(time.Now())
			}
		}
		assert.True(t, cleared)
	})
}

func TestUploadFile(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("success", func(t *testing.T) {
		doc := sampleDocument("notes.txt", uuid.NewString()+".txt", 4096, model.VisibilityPublic)
		env.docs.On("Upload", mock.Anything, alice, mock.MatchedBy(func(in service.UploadInput) bool {
			return in.Filename == "notes.txt" && in.Visibility == "public" && in.Size == 11
		})).Return(&doc, nil).Once()

		resp := env.do(t, uploadRequest(t, "notes.txt", "hello world", "public"), true)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Data documentView `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, doc.ID, body.Data.ID)
		assert.Equal(t, "/files/"+doc.StorageKey, body.Data.DocumentLink)
		assert.Equal(t, int64(4), body.Data.DocSize)
		assert.Equal(t, model.VisibilityPublic, body.Data.Visibility)
	})

	t.Run("anonymous", func(t *testing.T) {
		resp := env.do(t, uploadRequest(t, "notes.txt", "hello", ""), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("no file", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/upload", nil), true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unsupported type", service.ErrUnsupportedFileType, http.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE"},
		{"bad visibility", service.ErrInvalidVisibility, http.StatusBadRequest, "INVALID_VISIBILITY"},
		{"storage failure", fmt.Errorf("%w: upload to storage: %w", service.ErrStorageWrite, errors.New("s3 down")), http.StatusInternalServerError, "STORAGE_ERROR"},
		{"unknown failure", errors.New("db save failed"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env.docs.On("Upload", mock.Anything, alice, mock.Anything).Return(nil, tc.err).Once()

			resp := env.do(t, uploadRequest(t, "thing.exe", "x", ""), true)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.NotContains(t, body.Error.Message, "s3 down")
		})
	}
}

func TestListMyFiles(t *testing.T) {
	env := newTestEnv(t, 0)

	docs := []model.Document{
		sampleDocument("a.txt", "k1.txt", 2048, model.VisibilityPrivate),
		sampleDocument("b.pdf", "k2.pdf", 1023, model.VisibilityPublic),
	}
	env.docs.On("ListOwned", mock.Anything, alice, "").Return(docs, nil).Once()

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/files", nil), true)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var views []documentView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 2)
	assert.Equal(t, "a.txt", views[0].Name)
	assert.Equal(t, int64(2), views[0].DocSize)
	assert.Equal(t, int64(0), views[1].DocSize)
	assert.Nil(t, views[0].Owner)
}

func TestListMyFiles_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t, 0)
	env.docs.On("ListOwned", mock.Anything, alice, "").Return(nil, nil).Once()

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/files", nil), true)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestListUserFiles(t *testing.T) {
	env := newTestEnv(t, 0)
	other := uuid.NewString()

	env.docs.On("ListOwned", mock.Anything, alice, other).Return(nil, service.ErrForbidden).Once()

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users/"+other+"/files", nil), true)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
}

func TestListAllFiles(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("anonymous rejected by service", func(t *testing.T) {
		env.docs.On("ListPublic", mock.Anything, model.Anonymous).Return(nil, service.ErrUnauthorized).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/all_files", nil), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("includes owner", func(t *testing.T) {
		pub := model.PublicDocument{
			Document: sampleDocument("pic.png", "k.png", 10240, model.VisibilityPublic),
			Owner:    model.UserSummary{ID: alice.UserID, Username: "alice"},
		}
		env.docs.On("ListPublic", mock.Anything, alice).Return([]model.PublicDocument{pub}, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/all_files", nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var views []documentView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
		require.Len(t, views, 1)
		require.NotNil(t, views[0].Owner)
		assert.Equal(t, "alice", views[0].Owner.Username)
		assert.Equal(t, int64(10), views[0].DocSize)
	})
}

func TestGetDocument(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("success", func(t *testing.T) {
		doc := sampleDocument("a.txt", "k.txt", 1, model.VisibilityPrivate)
		env.docs.On("Get", mock.Anything, alice, doc.ID).Return(&doc, nil).Once()
		env.favs.On("IsFavorite", mock.Anything, alice, doc.ID).Return(true, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/documents/"+doc.ID, nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var view documentView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		assert.Equal(t, doc.ID, view.ID)
		require.NotNil(t, view.Favorited)
		assert.True(t, *view.Favorited)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.NewString()
		env.docs.On("Get", mock.Anything, alice, id).Return(nil, service.ErrNotFound).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil), true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/documents/invalid-uuid", nil), true)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.NewString()
		env.docs.On("Get", mock.Anything, alice, id).Return(nil, errors.New("db error")).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil), true)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "internal server error", decodeError(t, resp).Error.Message)
	})
}

func TestFavoriteEndpoints(t *testing.T) {
	env := newTestEnv(t, 0)
	id := uuid.NewString()

	t.Run("like", func(t *testing.T) {
		env.favs.On("Favorite", mock.Anything, alice, id).Return(nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/like/"+id, nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("like missing document", func(t *testing.T) {
		missing := uuid.NewString()
		env.favs.On("Favorite", mock.Anything, alice, missing).Return(service.ErrDocumentNotFound).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/like/"+missing, nil), true)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("like anonymous", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/like/"+id, nil), false)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unfavorite via both routes", func(t *testing.T) {
		env.favs.On("Unfavorite", mock.Anything, alice, id).Return(nil).Twice()

		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/api/delete/"+id, nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/favorites/"+id, nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		doc := sampleDocument("a.txt", "k.txt", 5000, model.VisibilityPublic)
		env.favs.On("ListFavorites", mock.Anything, alice).Return([]model.Document{doc}, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/favorites", nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var views []documentView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
		require.Len(t, views, 1)
		assert.Equal(t, doc.ID, views[0].ID)
	})
}

func TestDownloadFile(t *testing.T) {
	t.Run("streams content", func(t *testing.T) {
		env := newTestEnv(t, 0)
		doc := sampleDocument("a.txt", "k.txt", 5, model.VisibilityPublic)
		env.docs.On("Open", mock.Anything, model.Anonymous, "k.txt").
			Return(io.NopCloser(strings.NewReader("hello")), &doc, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), false)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Equal(t, `inline; filename=a.txt`, resp.Header.Get("Content-Disposition"))

		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "hello", string(raw))
	})

	t.Run("recorded html type is not served", func(t *testing.T) {
		env := newTestEnv(t, 0)
		doc := sampleDocument("notes.txt", "k.txt", 30, model.VisibilityPublic)
		doc.ContentType = "text/html"
		env.docs.On("Open", mock.Anything, model.Anonymous, "k.txt").
			Return(io.NopCloser(strings.NewReader("<script>alert(1)</script>")), &doc, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), false)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "sandbox")
	})

	t.Run("non-ascii filename", func(t *testing.T) {
		env := newTestEnv(t, 0)
		doc := sampleDocument("résumé.pdf", "k.pdf", 3, model.VisibilityPublic)
		env.docs.On("Open", mock.Anything, model.Anonymous, "k.pdf").
			Return(io.NopCloser(strings.NewReader("pdf")), &doc, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.pdf", nil), false)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

		cd := resp.Header.Get("Content-Disposition")
		assert.Equal(t, "inline; filename*=utf-8''r%C3%A9sum%C3%A9.pdf", cd)
		_, params, err := mime.ParseMediaType(cd)
		require.NoError(t, err)
		assert.Equal(t, "résumé.pdf", params["filename"])
	})

	t.Run("not visible", func(t *testing.T) {
		env := newTestEnv(t, 0)
		env.docs.On("Open", mock.Anything, model.Anonymous, "k.txt").Return(nil, nil, service.ErrNotFound).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), false)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("redirects to presigned url", func(t *testing.T) {
		env := newTestEnv(t, time.Minute)
		env.docs.On("PresignDownload", mock.Anything, alice, "k.txt", time.Minute).
			Return("https://bucket.example/k.txt?sig=1", nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), true)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://bucket.example/k.txt?sig=1", resp.Header.Get("Location"))
	})

	t.Run("falls back to streaming without presign support", func(t *testing.T) {
		env := newTestEnv(t, time.Minute)
		doc := sampleDocument("a.txt", "k.txt", 2, model.VisibilityPrivate)
		env.docs.On("PresignDownload", mock.Anything, alice, "k.txt", time.Minute).
			Return("", service.ErrPresignUnsupported).Once()
		env.docs.On("Open", mock.Anything, alice, "k.txt").
			Return(io.NopCloser(strings.NewReader("hi")), &doc, nil).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), true)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("presign not found", func(t *testing.T) {
		env := newTestEnv(t, time.Minute)
		env.docs.On("PresignDownload", mock.Anything, model.Anonymous, "k.txt", time.Minute).
			Return("", service.ErrNotFound).Once()

		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/files/k.txt", nil), false)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	env := newTestEnv(t, 0)

	t.Run("not found route", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodGet, "/non-existent", nil), false)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp := env.do(t, httptest.NewRequest(http.MethodPost, "/healthz", nil), false)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})
}

func TestErrorHandler_PayloadTooLarge(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/big", func(c *fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })

	resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/big", nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp).Error.Code)
}

func TestWriteServiceError_RequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals("request_id", "rid-1")
		return writeServiceError(c, service.ErrForbidden)
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "rid-1", decodeError(t, resp).RequestID)
}
