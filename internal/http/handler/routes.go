package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// Deps are the collaborators the HTTP surface needs.
type Deps struct {
	DB        *sql.DB
	Identity  service.IdentityService
	Documents service.DocumentService
	Favorites service.FavoriteService
	Cookie    CookieOptions
	// PresignTTL > 0 makes downloads redirect to presigned URLs when the
	// storage backend supports them.
	PresignTTL time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	authenticate := middleware.Authenticate(d.Identity)
	requireAuth := middleware.RequireAuth()

	api := app.Group("/api", authenticate)
	api.Post("/register", Register(d.Identity))
	api.Post("/login", Login(d.Identity, d.Cookie))
	api.Post("/logout", requireAuth, Logout(d.Cookie))

	api.Post("/upload", requireAuth, UploadFile(d.Documents))
	api.Get("/files", requireAuth, ListMyFiles(d.Documents))
	api.Get("/users/:id/files", requireAuth, ListUserFiles(d.Documents))
	// anonymous access is decided by the document service
	api.Get("/all_files", ListAllFiles(d.Documents))
	api.Get("/documents/:id", requireAuth, GetDocument(d.Documents, d.Favorites))

	api.Post("/like/:id", requireAuth, Like(d.Favorites))
	api.Post("/delete/:id", requireAuth, Unfavorite(d.Favorites))
	api.Delete("/favorites/:id", requireAuth, Unfavorite(d.Favorites))
	api.Get("/favorites", requireAuth, ListFavorites(d.Favorites))

	app.Get(FilesPrefix+":key", authenticate, DownloadFile(d.Documents, d.PresignTTL))
}
