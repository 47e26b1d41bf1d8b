package handler

import (
	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// Like godoc
// @Summary Favorite a document
// @Description Idempotent
// @Tags Favorites
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} messageResponse
// @Failure 401 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/like/{id} [post]
func Like(favs service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := favs.Favorite(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "added to favorites", nil)
	}
}

// Unfavorite godoc
// @Summary Remove a document from favorites
// @Description Idempotent. Also served as POST /api/delete/{id}.
// @Tags Favorites
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/favorites/{id} [delete]
func Unfavorite(favs service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := favs.Unfavorite(c.UserContext(), middleware.PrincipalFrom(c), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return writeMessage(c, fiber.StatusOK, "removed from favorites", nil)
	}
}

// ListFavorites godoc
// @Summary List the caller's favorites
// @Description In the order they were favorited
// @Tags Favorites
// @Produce json
// @Success 200 {array} documentView
// @Failure 401 {object} errorPayload
// @Router /api/favorites [get]
func ListFavorites(favs service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := favs.ListFavorites(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(documentViews(list))
	}
}
