package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"docshare/internal/http/middleware"
	"docshare/internal/service"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Account"
// @Success 201 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/register [post]
func Register(ids service.IdentityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		}

		user, err := ids.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return writeMessage(c, fiber.StatusCreated, "registered", user)
	}
}

// Login godoc
// @Summary Log in
// @Description Returns a bearer token and sets it as the token cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/login [post]
func Login(ids service.IdentityService, opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		}
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "username and password are required")
		}

		token, user, err := ids.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Cookie(&fiber.Cookie{
			Name:     middleware.TokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(opts.TTL),
			HTTPOnly: true,
			Secure:   opts.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return writeMessage(c, fiber.StatusOK, "logged in", loginResponse{Token: token, User: user})
	}
}

// Logout godoc
// @Summary Log out
// @Description Clears the token cookie. Tokens are stateless and stay valid until they expire.
// @Tags Auth
// @Produce json
// @Success 200 {object} messageResponse
// @Failure 401 {object} errorPayload
// @Router /api/logout [post]
func Logout(opts CookieOptions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     middleware.TokenCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   opts.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return writeMessage(c, fiber.StatusOK, "logged out", nil)
	}
}
