// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"mediahub-service/internal/domain/user"
	"mediahub-service/internal/middleware"
	"mediahub-service/internal/pkg/response"
	"mediahub-service/internal/pkg/session"
	service "mediahub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	codec       *session.CookieCodec
	clientURL   string
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, codec *session.CookieCodec, clientURL string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		clientURL:   clientURL,
		logger:      logger,
	}
}

func (h *AuthHandler) loginErrorURL() string {
	return h.clientURL + "/login?error=authfailed"
}

// GoogleLogin redirects the browser to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := generateState(c)
	c.Redirect(http.StatusFound, h.authService.BeginAuth(state))
}

// GoogleCallback completes the OAuth round-trip. Every failure path redirects
// to the client login page with an error indicator - never a raw 500 - and
// leaves no session behind.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("oauth callback returned error",
			zap.String("error", errParam),
			zap.String("description", c.Query("error_description")),
		)
		c.Redirect(http.StatusFound, h.loginErrorURL())
		return
	}

	if !validateState(c) {
		h.logger.Warn("oauth callback state mismatch")
		c.Redirect(http.StatusFound, h.loginErrorURL())
		return
	}

	code := c.Query("code")
	if code == "" {
		h.logger.Warn("oauth callback missing code")
		c.Redirect(http.StatusFound, h.loginErrorURL())
		return
	}

	_, sess, err := h.authService.CompleteAuth(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("authentication failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.loginErrorURL())
		return
	}

	h.codec.SetCookie(c.Writer, sess.ID, sess.ExpiresAt)
	c.Redirect(http.StatusFound, h.clientURL)
}

// CurrentUser reports the authenticated principal, or isAuthenticated=false
// for anonymous callers. It always answers 200.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusOK, user.CurrentUserResponse{IsAuthenticated: false, User: nil})
		return
	}

	u, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		// Session points at a principal the store no longer has; treat as
		// anonymous rather than erroring.
		c.JSON(http.StatusOK, user.CurrentUserResponse{IsAuthenticated: false, User: nil})
		return
	}

	c.JSON(http.StatusOK, user.CurrentUserResponse{IsAuthenticated: true, User: u.ToView()})
}

// Logout destroys the session and clears the cookie. On a store failure the
// cookie survives so the client can retry the cleanup.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		// Nothing to destroy; clear any stale cookie anyway.
		h.codec.ClearCookie(c.Writer)
		response.Message(c, http.StatusOK, "Logged out successfully")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, http.StatusInternalServerError, "Logout failed")
		return
	}

	h.codec.ClearCookie(c.Writer)
	response.Message(c, http.StatusOK, "Logged out successfully")
}
