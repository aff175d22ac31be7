// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/slgoiko/unirhub/internal/app/models/dto"
	"github.com/slgoiko/unirhub/internal/app/services"
	"github.com/slgoiko/unirhub/internal/middleware"
)

// AuthController handles the Google sign-in flow and session endpoints
type AuthController struct {
	authService    *services.AuthService
	authMiddleware *middleware.AuthMiddleware
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, authMiddleware *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

// Login returns the Google authorization URL without redirecting
// @Summary Get the sign-in URL
// @Description Returns the Google authorization URL the client should open to sign in
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LoginInfo}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [get]
func (c *AuthController) Login(ctx *gin.Context) {
	url, err := c.authService.LoginURL()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build authorization URL")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.LoginInfo{AuthURL: url},
		Timestamp: time.Now(),
	})
}

// LoginStart redirects the browser to Google's consent screen
// @Summary Start the sign-in flow
// @Description Redirects to the Google authorization page
// @Tags auth
// @Success 302 "Redirect to Google"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login/start [get]
func (c *AuthController) LoginStart(ctx *gin.Context) {
	url, err := c.authService.LoginURL()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build authorization URL")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, url)
}

// Callback completes the sign-in after Google redirects back
// @Summary OAuth callback
// @Description Exchanges the authorization code, checks the email allow list and opens a session
// @Tags auth
// @Produce json
// @Param state query string true "Signed state token"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.APIResponse{data=dto.UserInfo}
// @Failure 400 {object} dto.ErrorResponse "Missing code or invalid state"
// @Failure 403 {object} dto.ErrorResponse "Email not in the allow list"
// @Failure 502 {object} dto.ErrorResponse "Google rejected the exchange"
// @Router /auth/callback [get]
func (c *AuthController) Callback(ctx *gin.Context) {
	state := ctx.Query("state")
	code := ctx.Query("code")
	if code == "" {
		c.dropCurrentSession(ctx)
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing authorization code")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.HandleCallback(ctx.Request.Context(), state, code)
	if err != nil {
		c.dropCurrentSession(ctx)
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.authMiddleware.SetSessionCookie(ctx, session.ID, c.authService.SessionTTL())

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.UserInfo{Email: session.Email},
		Timestamp: time.Now(),
	})
}

// dropCurrentSession ends whatever session the caller already holds. A failed
// callback must not leave an earlier login usable.
func (c *AuthController) dropCurrentSession(ctx *gin.Context) {
	if sessionID, err := ctx.Cookie(middleware.SessionCookieName); err == nil && sessionID != "" {
		if err := c.authService.Logout(ctx.Request.Context(), sessionID); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to delete session after rejected callback")
		}
	}
	c.authMiddleware.ClearSessionCookie(ctx)
}

// Logout ends the current session
// @Summary Log out
// @Description Deletes the server-side session and clears the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	sessionID, _ := ctx.Cookie(middleware.SessionCookieName)

	if err := c.authService.Logout(ctx.Request.Context(), sessionID); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to delete session on logout")
	}
	c.authMiddleware.ClearSessionCookie(ctx)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Logged out"},
		Timestamp: time.Now(),
	})
}

// Me identifies the signed-in user
// @Summary Current user
// @Description Returns the email of the signed-in user
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserInfo}
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	email := ctx.GetString(middleware.ContextEmailKey)

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.UserInfo{Email: email},
		Timestamp: time.Now(),
	})
}
