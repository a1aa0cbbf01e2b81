package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	tokenService  portssvc.TokenSvcFacade
	userService   portssvc.UserSvcFacade
	googleService portssvc.GoogleIDTokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(ts portssvc.TokenSvcFacade, us portssvc.UserSvcFacade, gs portssvc.GoogleIDTokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		tokenService:  ts,
		userService:   us,
		googleService: gs,
	}
}

// registerAuthRoutes sets up the routes for authentication. Credential
// endpoints get the rate limiter; logout sits behind the authorization filter.
func registerAuthRoutes(rg *gin.Engine, limitMiddleware gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Token, services.User, services.GoogleID)

	auth := rg.Group("/auth-service")
	{
		auth.POST("/signup", limitMiddleware, h.Signup)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/google-signin", limitMiddleware, h.GoogleSignIn)
		auth.POST("/google/exchange-code", limitMiddleware, h.GoogleExchangeCode)
		auth.POST("/refresh-token", limitMiddleware, h.RefreshToken)
		auth.POST("/logout", h.Logout)
		auth.POST("/validate-access-token/:token", h.ValidateAccessToken)
		auth.GET("/validate-access-token/:token", h.ValidateAccessToken)
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates an account under a registered company domain and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Registration info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 404 {object} dto.StatusResponse "Company domain not registered"
// @Failure 409 {object} dto.StatusResponse "Email already registered"
// @Router /auth-service/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a fresh token pair. All previously issued tokens are revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /auth-service/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// GoogleSignIn godoc
// @Summary Sign in with Google
// @Description Exchanges a verified Google ID token for a local token pair, provisioning the account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param signin body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 404 {object} dto.StatusResponse "Company domain not registered"
// @Router /auth-service/google-signin [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.EnsureGoogleUser(c.Request.Context(), *info)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// GoogleExchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description Redeems an OAuth authorization code from the server-side flow and returns a local token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Failure 404 {object} dto.StatusResponse "Company domain not registered"
// @Router /auth-service/google/exchange-code [post]
func (h *AuthHandler) GoogleExchangeCode(c *gin.Context) {
	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.googleService.ExchangeAuthCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.EnsureGoogleUser(c.Request.Context(), *info)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.tokenService.IssueTokenPair(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary Rotate the token pair
// @Description Validates the presented refresh token and issues a new access/refresh pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /auth-service/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tokens, err := h.tokenService.RefreshTokenPair(c.Request.Context(), req.Email, req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout godoc
// @Summary Sign out
// @Description Soft-revokes every live credential of the caller.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /auth-service/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.StatusResponse{Status: http.StatusUnauthorized, Message: "Authentication required"})
		return
	}

	if err := h.tokenService.RevokeTokens(c.Request.Context(), identity.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: http.StatusOK, Message: "Signed out"})
}

// ValidateAccessToken godoc
// @Summary Validate an access token
// @Description Remote validation endpoint used by sibling services. Reports validity; never errors for an invalid token.
// @Tags auth
// @Produce json
// @Param token path string true "Raw access token"
// @Success 200 {object} dto.TokenValidationResponse
// @Router /auth-service/validate-access-token/{token} [post]
func (h *AuthHandler) ValidateAccessToken(c *gin.Context) {
	rawToken := c.Param("token")

	_, err := h.tokenService.ValidateAccessToken(c.Request.Context(), rawToken)
	c.JSON(http.StatusOK, dto.TokenValidationResponse{Valid: err == nil})
}
