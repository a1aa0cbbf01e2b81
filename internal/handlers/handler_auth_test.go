package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/handlers"
)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueTokenPair(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockTokenService) ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error) {
	args := m.Called(ctx, rawToken)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *MockTokenService) RefreshTokenPair(ctx context.Context, email string, refreshToken string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockTokenService) RevokeTokens(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, email string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, email, refreshTokenHash, expiryTime)
	return args.Error(0)
}

func (m *MockUserService) EnsureGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock GoogleIDTokenService ---
type MockGoogleIDTokenService struct {
	mock.Mock
}

func (m *MockGoogleIDTokenService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleIDTokenService) ExchangeAuthCode(ctx context.Context, code string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

var _ portssvc.GoogleIDTokenSvcFacade = (*MockGoogleIDTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockTokens  *MockTokenService
	mockUsers   *MockUserService
	mockGoogle  *MockGoogleIDTokenService
	managerUser *domain.User
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())

	suite.mockTokens = new(MockTokenService)
	suite.mockUsers = new(MockUserService)
	suite.mockGoogle = new(MockGoogleIDTokenService)
	suite.managerUser = &domain.User{
		Email:         "manager@acme.com",
		Role:          domain.RoleManager,
		CompanyDomain: "acme.com",
		Enabled:       true,
	}

	h := handlers.NewAuthHandler(suite.mockTokens, suite.mockUsers, suite.mockGoogle)
	suite.router = gin.New()
	auth := suite.router.Group("/auth-service")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/google-signin", h.GoogleSignIn)
	auth.POST("/refresh-token", h.RefreshToken)
	auth.POST("/validate-access-token/:token", h.ValidateAccessToken)
}

func (suite *AuthHandlerTestSuite) authResponse() *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:   "signed-access-token",
		RefreshToken:  "raw-refresh-token",
		TokenType:     "Bearer",
		Email:         suite.managerUser.Email,
		Role:          string(suite.managerUser.Role),
		CompanyDomain: suite.managerUser.CompanyDomain,
	}
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.mockUsers.On("Authenticate", mock.Anything, "manager@acme.com", "hunter22hunter22").
		Return(suite.managerUser, nil).Once()
	suite.mockTokens.On("IssueTokenPair", mock.Anything, suite.managerUser).
		Return(suite.authResponse(), nil).Once()

	w := suite.postJSON("/auth-service/login", dto.LoginRequest{
		Email:    "manager@acme.com",
		Password: "hunter22hunter22",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal("manager@acme.com", resp.Email)
	suite.mockTokens.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentialsIs401() {
	suite.mockUsers.On("Authenticate", mock.Anything, "manager@acme.com", "wrong-password").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/auth-service/login", dto.LoginRequest{
		Email:    "manager@acme.com",
		Password: "wrong-password",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokens.AssertNotCalled(suite.T(), "IssueTokenPair")
}

func (suite *AuthHandlerTestSuite) TestSignup_CreatedWithTokenPair() {
	req := dto.SignupRequest{
		Name:          "New Manager",
		Email:         "new@acme.com",
		Password:      "a-long-password",
		CompanyDomain: "acme.com",
		Role:          "MANAGER",
	}
	created := &domain.User{Email: "new@acme.com", Role: domain.RoleManager, CompanyDomain: "acme.com", Enabled: true}
	suite.mockUsers.On("CreateUser", mock.Anything, req).Return(created, nil).Once()
	suite.mockTokens.On("IssueTokenPair", mock.Anything, created).Return(suite.authResponse(), nil).Once()

	w := suite.postJSON("/auth-service/signup", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestSignup_UnknownRoleFailsBinding() {
	req := dto.SignupRequest{
		Name:          "New Person",
		Email:         "new@acme.com",
		Password:      "a-long-password",
		CompanyDomain: "acme.com",
		Role:          "SUPERUSER",
	}

	w := suite.postJSON("/auth-service/signup", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUsers.AssertNotCalled(suite.T(), "CreateUser")
}

func (suite *AuthHandlerTestSuite) TestSignup_DuplicateEmailIs409() {
	req := dto.SignupRequest{
		Name:          "New Manager",
		Email:         "taken@acme.com",
		Password:      "a-long-password",
		CompanyDomain: "acme.com",
		Role:          "MANAGER",
	}
	suite.mockUsers.On("CreateUser", mock.Anything, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/auth-service/signup", req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestGoogleSignIn_Success() {
	info := &domain.GoogleUserInfo{
		ID:            "google-sub",
		Email:         "manager@acme.com",
		VerifiedEmail: true,
		Name:          "Manager",
	}
	suite.mockGoogle.On("ValidateGoogleIDToken", mock.Anything, "google-id-token").Return(info, nil).Once()
	suite.mockUsers.On("EnsureGoogleUser", mock.Anything, *info).Return(suite.managerUser, nil).Once()
	suite.mockTokens.On("IssueTokenPair", mock.Anything, suite.managerUser).Return(suite.authResponse(), nil).Once()

	w := suite.postJSON("/auth-service/google-signin", dto.GoogleSignInRequest{IDToken: "google-id-token"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockGoogle.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefreshToken_ExpiredIs401() {
	suite.mockTokens.On("RefreshTokenPair", mock.Anything, "manager@acme.com", "stale-token").
		Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	w := suite.postJSON("/auth-service/refresh-token", dto.RefreshTokenRequest{
		Email:        "manager@acme.com",
		RefreshToken: "stale-token",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestValidateAccessToken_ReportsValidity() {
	suite.mockTokens.On("ValidateAccessToken", mock.Anything, "live-token").
		Return(domain.Identity{Email: "manager@acme.com", Role: domain.RoleManager}, nil).Once()
	suite.mockTokens.On("ValidateAccessToken", mock.Anything, "revoked-token").
		Return(domain.Identity{}, apperrors.ErrUnauthorized).Once()

	for token, want := range map[string]bool{"live-token": true, "revoked-token": false} {
		req, _ := http.NewRequest(http.MethodPost, "/auth-service/validate-access-token/"+token, nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)

		suite.Equal(http.StatusOK, w.Code, "validation endpoint always answers 200")
		var resp dto.TokenValidationResponse
		suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Equal(want, resp.Valid, token)
	}
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
