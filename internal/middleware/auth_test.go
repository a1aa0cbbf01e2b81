package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/middleware"
)

// stubValidator returns a fixed identity or error.
type stubValidator struct {
	identity domain.Identity
	err      error
	calls    int
}

func (s *stubValidator) ValidateAccessToken(ctx context.Context, rawToken string) (domain.Identity, error) {
	s.calls++
	if s.err != nil {
		return domain.Identity{}, s.err
	}
	return s.identity, nil
}

type AuthorizationFilterTestSuite struct {
	suite.Suite
	validator      *stubValidator
	handlerInvoked int
	seenIdentity   domain.Identity
	seenOK         bool
}

func (suite *AuthorizationFilterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.validator = &stubValidator{}
	suite.handlerInvoked = 0
	suite.seenOK = false
}

func (suite *AuthorizationFilterTestSuite) newRouter(rules []middleware.RouteRule) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthorizationFilter(rules, suite.validator))

	record := func(c *gin.Context) {
		suite.handlerInvoked++
		suite.seenIdentity, suite.seenOK = middleware.GetIdentityFromContext(c)
		c.Status(http.StatusOK)
	}
	r.GET("/approval-service/approve", record)
	r.GET("/public/info", record)
	return r
}

func (suite *AuthorizationFilterTestSuite) approverRules() []middleware.RouteRule {
	return []middleware.RouteRule{
		{
			PathPattern: "/approval-service/*",
			Method:      "*",
			Roles:       []domain.Role{domain.RoleManager, domain.RoleFinance, domain.RoleAdmin},
		},
	}
}

func (suite *AuthorizationFilterTestSuite) do(r *gin.Engine, path string, header string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *AuthorizationFilterTestSuite) decodeStatus(w *httptest.ResponseRecorder) dto.StatusResponse {
	var body dto.StatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *AuthorizationFilterTestSuite) TestNoMatchingRulePassesThrough() {
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/public/info", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, suite.handlerInvoked)
	suite.False(suite.seenOK, "no identity should be established for unprotected routes")
	suite.Equal(0, suite.validator.calls)
}

func (suite *AuthorizationFilterTestSuite) TestMissingHeader() {
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.handlerInvoked)
	body := suite.decodeStatus(w)
	suite.Equal(http.StatusUnauthorized, body.Status)
}

func (suite *AuthorizationFilterTestSuite) TestMalformedHeader() {
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "Token abc")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.handlerInvoked)
	suite.Equal(0, suite.validator.calls)
}

func (suite *AuthorizationFilterTestSuite) TestInvalidToken() {
	suite.validator.err = apperrors.ErrUnauthorized
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "Bearer not-a-real-token")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(0, suite.handlerInvoked)
	suite.Equal(1, suite.validator.calls)
}

func (suite *AuthorizationFilterTestSuite) TestValidatorUnreachableIs503() {
	suite.validator.err = apperrors.ErrServiceUnavailable
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "Bearer some-token")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal(0, suite.handlerInvoked)
	body := suite.decodeStatus(w)
	suite.Equal(http.StatusServiceUnavailable, body.Status)
	suite.Contains(body.Message, "unavailable")
}

func (suite *AuthorizationFilterTestSuite) TestInsufficientRoleIs403() {
	suite.validator.identity = domain.Identity{
		Email:         "employee@acme.com",
		Role:          domain.RoleEmployee,
		CompanyDomain: "acme.com",
	}
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "Bearer employee-token")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(0, suite.handlerInvoked)
}

func (suite *AuthorizationFilterTestSuite) TestAllowedRoleEstablishesIdentity() {
	suite.validator.identity = domain.Identity{
		Email:         "manager@acme.com",
		Role:          domain.RoleManager,
		CompanyDomain: "acme.com",
	}
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "Bearer manager-token")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(1, suite.handlerInvoked)
	suite.True(suite.seenOK)
	suite.Equal("manager@acme.com", suite.seenIdentity.Email)
	suite.Equal(domain.RoleManager, suite.seenIdentity.Role)
	suite.Equal("ROLE_MANAGER", suite.seenIdentity.Authority())
}

// Bearer comparison is case-insensitive.
func (suite *AuthorizationFilterTestSuite) TestLowercaseBearerAccepted() {
	suite.validator.identity = domain.Identity{
		Email: "manager@acme.com",
		Role:  domain.RoleManager,
	}
	r := suite.newRouter(suite.approverRules())

	w := suite.do(r, "/approval-service/approve", "bearer manager-token")

	suite.Equal(http.StatusOK, w.Code)
}

func TestAuthorizationFilter(t *testing.T) {
	suite.Run(t, new(AuthorizationFilterTestSuite))
}
