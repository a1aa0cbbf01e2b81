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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/handlers"
	"github.com/spendtrail/spendtrail_backend/internal/middleware"
)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) AskForApproval(ctx context.Context, req dto.AskForApprovalRequest, requester domain.Identity) (*domain.Approval, error) {
	args := m.Called(ctx, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalService) Approve(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error) {
	args := m.Called(ctx, expenseID, actingRole, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalService) Reject(ctx context.Context, expenseID string, actingRole domain.Role, actor string) (*domain.Approval, error) {
	args := m.Called(ctx, expenseID, actingRole, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalService) ListApprovals(ctx context.Context, companyDomain string, query dto.ListApprovalsQuery) ([]domain.Approval, error) {
	args := m.Called(ctx, companyDomain, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// identityInjector stands in for the authorization filter and plants the
// suite's current identity in the request context.
func identityInjector(identity *domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithIdentity(c.Request.Context(), *identity))
		c.Next()
	}
}

// --- Test Suite ---
type ApprovalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockApprovalService
	identity    domain.Identity
}

func (suite *ApprovalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())

	suite.mockService = new(MockApprovalService)
	suite.identity = domain.Identity{
		Email:         "employee@acme.com",
		Role:          domain.RoleEmployee,
		CompanyDomain: "acme.com",
	}

	suite.router = gin.New()
	suite.router.Use(identityInjector(&suite.identity))

	h := handlers.NewApprovalHandler(suite.mockService)
	group := suite.router.Group("/approval-service")
	group.POST("/ask-for-approve", h.AskForApproval)
	group.GET("/approve", h.Approve)
	group.GET("/reject", h.Reject)
	group.GET("/approvals", h.ListApprovals)
}

func (suite *ApprovalHandlerTestSuite) approval(expenseID string) *domain.Approval {
	return &domain.Approval{
		ApprovalID:     uuid.NewString(),
		ExpenseID:      expenseID,
		CompanyDomain:  "acme.com",
		ApproverRole:   domain.RoleManager,
		Status:         domain.ApprovalPending,
		RequestedBy:    "employee@acme.com",
		Title:          "Team lunch",
		Amount:         decimal.NewFromInt(120),
		Category:       "FOOD",
		ExpenseDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		InitiationDate: time.Now(),
		Version:        1,
	}
}

func (suite *ApprovalHandlerTestSuite) TestAskForApproval_Created() {
	expenseID := uuid.NewString()
	body := dto.AskForApprovalRequest{
		ExpenseID:   expenseID,
		Title:       "Team lunch",
		Amount:      decimal.NewFromInt(120),
		Category:    "FOOD",
		ExpenseDate: "2026-08-01",
	}
	suite.mockService.On("AskForApproval", mock.Anything, mock.MatchedBy(func(r dto.AskForApprovalRequest) bool {
		return r.ExpenseID == expenseID
	}), suite.identity).Return(suite.approval(expenseID), nil).Once()

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/approval-service/ask-for-approve", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ApprovalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expenseID, resp.ExpenseID)
	suite.Equal("MANAGER", resp.ApproverRole)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ApprovalHandlerTestSuite) TestAskForApproval_DuplicateIs409() {
	body := dto.AskForApprovalRequest{
		ExpenseID:   "exp-42",
		Title:       "Team lunch",
		Amount:      decimal.NewFromInt(120),
		Category:    "FOOD",
		ExpenseDate: "2026-08-01",
	}
	suite.mockService.On("AskForApproval", mock.Anything, mock.Anything, suite.identity).
		Return(nil, apperrors.ErrDuplicate).Once()

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/approval-service/ask-for-approve", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	var resp dto.StatusResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(http.StatusConflict, resp.Status)
}

func (suite *ApprovalHandlerTestSuite) TestAskForApproval_BadDateIs400() {
	body := dto.AskForApprovalRequest{
		ExpenseID:   "exp-42",
		Title:       "Team lunch",
		Amount:      decimal.NewFromInt(120),
		Category:    "FOOD",
		ExpenseDate: "not-a-date",
	}

	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, "/approval-service/ask-for-approve", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "AskForApproval")
}

func (suite *ApprovalHandlerTestSuite) TestApprove_FromCallbackLink() {
	suite.identity = domain.Identity{
		Email:         "manager@acme.com",
		Role:          domain.RoleManager,
		CompanyDomain: "acme.com",
	}
	expenseID := "exp-42"
	escalated := suite.approval(expenseID)
	escalated.ApproverRole = domain.RoleFinance
	suite.mockService.On("Approve", mock.Anything, expenseID, domain.RoleManager, "manager@acme.com").
		Return(escalated, nil).Once()

	url := "/approval-service/approve?expenseId=exp-42&role=MANAGER&emailId=manager%40acme.com" +
		"&title=Team+lunch&amount=120&category=FOOD&expenseDate=2026-08-01"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("FINANCE", resp.ApproverRole)
	suite.mockService.AssertExpectations(suite.T())
}

// The actor recorded for a transition is the authenticated caller, even when
// the callback link was minted for somebody else.
func (suite *ApprovalHandlerTestSuite) TestApprove_ActorIsCallerNotLinkEmail() {
	suite.identity = domain.Identity{
		Email:         "manager@acme.com",
		Role:          domain.RoleManager,
		CompanyDomain: "acme.com",
	}
	escalated := suite.approval("exp-42")
	escalated.ApproverRole = domain.RoleFinance
	suite.mockService.On("Approve", mock.Anything, "exp-42", domain.RoleManager, "manager@acme.com").
		Return(escalated, nil).Once()

	url := "/approval-service/approve?expenseId=exp-42&role=MANAGER&emailId=employee%40acme.com"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
	suite.mockService.AssertNotCalled(suite.T(), "Approve",
		mock.Anything, "exp-42", domain.RoleManager, "employee@acme.com")
}

func (suite *ApprovalHandlerTestSuite) TestApprove_NonApproverRoleFailsBinding() {
	req, _ := http.NewRequest(http.MethodGet, "/approval-service/approve?expenseId=exp-42&role=EMPLOYEE", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Approve")
}

func (suite *ApprovalHandlerTestSuite) TestApprove_RoleMismatchIs409() {
	suite.identity = domain.Identity{
		Email:         "manager@acme.com",
		Role:          domain.RoleManager,
		CompanyDomain: "acme.com",
	}
	suite.mockService.On("Approve", mock.Anything, "exp-42", domain.RoleManager, "manager@acme.com").
		Return(nil, apperrors.ErrInvalidState).Once()

	req, _ := http.NewRequest(http.MethodGet, "/approval-service/approve?expenseId=exp-42&role=MANAGER", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ApprovalHandlerTestSuite) TestReject_FromCallbackLink() {
	suite.identity = domain.Identity{
		Email:         "finance@acme.com",
		Role:          domain.RoleFinance,
		CompanyDomain: "acme.com",
	}
	expenseID := "exp-42"
	rejected := suite.approval(expenseID)
	rejected.Status = domain.ApprovalRejected
	suite.mockService.On("Reject", mock.Anything, expenseID, domain.RoleFinance, "finance@acme.com").
		Return(rejected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/approval-service/reject?expenseId=exp-42&role=FINANCE&emailId=finance%40acme.com", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ApprovalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("REJECTED", resp.Status)
}

func (suite *ApprovalHandlerTestSuite) TestListApprovals_ScopedToCallerCompany() {
	suite.mockService.On("ListApprovals", mock.Anything, "acme.com", mock.MatchedBy(func(q dto.ListApprovalsQuery) bool {
		return q.FromYear == 2026 && q.ToYear == 2026
	})).Return([]domain.Approval{*suite.approval("exp-42")}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/approval-service/approvals?fromYear=2026&toYear=2026", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ApprovalResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.Equal("acme.com", resp[0].CompanyDomain)
	suite.mockService.AssertExpectations(suite.T())
}

func TestApprovalHandler(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerTestSuite))
}
