package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

const (
	defaultExpensePageSize = 50
	maxExpensePageSize     = 200
)

// ExpenseHandler handles expense intake requests.
type ExpenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(es portssvc.ExpenseSvcFacade) *ExpenseHandler {
	return &ExpenseHandler{expenseService: es}
}

// registerExpenseRoutes sets up the expense intake routes.
func registerExpenseRoutes(rg *gin.Engine, expenseService portssvc.ExpenseSvcFacade) {
	h := NewExpenseHandler(expenseService)

	expense := rg.Group("/expense-service")
	{
		expense.POST("/expenses", h.CreateExpense)
		expense.GET("/expenses", h.ListExpenses)
		expense.GET("/expenses/:expenseID", h.GetExpense)
	}
}

// CreateExpense godoc
// @Summary Submit an expense
// @Description Persists a new expense snapshot for the caller's company.
// @Tags expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expense body dto.CreateExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.StatusResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /expense-service/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submitter, ok := requireIdentity(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, submitter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// GetExpense godoc
// @Summary Get an expense
// @Tags expense
// @Produce json
// @Security BearerAuth
// @Param expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.StatusResponse
// @Router /expense-service/expenses/{expenseID} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, err)
		return
	}

	if expense.CompanyDomain != identity.CompanyDomain {
		c.JSON(http.StatusNotFound, dto.StatusResponse{Status: http.StatusNotFound, Message: "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// ListExpenses godoc
// @Summary List expenses
// @Description Returns the caller's company expenses, newest first.
// @Tags expense
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} dto.StatusResponse
// @Router /expense-service/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultExpensePageSize)))
	if err != nil || limit <= 0 || limit > maxExpensePageSize {
		limit = defaultExpensePageSize
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), identity.CompanyDomain, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses))
}
