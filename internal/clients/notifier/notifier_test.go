package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/clients/notifier"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

func testDetails() dto.ExpenseDetails {
	return dto.ExpenseDetails{
		ExpenseID:   "exp-42",
		Title:       "Team lunch",
		Description: "Quarterly team lunch & drinks",
		Amount:      decimal.NewFromInt(120),
		Category:    "FOOD",
		ExpenseDate: "2026-08-01",
		EmailID:     "employee@acme.com",
		Role:        "MANAGER",
	}
}

func TestDispatchApprovalRequest_PayloadAndLinks(t *testing.T) {
	var received dto.ApprovalNotification
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL, "https://spendtrail.example.com")
	err := client.DispatchApprovalRequest(context.Background(), testDetails())
	require.NoError(t, err)

	assert.Equal(t, "/notification-service/approval-request", path)
	assert.Equal(t, "exp-42", received.ExpenseDetails.ExpenseID)
	assert.Equal(t, "MANAGER", received.ExpenseDetails.Role)

	// Both action links point at the approval service callbacks and carry the
	// full snapshot as query parameters.
	for action, link := range map[string]string{
		"approve": received.ApproveLink,
		"reject":  received.RejectLink,
	} {
		assert.True(t, strings.HasPrefix(link, "https://spendtrail.example.com/approval-service/"+action+"?"), link)

		parsed, err := url.Parse(link)
		require.NoError(t, err)
		params := parsed.Query()
		assert.Equal(t, "exp-42", params.Get("expenseId"))
		assert.Equal(t, "Team lunch", params.Get("title"))
		assert.Equal(t, "Quarterly team lunch & drinks", params.Get("description"))
		assert.Equal(t, "120", params.Get("amount"))
		assert.Equal(t, "FOOD", params.Get("category"))
		assert.Equal(t, "2026-08-01", params.Get("expenseDate"))
		assert.Equal(t, "employee@acme.com", params.Get("emailId"))
		assert.Equal(t, "MANAGER", params.Get("role"))
	}
}

func TestDispatchRejection(t *testing.T) {
	var received dto.RejectionNotification
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL, "https://spendtrail.example.com")
	err := client.DispatchRejection(context.Background(), dto.RejectionNotification{
		ExpenseDetails: testDetails(),
		RejectedByRole: "FINANCE",
	})
	require.NoError(t, err)

	assert.Equal(t, "/notification-service/rejection", path)
	assert.Equal(t, "FINANCE", received.RejectedByRole)
	assert.Equal(t, "exp-42", received.ExpenseDetails.ExpenseID)
}

func TestDispatch_ServerErrorIsServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL, "https://spendtrail.example.com")
	err := client.DispatchApprovalRequest(context.Background(), testDetails())

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestDispatch_UnreachableIsServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Shut it down before dispatching.

	client := notifier.NewClient(server.URL, "https://spendtrail.example.com")
	err := client.DispatchApprovalRequest(context.Background(), testDetails())

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}
