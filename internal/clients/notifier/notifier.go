// Package notifier is the HTTP client for the notification service. Delivery
// is best-effort: the approval state machine commits its transition first and
// treats dispatch failures as log-only events.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
)

const defaultTimeout = 5 * time.Second

// Client dispatches approval notifications over HTTP.
type Client struct {
	baseURL           string
	approvalPublicURL string
	httpClient        *http.Client
}

// NewClient creates a notification client. baseURL locates the notification
// service; approvalPublicURL is the externally reachable base of the approval
// service used to build the approve/reject callback links.
func NewClient(baseURL string, approvalPublicURL string) *Client {
	return &Client{
		baseURL:           baseURL,
		approvalPublicURL: approvalPublicURL,
		httpClient:        &http.Client{Timeout: defaultTimeout},
	}
}

var _ portssvc.NotificationDispatcher = (*Client)(nil)

// DispatchApprovalRequest asks the notification service to deliver an
// actionable approve/reject message to the role named in the details.
func (c *Client) DispatchApprovalRequest(ctx context.Context, details dto.ExpenseDetails) error {
	notification := dto.ApprovalNotification{
		ExpenseDetails: details,
		ApproveLink:    c.buildActionLink("approve", details),
		RejectLink:     c.buildActionLink("reject", details),
	}
	return c.post(ctx, "/notification-service/approval-request", notification)
}

// DispatchRejection informs the original requester of a rejection.
func (c *Client) DispatchRejection(ctx context.Context, notification dto.RejectionNotification) error {
	return c.post(ctx, "/notification-service/rejection", notification)
}

// buildActionLink encodes the snapshot field set as query parameters on the
// approval service's GET callbacks. The parameter names are an external
// contract.
func (c *Client) buildActionLink(action string, details dto.ExpenseDetails) string {
	params := url.Values{}
	params.Set("expenseId", details.ExpenseID)
	params.Set("title", details.Title)
	params.Set("description", details.Description)
	params.Set("amount", details.Amount.String())
	params.Set("category", details.Category)
	params.Set("expenseDate", details.ExpenseDate)
	params.Set("emailId", details.EmailID)
	params.Set("role", details.Role)

	return c.approvalPublicURL + "/approval-service/" + action + "?" + params.Encode()
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notification service unreachable: %w: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification service returned status %d: %w", resp.StatusCode, apperrors.ErrServiceUnavailable)
	}
	return nil
}
