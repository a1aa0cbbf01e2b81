// Package gateway is the edge router. It forwards requests by path prefix to
// the owning service and serves the per-service fallback payloads when an
// upstream is unreachable.
package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
)

// serviceNames maps the routable prefixes to their display names used in
// fallback messages. The key set is the authoritative list of services the
// gateway knows about.
var serviceNames = map[string]string{
	"auth-service":         "Auth Service",
	"company-service":      "Company Service",
	"expense-service":      "Expense Service",
	"approval-service":     "Approval Service",
	"notification-service": "Notification Service",
}

// Router builds the gateway engine: one reverse proxy per service prefix and
// the fallback endpoints.
func Router(cfg *config.Config, logger *slog.Logger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	upstreams := map[string]string{
		"auth-service":         cfg.AuthServiceURL,
		"company-service":      cfg.CompanyServiceURL,
		"expense-service":      cfg.ExpenseServiceURL,
		"approval-service":     cfg.ApprovalServiceURL,
		"notification-service": cfg.NotificationServiceURL,
	}

	for service, upstream := range upstreams {
		proxy, err := newServiceProxy(service, upstream, logger)
		if err != nil {
			return nil, err
		}
		r.Any("/"+service+"/*any", gin.WrapH(proxy))
	}

	r.Any("/fallback/:service", Fallback)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r, nil
}

// newServiceProxy builds a reverse proxy for one service prefix. An
// unreachable upstream answers with the service's fallback payload instead of
// a bare 502.
func newServiceProxy(service string, upstream string, logger *slog.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		logger.Error("Upstream unreachable",
			slog.String("service", service),
			slog.String("upstream", upstream),
			slog.String("error", err.Error()))
		writeFallback(w, service)
	}

	return proxy, nil
}

// Fallback serves the static unavailability payload for a known service.
func Fallback(c *gin.Context) {
	service := c.Param("service")
	if _, ok := serviceNames[service]; !ok {
		c.JSON(http.StatusNotFound, dto.StatusResponse{
			Status:  http.StatusNotFound,
			Message: "Unknown service",
		})
		return
	}

	c.JSON(http.StatusServiceUnavailable, fallbackPayload(service))
}

func fallbackPayload(service string) dto.StatusResponse {
	return dto.StatusResponse{
		Status:  http.StatusServiceUnavailable,
		Message: serviceNames[service] + " is currently unavailable. Please try again later.",
	}
}

// writeFallback mirrors the /fallback/:service body for requests that failed
// inside the proxy.
func writeFallback(w http.ResponseWriter, service string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(fallbackPayload(service))
}
