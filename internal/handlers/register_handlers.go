package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/spendtrail/spendtrail_backend/cmd/docs"
	"github.com/spendtrail/spendtrail_backend/internal/clients/authclient"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/middleware"
	"github.com/spendtrail/spendtrail_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	if err := RegisterCustomValidators(); err != nil {
		return err
	}

	r.Use(cors.Default())

	// Health check and home routes stay outside every rule.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Every request passes the authorization filter; routes without a rule
	// pass through unauthenticated.
	r.Use(middleware.AuthorizationFilter(defaultRouteRules(), newTokenValidator(cfg, services)))

	limitMiddleware := newRateLimitMiddleware()

	registerAuthRoutes(r, limitMiddleware, services)
	registerCompanyRoutes(r, limitMiddleware, services.Company)
	registerExpenseRoutes(r, services.Expense)
	registerApprovalRoutes(r, services.Approval)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// newTokenValidator selects between validating tokens against the local token
// store (auth side) and delegating to the auth service over HTTP (every other
// deployment).
func newTokenValidator(cfg *config.Config, services *portssvc.ServiceContainer) middleware.TokenValidator {
	if cfg.TokenValidationMode == "remote" {
		return authclient.NewClient(cfg.AuthServiceURL, cfg.JWTSecret)
	}
	return services.Token
}

// newRateLimitMiddleware builds the per-IP limiter applied to credential
// endpoints: 5 requests per minute.
func newRateLimitMiddleware() gin.HandlerFunc {
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// defaultRouteRules is the authorization table. Paths absent from the table
// (signup, login, company registration, validate-access-token, health) are
// public.
func defaultRouteRules() []middleware.RouteRule {
	allRoles := []domain.Role{domain.RoleEmployee, domain.RoleManager, domain.RoleFinance, domain.RoleAdmin}
	approverRoles := []domain.Role{domain.RoleManager, domain.RoleFinance, domain.RoleAdmin}

	return []middleware.RouteRule{
		{PathPattern: "/auth-service/logout", Method: "POST", Roles: allRoles},
		{PathPattern: "/approval-service/ask-for-approve", Method: "POST", Roles: allRoles},
		{PathPattern: "/approval-service/approve", Method: "GET", Roles: approverRoles},
		{PathPattern: "/approval-service/reject", Method: "GET", Roles: approverRoles},
		{PathPattern: "/approval-service/approvals", Method: "GET", Roles: allRoles},
		{PathPattern: "/expense-service/*", Method: "*", Roles: allRoles},
		{PathPattern: "/company-service/companies/*", Method: "GET", Roles: allRoles},
	}
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
