package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration

	// TokenValidationMode selects how the authorization filter validates
	// bearer tokens: "local" against the token store (auth service), or
	// "remote" through the auth service's validation endpoint.
	TokenValidationMode string

	// Sibling service locations. The gateway routes by these; the approval
	// service calls NotificationServiceURL, every non-auth service calls
	// AuthServiceURL for remote token validation.
	AuthServiceURL         string
	CompanyServiceURL      string
	ExpenseServiceURL      string
	ApprovalServiceURL     string
	NotificationServiceURL string

	// ApprovalPublicURL is the externally reachable base of the approval
	// service, used to build the approve/reject links embedded in
	// notifications.
	ApprovalPublicURL string

	// GatewayPort is only read by the gateway binary.
	GatewayPort string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "spendtrail-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("TOKEN_VALIDATION_MODE", "local")
	viper.SetDefault("AUTH_SERVICE_URL", "http://localhost:8080")
	viper.SetDefault("COMPANY_SERVICE_URL", "http://localhost:8080")
	viper.SetDefault("EXPENSE_SERVICE_URL", "http://localhost:8080")
	viper.SetDefault("APPROVAL_SERVICE_URL", "http://localhost:8080")
	viper.SetDefault("NOTIFICATION_SERVICE_URL", "http://localhost:8085")
	viper.SetDefault("APPROVAL_PUBLIC_URL", "http://localhost:8080")
	viper.SetDefault("GATEWAY_PORT", "9000")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION (%q). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration)
	}

	mode := viper.GetString("TOKEN_VALIDATION_MODE")
	if mode != "local" && mode != "remote" {
		log.Printf("Warning: Unknown TOKEN_VALIDATION_MODE %q. Defaulting to local.\n", mode)
		mode = "local"
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration
	cfg.TokenValidationMode = mode
	cfg.AuthServiceURL = viper.GetString("AUTH_SERVICE_URL")
	cfg.CompanyServiceURL = viper.GetString("COMPANY_SERVICE_URL")
	cfg.ExpenseServiceURL = viper.GetString("EXPENSE_SERVICE_URL")
	cfg.ApprovalServiceURL = viper.GetString("APPROVAL_SERVICE_URL")
	cfg.NotificationServiceURL = viper.GetString("NOTIFICATION_SERVICE_URL")
	cfg.ApprovalPublicURL = viper.GetString("APPROVAL_PUBLIC_URL")
	cfg.GatewayPort = viper.GetString("GATEWAY_PORT")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}
