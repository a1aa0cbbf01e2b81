package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spendtrail/spendtrail_backend/internal/apperrors"
	"github.com/spendtrail/spendtrail_backend/internal/core/domain"
	portsrepo "github.com/spendtrail/spendtrail_backend/internal/core/ports/repositories"
	portssvc "github.com/spendtrail/spendtrail_backend/internal/core/ports/services"
	"github.com/spendtrail/spendtrail_backend/internal/dto"
	"github.com/spendtrail/spendtrail_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo    portsrepo.UserRepository
	companyRepo portsrepo.CompanyRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, companyRepo portsrepo.CompanyRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new account under an existing company domain.
func (s *userService) CreateUser(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if _, err := s.companyRepo.FindCompanyByDomain(ctx, req.CompanyDomain); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company domain %s is not registered: %w", req.CompanyDomain, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify company domain: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user := domain.User{
		Email:         email,
		Name:          req.Name,
		PasswordHash:  passwordHash,
		Role:          role,
		CompanyDomain: req.CompanyDomain,
		Enabled:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     email,
			LastUpdatedAt: now,
			LastUpdatedBy: email,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account %s already exists: %w", email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created",
		slog.String("email", user.Email),
		slog.String("company_domain", user.CompanyDomain),
		slog.String("role", string(user.Role)))

	return &user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Authenticate verifies the password and the account flags. It returns
// ErrUnauthorized for both a bad password and an unknown account, so callers
// cannot distinguish the two.
func (s *userService) Authenticate(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.CanAuthenticate() {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, email string, refreshTokenHash string, expiryTime *time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, email, refreshTokenHash, expiryTime)
}

// EnsureGoogleUser finds the account matching a verified Google identity, or
// provisions one as an employee of the company domain implied by the email's
// domain part. The domain must already be registered.
func (s *userService) EnsureGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("google account email is not verified: %w", apperrors.ErrUnauthorized)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return nil, fmt.Errorf("%w: malformed email %q", apperrors.ErrValidation, email)
	}
	companyDomain := email[at+1:]
	if _, err := s.companyRepo.FindCompanyByDomain(ctx, companyDomain); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company domain %s is not registered: %w", companyDomain, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify company domain: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		Email:         email,
		Name:          info.Name,
		Role:          domain.RoleEmployee,
		CompanyDomain: companyDomain,
		Enabled:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     email,
			LastUpdatedAt: now,
			LastUpdatedBy: email,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to provision google user: %w", err)
	}

	s.LogInfo(ctx, "Provisioned user from Google sign-in", slog.String("email", email))
	return &newUser, nil
}
