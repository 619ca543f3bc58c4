package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/bullion_books_app/internal/apperrors"
	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bullion_books_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bullion_books_app/internal/core/ports/services"
	"github.com/SscSPs/bullion_books_app/internal/middleware"
	"github.com/SscSPs/bullion_books_app/internal/platform/config"
	"github.com/SscSPs/bullion_books_app/internal/utils"
)

// ErrInvalidCredentials is returned for a bad username or password. Both
// cases map to the same error so the login surface leaks nothing.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService authenticates the merchant and issues access tokens.
type authService struct {
	cfg          *config.Config
	merchantRepo portsrepo.MerchantRepositoryFacade
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, merchantRepo portsrepo.MerchantRepositoryFacade) portssvc.AuthSvcFacade {
	return &authService{
		cfg:          cfg,
		merchantRepo: merchantRepo,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the merchant's credentials and returns a signed JWT.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.Merchant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	merchant, err := s.merchantRepo.FindMerchantByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Login attempt for unknown username", slog.String("username", username))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, merchant.PasswordHash) {
		logger.Warn("Login attempt with wrong password", slog.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(merchant.MerchantID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		return "", nil, err
	}

	logger.Info("Merchant logged in", slog.String("merchant_id", merchant.MerchantID))
	return token, merchant, nil
}
