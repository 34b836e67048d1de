package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hackforge/hackathon-service/internal/auth"
	"github.com/hackforge/hackathon-service/internal/config"
	"github.com/hackforge/hackathon-service/internal/domain"
	"github.com/hackforge/hackathon-service/internal/repository"
	apperrors "github.com/hackforge/hackathon-service/pkg/util/errorutil"
)

// RegisterAccountInput describes a new account.
type RegisterAccountInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	AccountType domain.AccountType
}

// AccountService coordinates registration and login flows.
type AccountService struct {
	accounts repository.AccountRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, accounts repository.AccountRepository) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		hasher:   auth.NewPasswordHasher(cfg.BcryptCost, cfg.PasswordMinLength),
	}
}

// Register creates an unconfirmed account. Staff accounts cannot be
// self-registered.
func (s *AccountService) Register(ctx context.Context, in RegisterAccountInput) (*domain.Account, error) {
	if in.AccountType == "" {
		in.AccountType = domain.AccountTypeHacker
	}
	switch in.AccountType {
	case domain.AccountTypeHacker, domain.AccountTypeSponsor, domain.AccountTypeVolunteer:
	default:
		return nil, apperrors.NewValidationError("account type not allowed", map[string]any{"accountType": string(in.AccountType)})
	}

	email := strings.TrimSpace(in.Email)
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return nil, apperrors.NewValidationError("password too short", nil)
	}
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		AccountType:  in.AccountType,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}
	return account, nil
}

// Login authenticates an account and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.hasher.Verify("", password)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !s.hasher.Verify(account.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.AccountType)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
