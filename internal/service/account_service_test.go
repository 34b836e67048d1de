package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackforge/hackathon-service/internal/config"
	"github.com/hackforge/hackathon-service/internal/domain"
)

func newTestAccountService() (*AccountService, *fakeAccounts) {
	accounts := newFakeAccounts()
	return NewAccountService(config.AuthConfig{JWTSecret: "test", AccessTokenTTLMinutes: 5, BcryptCost: 4, PasswordMinLength: 8}, accounts), accounts
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	svc, accounts := newTestAccountService()
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterAccountInput{Email: " new@hack.io ", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountTypeHacker, account.AccountType)
	assert.False(t, account.Confirmed)
	assert.NotEqual(t, "pw123456", account.PasswordHash)

	stored, err := accounts.GetByEmail(ctx, "new@hack.io")
	require.NoError(t, err)
	assert.Equal(t, account.ID, stored.ID)

	_, token, _, err := svc.Login(ctx, "new@hack.io", "pw123456")
	require.NoError(t, err)
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID())
}

func TestAccountService_RegisterRejects(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterAccountInput{Email: "dup@hack.io", Password: "pw123456"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterAccountInput{Email: "dup@hack.io", Password: "pw123456"})
	requireDomainError(t, err, http.StatusConflict)

	_, err = svc.Register(ctx, RegisterAccountInput{Email: "boss@hack.io", Password: "pw123456", AccountType: domain.AccountTypeStaff})
	requireDomainError(t, err, http.StatusBadRequest)

	_, err = svc.Register(ctx, RegisterAccountInput{Email: "short@hack.io", Password: "pw"})
	requireDomainError(t, err, http.StatusBadRequest)
}

func TestAccountService_LoginInvalid(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterAccountInput{Email: "x@hack.io", Password: "right-one"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "x@hack.io", "wrong")
	requireDomainError(t, err, http.StatusUnauthorized)

	_, _, _, err = svc.Login(ctx, "nobody@hack.io", "right-one")
	requireDomainError(t, err, http.StatusUnauthorized)
}
