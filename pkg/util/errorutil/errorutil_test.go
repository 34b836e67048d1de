package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain error passes through", func(t *testing.T) {
		original := NewForbidden("nope")
		got := ToDomainError(fmt.Errorf("wrapped: %w", original))
		require.NotNil(t, got)
		assert.Equal(t, http.StatusForbidden, got.HTTPStatus)
		assert.Equal(t, "FORBIDDEN", got.Code)
	})

	t.Run("fiber error keeps status", func(t *testing.T) {
		got := ToDomainError(fiber.NewError(http.StatusBadRequest, "bad"))
		assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
		assert.Equal(t, "bad", got.Message)
	})

	t.Run("no rows is not found", func(t *testing.T) {
		got := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	})

	t.Run("unique violation is conflict", func(t *testing.T) {
		got := ToDomainError(&pgconn.PgError{Code: "23505"})
		assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		cause := errors.New("boom")
		got := ToDomainError(cause)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.ErrorIs(t, got, cause)
	})
}

func TestNewDeliveryError(t *testing.T) {
	var de *DomainError

	require.ErrorAs(t, NewDeliveryError(http.StatusTooManyRequests, "throttled"), &de)
	assert.Equal(t, http.StatusTooManyRequests, de.HTTPStatus)
	assert.Equal(t, "throttled", de.Message)
	assert.Equal(t, http.StatusTooManyRequests, de.Details["statusCode"])

	require.ErrorAs(t, NewDeliveryError(http.StatusFound, "redirected"), &de)
	assert.Equal(t, http.StatusFound, de.HTTPStatus)
	assert.Equal(t, "redirected", de.Message)

	require.ErrorAs(t, NewDeliveryError(0, "no status"), &de)
	assert.Equal(t, http.StatusBadGateway, de.HTTPStatus)
	assert.Equal(t, 0, de.Details["statusCode"])
}
