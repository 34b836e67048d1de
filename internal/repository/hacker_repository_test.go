package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/hackforge/hackathon-service/internal/domain"
)

func TestBuildHackerUpdate(t *testing.T) {
	school := "Concordia"
	needsBus := true
	status := domain.HackerStatusAccepted

	query, args := buildHackerUpdate("h1", domain.HackerPatch{
		School:      &school,
		NeedsBus:    &needsBus,
		Application: domain.Application{"essay": "hello"},
		Status:      &status,
	})

	assert.Equal(t,
		"UPDATE hackers SET school=$1, needs_bus=$2, "+fmt.Sprintf(mergeApplication, 3)+", status=$4, updated_at=NOW() WHERE id=$5 RETURNING "+hackerColumns,
		query,
	)
	assert.NotContains(t, query, "%!")
	assert.Equal(t, []any{"Concordia", true, domain.Application{"essay": "hello"}, status, "h1"}, args)
}

func TestBuildHackerUpdate_EmptyPatchTouchesTimestamp(t *testing.T) {
	query, args := buildHackerUpdate("h1", domain.HackerPatch{})

	assert.Equal(t, "UPDATE hackers SET updated_at=NOW() WHERE id=$1 RETURNING "+hackerColumns, query)
	assert.Equal(t, []any{"h1"}, args)
}

func TestHackerRepository_MalformedIDIsAbsent(t *testing.T) {
	repo := NewHackerRepository(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = repo.GetByAccountID(ctx, "")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = repo.UpdateOne(ctx, "42", domain.HackerPatch{})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, repo.SetResumeKey(ctx, "42", "resumes/1-42"), pgx.ErrNoRows)

	_, err = NewAccountRepository(nil).GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
