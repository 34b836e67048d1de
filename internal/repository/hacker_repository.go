package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hackforge/hackathon-service/internal/domain"
)

// HackerRepository encapsulates hacker application persistence.
type HackerRepository interface {
	Create(ctx context.Context, details domain.HackerDetails) (*domain.Hacker, error)
	GetByID(ctx context.Context, id string) (*domain.Hacker, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.Hacker, error)
	UpdateOne(ctx context.Context, id string, patch domain.HackerPatch) (*domain.Hacker, error)
	SetResumeKey(ctx context.Context, id, key string) error
}

// DBTX is the part of *pgxpool.Pool the repositories need.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type hackerRepository struct {
	db DBTX
}

// NewHackerRepository instantiates repository.
func NewHackerRepository(db DBTX) HackerRepository {
	return &hackerRepository{db: db}
}

const hackerColumns = `id, account_id, school, gender, needs_bus, application, status, created_at, updated_at`

func (r *hackerRepository) Create(ctx context.Context, details domain.HackerDetails) (*domain.Hacker, error) {
	const query = `
        INSERT INTO hackers (id, account_id, school, gender, needs_bus, application, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING ` + hackerColumns
	application := details.Application
	if application == nil {
		application = domain.Application{}
	}
	return scanHacker(r.db.QueryRow(ctx, query,
		details.ID,
		details.AccountID,
		details.School,
		details.Gender,
		details.NeedsBus,
		application,
		details.Status,
	))
}

func (r *hackerRepository) GetByID(ctx context.Context, id string) (*domain.Hacker, error) {
	if !isUUID(id) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + hackerColumns + ` FROM hackers WHERE id=$1`
	return scanHacker(r.db.QueryRow(ctx, query, id))
}

func (r *hackerRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Hacker, error) {
	if !isUUID(accountID) {
		return nil, pgx.ErrNoRows
	}
	const query = `SELECT ` + hackerColumns + ` FROM hackers WHERE account_id=$1`
	return scanHacker(r.db.QueryRow(ctx, query, accountID))
}

// UpdateOne applies patch and returns the updated row, or pgx.ErrNoRows.
func (r *hackerRepository) UpdateOne(ctx context.Context, id string, patch domain.HackerPatch) (*domain.Hacker, error) {
	if !isUUID(id) {
		return nil, pgx.ErrNoRows
	}
	query, args := buildHackerUpdate(id, patch)
	return scanHacker(r.db.QueryRow(ctx, query, args...))
}

func (r *hackerRepository) SetResumeKey(ctx context.Context, id, key string) error {
	if !isUUID(id) {
		return pgx.ErrNoRows
	}
	const query = `
        UPDATE hackers SET application = jsonb_set(
                application,
                '{portfolioURL}',
                CASE WHEN jsonb_typeof(application->'portfolioURL') = 'object'
                     THEN application->'portfolioURL' ELSE '{}'::jsonb END
                    || jsonb_build_object('resume', $1::text)
            ),
            updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, key, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// mergeApplication merges the patch into the top level of the application
// document, then puts back the stored resume key so only SetResumeKey can
// change it.
const mergeApplication = `application=CASE
            WHEN application #> '{portfolioURL,resume}' IS NULL THEN application || $%[1]d::jsonb
            ELSE jsonb_set(
                application || $%[1]d::jsonb,
                '{portfolioURL}',
                CASE WHEN jsonb_typeof((application || $%[1]d::jsonb)->'portfolioURL') = 'object'
                     THEN (application || $%[1]d::jsonb)->'portfolioURL' ELSE '{}'::jsonb END
                    || jsonb_build_object('resume', application #> '{portfolioURL,resume}')
            )
        END`

// buildHackerUpdate renders the UPDATE for the fields present on patch.
func buildHackerUpdate(id string, patch domain.HackerPatch) (string, []any) {
	clauses := []string{}
	args := []any{}

	if patch.School != nil {
		args = append(args, *patch.School)
		clauses = append(clauses, fmt.Sprintf("school=$%d", len(args)))
	}
	if patch.Gender != nil {
		args = append(args, *patch.Gender)
		clauses = append(clauses, fmt.Sprintf("gender=$%d", len(args)))
	}
	if patch.NeedsBus != nil {
		args = append(args, *patch.NeedsBus)
		clauses = append(clauses, fmt.Sprintf("needs_bus=$%d", len(args)))
	}
	if patch.Application != nil {
		args = append(args, patch.Application)
		clauses = append(clauses, fmt.Sprintf(mergeApplication, len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	clauses = append(clauses, "updated_at=NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE hackers SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(clauses, ", "), len(args), hackerColumns)
	return query, args
}

// isUUID guards uuid columns; a malformed id cannot match any row.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanHacker(row pgx.Row) (*domain.Hacker, error) {
	var hacker domain.Hacker
	if err := row.Scan(
		&hacker.ID,
		&hacker.AccountID,
		&hacker.School,
		&hacker.Gender,
		&hacker.NeedsBus,
		&hacker.Application,
		&hacker.Status,
		&hacker.CreatedAt,
		&hacker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &hacker, nil
}
