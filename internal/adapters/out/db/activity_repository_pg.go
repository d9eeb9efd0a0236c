// internal/adapters/out/db/activity_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nftminter/internal/domain/activity"
)

// ActivityRepositoryPG implements activity.RepositoryPort on PostgreSQL.
type ActivityRepositoryPG struct {
	DB *sql.DB
}

var _ activity.RepositoryPort = (*ActivityRepositoryPG)(nil)

func NewActivityRepositoryPG(db *sql.DB) *ActivityRepositoryPG {
	return &ActivityRepositoryPG{DB: db}
}

const activityColumns = `
  id, kind, mint_address, from_wallet, to_wallet, name, uri,
  signature, status, error_type, error_msg, created_at, updated_at`

func (r *ActivityRepositoryPG) Save(ctx context.Context, a activity.Activity) error {
	id := strings.TrimSpace(a.ID)
	if id == "" {
		return activity.ErrInvalidID
	}

	const q = `
INSERT INTO activities (` + activityColumns + `
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  mint_address = EXCLUDED.mint_address,
  from_wallet  = EXCLUDED.from_wallet,
  to_wallet    = EXCLUDED.to_wallet,
  name         = EXCLUDED.name,
  uri          = EXCLUDED.uri,
  signature    = EXCLUDED.signature,
  status       = EXCLUDED.status,
  error_type   = EXCLUDED.error_type,
  error_msg    = EXCLUDED.error_msg,
  updated_at   = EXCLUDED.updated_at
`
	var errType *string
	if a.ErrorType != nil {
		s := string(*a.ErrorType)
		errType = &s
	}
	_, err := r.DB.ExecContext(ctx, q,
		id,
		string(a.Kind),
		a.MintAddress,
		a.FromWallet,
		a.ToWallet,
		a.Name,
		a.URI,
		strPtrOrNil(a.Signature),
		string(a.Status),
		strPtrOrNil(errType),
		strPtrOrNil(a.ErrorMsg),
		a.CreatedAt.UTC(),
		timePtrOrNil(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("db: save activity %s: %w", id, err)
	}
	return nil
}

func (r *ActivityRepositoryPG) GetByID(ctx context.Context, id string) (*activity.Activity, error) {
	q := `SELECT` + activityColumns + ` FROM activities WHERE id = $1`
	a, err := scanActivity(r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, activity.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepositoryPG) List(ctx context.Context, filter activity.Filter, limit int) ([]activity.Activity, error) {
	where, args := buildActivityWhere(filter)
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}
	q := fmt.Sprintf(`SELECT%s FROM activities %s ORDER BY created_at DESC, id DESC`, activityColumns, whereSQL)
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func buildActivityWhere(f activity.Filter) ([]string, []any) {
	var where []string
	var args []any
	if f.MintAddress != nil {
		args = append(args, strings.TrimSpace(*f.MintAddress))
		where = append(where, fmt.Sprintf("mint_address = $%d", len(args)))
	}
	if f.Wallet != nil {
		args = append(args, strings.TrimSpace(*f.Wallet))
		n := len(args)
		where = append(where, fmt.Sprintf("(from_wallet = $%d OR to_wallet = $%d)", n, n))
	}
	if f.Kind != nil {
		args = append(args, string(*f.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(s rowScanner) (activity.Activity, error) {
	var (
		a                          activity.Activity
		kind, status               string
		signature, errType, errMsg sql.NullString
		createdAt                  time.Time
		updatedAt                  sql.NullTime
	)
	if err := s.Scan(
		&a.ID, &kind, &a.MintAddress, &a.FromWallet, &a.ToWallet, &a.Name, &a.URI,
		&signature, &status, &errType, &errMsg, &createdAt, &updatedAt,
	); err != nil {
		return activity.Activity{}, err
	}
	a.Kind = activity.Kind(kind)
	a.Status = activity.Status(status)
	a.CreatedAt = createdAt.UTC()
	if signature.Valid {
		v := signature.String
		a.Signature = &v
	}
	if errType.Valid {
		v := activity.ErrorType(errType.String)
		a.ErrorType = &v
	}
	if errMsg.Valid {
		v := errMsg.String
		a.ErrorMsg = &v
	}
	if updatedAt.Valid {
		v := updatedAt.Time.UTC()
		a.UpdatedAt = &v
	}
	return a, nil
}

func strPtrOrNil(p *string) any {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return s
}

func timePtrOrNil(p *time.Time) any {
	if p == nil || p.IsZero() {
		return nil
	}
	return p.UTC()
}
