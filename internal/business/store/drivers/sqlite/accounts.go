package sqlite

import (
	"context"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
)

type accountsRepo struct {
	q dbtx
}

func (r *accountsRepo) UpsertAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id)
		DO UPDATE SET email = excluded.email, name = excluded.name, updated_at = excluded.updated_at`,
		a.ID, a.Email, a.Name, now, now,
	)
	return err
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, name, created_at, updated_at FROM accounts WHERE id = ?`, id)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}
