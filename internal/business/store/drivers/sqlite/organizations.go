package sqlite

import (
	"context"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
)

type organizationsRepo struct {
	q dbtx
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO organizations (id, name, industry, phone, email, address, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Industry, o.Phone, o.Email, o.Address, o.IsActive, now, now,
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, industry, phone, email, address, is_active, created_at, updated_at
		FROM organizations WHERE id = ?`, id)

	var o domain.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Industry, &o.Phone, &o.Email, &o.Address, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return o, nil
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE organizations
		SET name = ?, industry = ?, phone = ?, email = ?, address = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		o.Name, o.Industry, o.Phone, o.Email, o.Address, o.IsActive, time.Now().UTC(), o.ID,
	)
	return err
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	// Memberships and invitations cascade via FK.
	_, err := r.q.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id)
	return err
}
