package sqlite

import (
	"context"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
)

type membershipsRepo struct {
	q dbtx
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO memberships (organization_id, account_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.OrganizationID, m.AccountID, string(m.Role), now, now,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO memberships (organization_id, account_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (organization_id, account_id)
		DO UPDATE SET role = excluded.role, updated_at = excluded.updated_at`,
		m.OrganizationID, m.AccountID, string(m.Role), now, now,
	)
	return err
}

func (r *membershipsRepo) GetMembership(ctx context.Context, organizationID, accountID string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT organization_id, account_id, role, created_at, updated_at
		FROM memberships WHERE organization_id = ? AND account_id = ?`,
		organizationID, accountID)

	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.OrganizationMembership, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT o.id, o.name, o.industry, o.phone, o.email, o.address, o.is_active, o.created_at, o.updated_at,
		       m.role
		FROM memberships m
		JOIN organizations o ON o.id = m.organization_id
		WHERE m.account_id = ?
		ORDER BY o.created_at, o.id`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrganizationMembership
	for rows.Next() {
		var om domain.OrganizationMembership
		var role string
		o := &om.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Industry, &o.Phone, &o.Email, &o.Address,
			&o.IsActive, &o.CreatedAt, &o.UpdatedAt, &role); err != nil {
			return nil, err
		}
		om.Role = domain.Role(role)
		out = append(out, om)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) ListMembers(ctx context.Context, organizationID string) ([]domain.Member, error) {
	// LEFT JOIN: a member may have been created before their account ever
	// touched this service, in which case the mirror row is missing.
	rows, err := r.q.QueryContext(ctx, `
		SELECT m.organization_id, m.account_id, m.role, m.created_at, m.updated_at,
		       COALESCE(a.email, ''), COALESCE(a.name, '')
		FROM memberships m
		LEFT JOIN accounts a ON a.id = m.account_id
		WHERE m.organization_id = ?
		ORDER BY m.created_at, m.account_id`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		var mem domain.Member
		var role string
		if err := rows.Scan(&mem.Membership.OrganizationID, &mem.Membership.AccountID, &role,
			&mem.Membership.CreatedAt, &mem.Membership.UpdatedAt,
			&mem.Profile.Email, &mem.Profile.Name); err != nil {
			return nil, err
		}
		mem.Membership.Role = domain.Role(role)
		mem.Profile.ID = mem.Membership.AccountID
		out = append(out, mem)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) UpdateRole(ctx context.Context, organizationID, accountID string, role domain.Role) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE memberships SET role = ?, updated_at = ?
		WHERE organization_id = ? AND account_id = ?`,
		string(role), time.Now().UTC(), organizationID, accountID,
	)
	return err
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, organizationID, accountID string) error {
	_, err := r.q.ExecContext(ctx, `
		DELETE FROM memberships WHERE organization_id = ? AND account_id = ?`,
		organizationID, accountID,
	)
	return err
}

func (r *membershipsRepo) CountByRole(ctx context.Context, organizationID string, role domain.Role) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM memberships WHERE organization_id = ? AND role = ?`,
		organizationID, string(role))

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (domain.Membership, error) {
	var m domain.Membership
	var role string
	err := row.Scan(&m.OrganizationID, &m.AccountID, &role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Membership{}, err
	}
	m.Role = domain.Role(role)
	return m, nil
}
