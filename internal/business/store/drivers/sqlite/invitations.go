package sqlite

import (
	"context"
	"time"

	"github.com/bizkopa/bizkopa/internal/business/domain"
)

type invitationsRepo struct {
	q dbtx
}

const invitationColumns = `id, organization_id, email, role, token_hash, status, created_by, expires_at, created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.OrganizationID, inv.Email, string(inv.Role), inv.TokenHash,
		string(inv.Status), inv.CreatedBy, inv.ExpiresAt.UTC(), now, now,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations WHERE token_hash = ?`, hash)
	return scanInvitation(row)
}

func (r *invitationsRepo) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE organization_id = ?
		ORDER BY created_at DESC, id DESC`, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) RefreshToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE invitations SET token_hash = ?, expires_at = ?, updated_at = ?
		WHERE id = ?`,
		tokenHash, expiresAt.UTC(), time.Now().UTC(), id,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE invitations SET status = ?, updated_at = ?
		WHERE id = ?`,
		string(status), time.Now().UTC(), id,
	)
	return err
}

func (r *invitationsRepo) MarkLapsedExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invitations SET status = 'expired', updated_at = ?
		WHERE status = 'pending' AND expires_at < ?`,
		now.UTC(), now.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var inv domain.Invitation
	var role, status string
	err := row.Scan(&inv.ID, &inv.OrganizationID, &inv.Email, &role, &inv.TokenHash,
		&status, &inv.CreatedBy, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	return inv, nil
}
