package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/metrics"
)

// MembershipRepository реализует repository.MembershipRepository для PostgreSQL
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository создает новый экземпляр MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// GetByUserAndTeam получает членство пользователя в команде
func (r *MembershipRepository) GetByUserAndTeam(ctx context.Context, userID, teamID int) (*domain.Membership, error) {
	defer metrics.ObserveQuery("get_membership", time.Now())

	query := `
		SELECT id, team_id, user_id, role, accepted, disable_impersonation
		FROM memberships
		WHERE user_id = $1 AND team_id = $2
	`

	var (
		membership domain.Membership
		role       string
	)
	err := r.db.QueryRow(ctx, query, userID, teamID).Scan(
		&membership.ID,
		&membership.TeamID,
		&membership.UserID,
		&role,
		&membership.Accepted,
		&membership.DisableImpersonation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("get membership of user %d in team %d: %w", userID, teamID, err)
	}

	membership.Role = domain.MembershipRole(role)
	return &membership, nil
}
