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

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetByID получает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*domain.Team, error) {
	defer metrics.ObserveQuery("get_team", time.Now())

	query := `
		SELECT id, name, slug, parent_id, is_organization
		FROM teams
		WHERE id = $1
	`

	var team domain.Team
	err := r.db.QueryRow(ctx, query, teamID).Scan(
		&team.ID,
		&team.Name,
		&team.Slug,
		&team.ParentID,
		&team.IsOrganization,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team %d: %w", teamID, err)
	}

	return &team, nil
}
