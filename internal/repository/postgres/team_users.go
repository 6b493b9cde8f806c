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

// TeamUsersRepository реализует repository.TeamUsersRepository для PostgreSQL
type TeamUsersRepository struct {
	db *pgxpool.Pool
}

// NewTeamUsersRepository создает новый экземпляр TeamUsersRepository
func NewTeamUsersRepository(db *pgxpool.Pool) *TeamUsersRepository {
	return &TeamUsersRepository{db: db}
}

// ListByEmails возвращает принятых участников команды, опционально ограниченных списком email
func (r *TeamUsersRepository) ListByEmails(ctx context.Context, teamID int, emails []string, skip, take int) ([]*domain.User, error) {
	defer metrics.ObserveQuery("list_by_emails", time.Now())

	query, args := newMemberQuery(teamID).
		withEmails(emails).
		page(skip, take).
		build()

	users, err := r.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list team %d users by emails: %w", teamID, err)
	}
	return users, nil
}

// ListByAttributeFilters возвращает принятых участников команды, подходящих под фильтр опций.
// Выборка идет по членствам, поэтому каждое членство попадает в результат не более одного раза.
func (r *TeamUsersRepository) ListByAttributeFilters(
	ctx context.Context,
	teamID int,
	filters domain.AttributeFilters,
	emails []string,
	skip, take int,
) ([]*domain.User, error) {
	defer metrics.ObserveQuery("list_by_attribute_filters", time.Now())

	q, err := newMemberQuery(teamID).
		withEmails(emails).
		withAttributeFilters(filters)
	if err != nil {
		return nil, err
	}
	query, args := q.page(skip, take).build()

	users, err := r.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list team %d users by attribute filters: %w", teamID, err)
	}
	return users, nil
}

// ListByIDs возвращает принятых участников команды из списка id
func (r *TeamUsersRepository) ListByIDs(ctx context.Context, teamID int, userIDs []int) ([]*domain.User, error) {
	defer metrics.ObserveQuery("list_by_ids", time.Now())

	query, args := newMemberQuery(teamID).
		withUserIDs(userIDs).
		build()

	users, err := r.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list team %d users by ids: %w", teamID, err)
	}
	return users, nil
}

// FindByEmail получает одного принятого участника команды по email
func (r *TeamUsersRepository) FindByEmail(ctx context.Context, teamID int, email string) (*domain.User, error) {
	defer metrics.ObserveQuery("find_by_email", time.Now())

	query, args := newMemberQuery(teamID).
		withEmails([]string{email}).
		page(0, 1).
		build()

	user, err := scanTeamUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find team %d user by email: %w", teamID, err)
	}
	return user, nil
}

func (r *TeamUsersRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanTeamUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// scanTeamUser читает строку с колонками userColumns
func scanTeamUser(row pgx.Row) (*domain.User, error) {
	var (
		user       domain.User
		membership domain.Membership
		role       string
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.EmailVerified,
		&user.Bio,
		&user.AvatarURL,
		&user.TimeZone,
		&user.WeekStart,
		&user.AppTheme,
		&user.Theme,
		&user.DefaultScheduleID,
		&user.Locale,
		&user.TimeFormat,
		&user.HideBranding,
		&user.BrandColor,
		&user.DarkBrandColor,
		&user.AllowDynamicBooking,
		&user.CreatedDate,
		&user.Verified,
		&user.InvitedTo,
		&user.Metadata,
		&user.PasswordHash,
		&user.Locked,
		&membership.ID,
		&membership.TeamID,
		&membership.UserID,
		&role,
		&membership.Accepted,
		&membership.DisableImpersonation,
	)
	if err != nil {
		return nil, err
	}

	membership.Role = domain.MembershipRole(role)
	user.Memberships = []domain.Membership{membership}

	return &user, nil
}
