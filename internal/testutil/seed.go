package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidar/team-users-service/internal/domain"
)

// TestPassword пароль всех пользователей, созданных Seeder
const TestPassword = "correct-horse-battery"

// Seeder создает тестовые записи напрямую в БД
type Seeder struct {
	t    *testing.T
	pool *pgxpool.Pool
}

// NewSeeder создает Seeder поверх пула
func NewSeeder(t *testing.T, pool *pgxpool.Pool) *Seeder {
	return &Seeder{t: t, pool: pool}
}

func (s *Seeder) nextID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// User создает пользователя с указанным email и bcrypt хешем пароля
func (s *Seeder) User(email string) int {
	s.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(s.t, err)

	var id int
	err = s.pool.QueryRow(context.Background(),
		`INSERT INTO users (email, username, name, password_hash, metadata)
		 VALUES ($1, $2, $2, $3, '{"source":"test"}')
		 RETURNING id`,
		email, strings.Split(email, "@")[0], string(hash),
	).Scan(&id)
	require.NoError(s.t, err)
	return id
}

// Organization создает организацию (команду верхнего уровня)
func (s *Seeder) Organization(name string) int {
	s.t.Helper()
	return s.team(name, nil, true)
}

// Team создает команду; parentID может быть nil
func (s *Seeder) Team(name string, parentID *int) int {
	s.t.Helper()
	return s.team(name, parentID, false)
}

func (s *Seeder) team(name string, parentID *int, organization bool) int {
	s.t.Helper()

	var id int
	err := s.pool.QueryRow(context.Background(),
		`INSERT INTO teams (name, slug, parent_id, is_organization)
		 VALUES ($1, $1, $2, $3)
		 RETURNING id`,
		name, parentID, organization,
	).Scan(&id)
	require.NoError(s.t, err)
	return id
}

// Membership создает членство и возвращает его id
func (s *Seeder) Membership(userID, teamID int, role domain.MembershipRole, accepted bool) int {
	s.t.Helper()

	var id int
	err := s.pool.QueryRow(context.Background(),
		`INSERT INTO memberships (user_id, team_id, role, accepted)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, teamID, string(role), accepted,
	).Scan(&id)
	require.NoError(s.t, err)
	return id
}

// AttributeOption создает атрибут команды с одной опцией и возвращает id опции
func (s *Seeder) AttributeOption(teamID int, optionID string) string {
	s.t.Helper()
	ctx := context.Background()

	attributeID := s.nextID("attr")
	_, err := s.pool.Exec(ctx,
		`INSERT INTO attributes (id, team_id, name, slug) VALUES ($1, $2, $1, $1)`,
		attributeID, teamID,
	)
	require.NoError(s.t, err)

	_, err = s.pool.Exec(ctx,
		`INSERT INTO attribute_options (id, attribute_id, value, slug) VALUES ($1, $2, $1, $1)`,
		optionID, attributeID,
	)
	require.NoError(s.t, err)
	return optionID
}

// Assign назначает опцию атрибута членству
func (s *Seeder) Assign(membershipID int, optionID string) {
	s.t.Helper()

	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO attribute_to_user (id, member_id, attribute_option_id) VALUES ($1, $2, $3)`,
		s.nextID("atu"), membershipID, optionID,
	)
	require.NoError(s.t, err)
}

// APIKey сохраняет уже захешированный API ключ пользователя
func (s *Seeder) APIKey(userID int, hashedKey string, expired bool) {
	s.t.Helper()

	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO api_keys (id, user_id, hashed_key, expires_at)
		 VALUES ($1, $2, $3, CASE WHEN $4::boolean THEN NOW() - INTERVAL '1 day' END)`,
		s.nextID("key"), userID, hashedKey, expired,
	)
	require.NoError(s.t, err)
}
