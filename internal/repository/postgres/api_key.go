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

// APIKeyRepository реализует repository.APIKeyRepository для PostgreSQL
type APIKeyRepository struct {
	db *pgxpool.Pool
}

// NewAPIKeyRepository создает новый экземпляр APIKeyRepository
func NewAPIKeyRepository(db *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// GetUserIDByHashedKey возвращает владельца ключа; истекшие ключи не учитываются
func (r *APIKeyRepository) GetUserIDByHashedKey(ctx context.Context, hashedKey string) (int, error) {
	defer metrics.ObserveQuery("get_api_key", time.Now())

	query := `
		SELECT user_id
		FROM api_keys
		WHERE hashed_key = $1
		  AND (expires_at IS NULL OR expires_at > NOW())
	`

	var userID int
	if err := r.db.QueryRow(ctx, query, hashedKey).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInvalidAPIKey
		}
		return 0, fmt.Errorf("get api key: %w", err)
	}

	return userID, nil
}
