package repository

import (
	"context"

	"github.com/aidar/team-users-service/internal/domain"
)

// TeamUsersRepository определяет запросы чтения пользователей команды.
// Все методы возвращают только пользователей с принятым членством в команде.
type TeamUsersRepository interface {
	// ListByEmails возвращает пользователей команды, опционально ограниченных списком email
	ListByEmails(ctx context.Context, teamID int, emails []string, skip, take int) ([]*domain.User, error)

	// ListByAttributeFilters возвращает пользователей команды, подходящих под фильтр опций атрибутов
	ListByAttributeFilters(ctx context.Context, teamID int, filters domain.AttributeFilters, emails []string, skip, take int) ([]*domain.User, error)

	// ListByIDs возвращает пользователей команды из списка id, без пагинации
	ListByIDs(ctx context.Context, teamID int, userIDs []int) ([]*domain.User, error)

	// FindByEmail возвращает одного участника команды по email
	FindByEmail(ctx context.Context, teamID int, email string) (*domain.User, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// GetByID получает команду по ID
	GetByID(ctx context.Context, teamID int) (*domain.Team, error)
}

// MembershipRepository определяет методы для работы с членствами
type MembershipRepository interface {
	// GetByUserAndTeam получает членство пользователя в команде (принятое или нет)
	GetByUserAndTeam(ctx context.Context, userID, teamID int) (*domain.Membership, error)
}

// APIKeyRepository определяет методы для работы с API ключами
type APIKeyRepository interface {
	// GetUserIDByHashedKey возвращает владельца действующего ключа по его хешу
	GetUserIDByHashedKey(ctx context.Context, hashedKey string) (int, error)
}
