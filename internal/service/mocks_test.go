package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aidar/team-users-service/internal/domain"
)

type mockTeamUsersRepository struct {
	mock.Mock
}

func (m *mockTeamUsersRepository) ListByEmails(ctx context.Context, teamID int, emails []string, skip, take int) ([]*domain.User, error) {
	args := m.Called(ctx, teamID, emails, skip, take)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *mockTeamUsersRepository) ListByAttributeFilters(ctx context.Context, teamID int, filters domain.AttributeFilters, emails []string, skip, take int) ([]*domain.User, error) {
	args := m.Called(ctx, teamID, filters, emails, skip, take)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *mockTeamUsersRepository) ListByIDs(ctx context.Context, teamID int, userIDs []int) ([]*domain.User, error) {
	args := m.Called(ctx, teamID, userIDs)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

func (m *mockTeamUsersRepository) FindByEmail(ctx context.Context, teamID int, email string) (*domain.User, error) {
	args := m.Called(ctx, teamID, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockAPIKeyRepository struct {
	mock.Mock
}

func (m *mockAPIKeyRepository) GetUserIDByHashedKey(ctx context.Context, hashedKey string) (int, error) {
	args := m.Called(ctx, hashedKey)
	return args.Int(0), args.Error(1)
}
