package middleware_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aidar/team-users-service/internal/domain"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, credential string) (*domain.Caller, error) {
	args := m.Called(ctx, credential)
	caller, _ := args.Get(0).(*domain.Caller)
	return caller, args.Error(1)
}

type mockTeamRepository struct {
	mock.Mock
}

func (m *mockTeamRepository) GetByID(ctx context.Context, teamID int) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) GetByUserAndTeam(ctx context.Context, userID, teamID int) (*domain.Membership, error) {
	args := m.Called(ctx, userID, teamID)
	membership, _ := args.Get(0).(*domain.Membership)
	return membership, args.Error(1)
}
