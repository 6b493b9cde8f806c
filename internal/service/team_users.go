package service

import (
	"context"

	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/repository"
)

// TeamUsersService handles listing of team members
type TeamUsersService struct {
	teamUsersRepo repository.TeamUsersRepository
}

// NewTeamUsersService creates a new TeamUsersService
func NewTeamUsersService(teamUsersRepo repository.TeamUsersRepository) *TeamUsersService {
	return &TeamUsersService{
		teamUsersRepo: teamUsersRepo,
	}
}

// GetUsers returns accepted members of the team. When filters carry option ids
// the attribute query is used (operator defaults to AND), otherwise the plain
// email query.
func (s *TeamUsersService) GetUsers(
	ctx context.Context,
	teamID int,
	emails []string,
	filters *domain.AttributeFilters,
	page domain.Pagination,
) ([]*domain.User, error) {
	if emails == nil {
		emails = []string{}
	}
	page = page.WithDefaults()

	if filters.HasOptions() {
		operator := filters.Operator
		if operator == "" {
			operator = domain.AttributeOperatorAnd
		}

		return s.teamUsersRepo.ListByAttributeFilters(ctx, teamID, domain.AttributeFilters{
			AssignedOptionIDs: filters.AssignedOptionIDs,
			Operator:          operator,
		}, emails, page.Skip, page.Take)
	}

	return s.teamUsersRepo.ListByEmails(ctx, teamID, emails, page.Skip, page.Take)
}

// GetUsersByIDs returns the team members among userIDs. It fails when none of
// the ids belongs to the team.
func (s *TeamUsersService) GetUsersByIDs(ctx context.Context, teamID int, userIDs []int) ([]*domain.User, error) {
	users, err := s.teamUsersRepo.ListByIDs(ctx, teamID, userIDs)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, domain.ErrUsersNotInTeam
	}

	return users, nil
}

// GetUserByEmail returns a single accepted team member by email
func (s *TeamUsersService) GetUserByEmail(ctx context.Context, teamID int, email string) (*domain.User, error) {
	return s.teamUsersRepo.FindByEmail(ctx, teamID, email)
}
