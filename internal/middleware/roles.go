package middleware

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/domain"
	"github.com/aidar/team-users-service/internal/handler"
	"github.com/aidar/team-users-service/internal/metrics"
	"github.com/aidar/team-users-service/internal/repository"
)

// RequireTeamRole создает middleware, которое пропускает только участников команды из пути
// с ролью не ниже required. Администраторы родительской организации тоже проходят.
func RequireTeamRole(
	teams repository.TeamRepository,
	memberships repository.MembershipRepository,
	required domain.TeamRole,
	log *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r.Context())
			if caller == nil {
				metrics.IncAuthOutcome("team_role", "unauthenticated")
				handler.RespondWithError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, "unauthorized")
				return
			}

			teamID, verr := handler.ParseTeamID(r)
			if verr != nil {
				handler.RespondWithValidationError(w, r, []handler.ValidationError{*verr})
				return
			}

			ctx := r.Context()
			team, err := teams.GetByID(ctx, teamID)
			if err != nil {
				handler.HandleError(w, r, log, err)
				return
			}

			membership, err := memberships.GetByUserAndTeam(ctx, caller.UserID, team.ID)
			if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
				handler.HandleError(w, r, log, err)
				return
			}
			if membership.Satisfies(required) {
				metrics.IncAuthOutcome("team_role", "member")
				next.ServeHTTP(w, r)
				return
			}

			if team.HasParent() {
				orgMembership, err := memberships.GetByUserAndTeam(ctx, caller.UserID, *team.ParentID)
				if err != nil && !errors.Is(err, domain.ErrMembershipNotFound) {
					handler.HandleError(w, r, log, err)
					return
				}
				if orgMembership.IsOrgAdmin() {
					metrics.IncAuthOutcome("team_role", "org_admin")
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("team role check failed",
				zap.Int("user_id", caller.UserID),
				zap.Int("team_id", teamID),
				zap.String("required", string(required)),
			)
			metrics.IncAuthOutcome("team_role", "forbidden")
			handler.RespondWithError(w, r, http.StatusForbidden, domain.CodeForbidden, "insufficient team role")
		})
	}
}
