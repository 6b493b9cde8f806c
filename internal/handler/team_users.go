package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/aidar/team-users-service/internal/domain"
)

// TeamUsersLister - сервис, которым пользуется TeamUsersHandler
type TeamUsersLister interface {
	GetUsers(ctx context.Context, teamID int, emails []string, filters *domain.AttributeFilters, page domain.Pagination) ([]*domain.User, error)
}

// TeamUsersHandler обрабатывает эндпоинты пользователей команды
type TeamUsersHandler struct {
	teamUsersService TeamUsersLister
	log              *zap.Logger
}

// NewTeamUsersHandler создает новый TeamUsersHandler
func NewTeamUsersHandler(teamUsersService TeamUsersLister, log *zap.Logger) *TeamUsersHandler {
	return &TeamUsersHandler{
		teamUsersService: teamUsersService,
		log:              log,
	}
}

// GetTeamUsersInput представляет параметры запроса списка пользователей команды
type GetTeamUsersInput struct {
	Emails                 []string `query:"emails" validate:"omitempty,dive,email"`
	AssignedOptionIDs      []string `query:"assignedOptionIds" validate:"omitempty,dive,required"`
	AttributeQueryOperator string   `query:"attributeQueryOperator" validate:"omitempty,oneof=AND OR NONE"`
	Skip                   int      `query:"skip" validate:"gte=0"`
	Take                   int      `query:"take" validate:"gte=1"`
}

// GetTeamUsersResponse представляет ответ со списком пользователей команды
type GetTeamUsersResponse struct {
	Status string           `json:"status"`
	Data   []TeamUserOutput `json:"data"`
}

// parseGetTeamUsersInput читает и валидирует query параметры
func parseGetTeamUsersInput(r *http.Request) (GetTeamUsersInput, []ValidationError) {
	var details []ValidationError

	skip, verr := queryInt(r, "skip", domain.DefaultSkip)
	if verr != nil {
		details = append(details, *verr)
	}
	take, verr := queryInt(r, "take", domain.DefaultTake)
	if verr != nil {
		details = append(details, *verr)
	}

	input := GetTeamUsersInput{
		Emails:                 queryList(r, "emails"),
		AssignedOptionIDs:      queryList(r, "assignedOptionIds"),
		AttributeQueryOperator: r.URL.Query().Get("attributeQueryOperator"),
		Skip:                   skip,
		Take:                   take,
	}
	if len(details) > 0 {
		return input, details
	}

	return input, ValidateRequest(input)
}

// GetTeamUsers обрабатывает GET /v2/teams/{teamId}/users
func (h *TeamUsersHandler) GetTeamUsers(w http.ResponseWriter, r *http.Request) {
	teamID, verr := ParseTeamID(r)
	if verr != nil {
		RespondWithValidationError(w, r, []ValidationError{*verr})
		return
	}

	input, details := parseGetTeamUsersInput(r)
	if len(details) > 0 {
		RespondWithValidationError(w, r, details)
		return
	}

	users, err := h.teamUsersService.GetUsers(r.Context(), teamID, input.Emails,
		&domain.AttributeFilters{
			AssignedOptionIDs: input.AssignedOptionIDs,
			Operator:          domain.AttributeQueryOperator(input.AttributeQueryOperator),
		},
		domain.Pagination{Skip: input.Skip, Take: input.Take},
	)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, GetTeamUsersResponse{
		Status: StatusSuccess,
		Data:   NewTeamUserOutputs(users),
	})
}
