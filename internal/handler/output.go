package handler

import (
	"time"

	"github.com/aidar/team-users-service/internal/domain"
)

// TeamProfileOutput - членство пользователя в запрошенной команде
type TeamProfileOutput struct {
	ID       int    `json:"id"`
	TeamID   int    `json:"teamId"`
	UserID   int    `json:"userId"`
	Role     string `json:"role"`
	Accepted bool   `json:"accepted"`
}

// TeamUserOutput - публичное представление пользователя команды.
// Сюда попадают только перечисленные поля; хеш пароля и прочие внутренние поля не отдаются.
type TeamUserOutput struct {
	ID                  int            `json:"id"`
	Username            *string        `json:"username"`
	Name                *string        `json:"name"`
	Email               string         `json:"email"`
	EmailVerified       *time.Time     `json:"emailVerified"`
	Bio                 *string        `json:"bio"`
	AvatarURL           *string        `json:"avatarUrl"`
	TimeZone            string         `json:"timeZone"`
	WeekStart           string         `json:"weekStart"`
	AppTheme            *string        `json:"appTheme"`
	Theme               *string        `json:"theme"`
	DefaultScheduleID   *int           `json:"defaultScheduleId"`
	Locale              *string        `json:"locale"`
	TimeFormat          *int           `json:"timeFormat"`
	HideBranding        bool           `json:"hideBranding"`
	BrandColor          *string        `json:"brandColor"`
	DarkBrandColor      *string        `json:"darkBrandColor"`
	AllowDynamicBooking *bool          `json:"allowDynamicBooking"`
	CreatedDate         time.Time      `json:"createdDate"`
	Verified            *bool          `json:"verified"`
	InvitedTo           *int           `json:"invitedTo"`
	Metadata            map[string]any `json:"metadata"`

	// Profile - TeamProfileOutput или пустой объект, если членство не найдено
	Profile any `json:"profile"`
}

// NewTeamUserOutput проецирует пользователя в публичное представление
func NewTeamUserOutput(u *domain.User) TeamUserOutput {
	out := TeamUserOutput{
		ID:                  u.ID,
		Username:            u.Username,
		Name:                u.Name,
		Email:               u.Email,
		EmailVerified:       u.EmailVerified,
		Bio:                 u.Bio,
		AvatarURL:           u.AvatarURL,
		TimeZone:            u.TimeZone,
		WeekStart:           u.WeekStart,
		AppTheme:            u.AppTheme,
		Theme:               u.Theme,
		DefaultScheduleID:   u.DefaultScheduleID,
		Locale:              u.Locale,
		TimeFormat:          u.TimeFormat,
		HideBranding:        u.HideBranding,
		BrandColor:          u.BrandColor,
		DarkBrandColor:      u.DarkBrandColor,
		AllowDynamicBooking: u.AllowDynamicBooking,
		CreatedDate:         u.CreatedDate,
		Verified:            u.Verified,
		InvitedTo:           u.InvitedTo,
		Metadata:            u.Metadata,
		Profile:             struct{}{},
	}

	if m, ok := u.TeamMembership(); ok {
		out.Profile = TeamProfileOutput{
			ID:       m.ID,
			TeamID:   m.TeamID,
			UserID:   m.UserID,
			Role:     string(m.Role),
			Accepted: m.Accepted,
		}
	}

	return out
}

// NewTeamUserOutputs проецирует список пользователей; nil превращается в пустой список
func NewTeamUserOutputs(users []*domain.User) []TeamUserOutput {
	out := make([]TeamUserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, NewTeamUserOutput(u))
	}
	return out
}
