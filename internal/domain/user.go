package domain

import "time"

// User представляет пользователя платформы вместе с членствами в командах.
// PasswordHash и Locked - внутренние поля, наружу они не отдаются.
type User struct {
	ID                  int
	Username            *string
	Name                *string
	Email               string
	EmailVerified       *time.Time
	Bio                 *string
	AvatarURL           *string
	TimeZone            string
	WeekStart           string
	AppTheme            *string
	Theme               *string
	DefaultScheduleID   *int
	Locale              *string
	TimeFormat          *int
	HideBranding        bool
	BrandColor          *string
	DarkBrandColor      *string
	AllowDynamicBooking *bool
	CreatedDate         time.Time
	Verified            *bool
	InvitedTo           *int
	Metadata            map[string]any
	PasswordHash        *string
	Locked              bool

	// Memberships содержит только членства, подходящие под запрос
	// (для листинга команды - ровно одно принятое членство в этой команде)
	Memberships []Membership
}

// TeamMembership возвращает первое членство пользователя, если оно есть
func (u *User) TeamMembership() (Membership, bool) {
	if len(u.Memberships) == 0 {
		return Membership{}, false
	}
	return u.Memberships[0], true
}
