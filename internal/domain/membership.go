package domain

// MembershipRole представляет роль пользователя в команде
type MembershipRole string

// Возможные роли участника команды
const (
	RoleMember MembershipRole = "MEMBER"
	RoleAdmin  MembershipRole = "ADMIN"
	RoleOwner  MembershipRole = "OWNER"
)

// rank задает порядок ролей: OWNER > ADMIN > MEMBER
func (r MembershipRole) rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// Membership связывает пользователя с командой
type Membership struct {
	ID                   int
	TeamID               int
	UserID               int
	Role                 MembershipRole
	Accepted             bool
	DisableImpersonation bool
}

// TeamRole описывает минимальную возможность, которую требует эндпоинт
type TeamRole string

// Требуемые уровни доступа к команде
const (
	TeamRoleMember TeamRole = "TEAM_MEMBER"
	TeamRoleAdmin  TeamRole = "TEAM_ADMIN"
	TeamRoleOwner  TeamRole = "TEAM_OWNER"
)

func (r TeamRole) minimum() MembershipRole {
	switch r {
	case TeamRoleOwner:
		return RoleOwner
	case TeamRoleAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// Satisfies проверяет, дает ли членство требуемый уровень доступа.
// Непринятое приглашение не дает никаких прав.
func (m *Membership) Satisfies(required TeamRole) bool {
	if m == nil || !m.Accepted {
		return false
	}
	return m.Role.rank() >= required.minimum().rank()
}

// IsOrgAdmin возвращает true для принятого ADMIN или OWNER
func (m *Membership) IsOrgAdmin() bool {
	return m.Satisfies(TeamRoleAdmin)
}
