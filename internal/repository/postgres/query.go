package postgres

import (
	"fmt"
	"strings"

	"github.com/aidar/team-users-service/internal/domain"
)

// userColumns - колонки пользователя и его членства в порядке scanTeamUser
const userColumns = `
	u.id, u.username, u.name, u.email, u.email_verified, u.bio, u.avatar_url,
	u.time_zone, u.week_start, u.app_theme, u.theme, u.default_schedule_id,
	u.locale, u.time_format, u.hide_branding, u.brand_color, u.dark_brand_color,
	u.allow_dynamic_booking, u.created_date, u.verified, u.invited_to, u.metadata,
	u.password_hash, u.locked,
	m.id, m.team_id, m.user_id, m.role, m.accepted, m.disable_impersonation`

// memberQuery собирает запрос по пользователям команды: users JOIN memberships
// с условиями в WHERE и позиционными параметрами $n
type memberQuery struct {
	conditions []string
	args       []any
	limit      *int
	offset     int
}

// newMemberQuery создает запрос, ограниченный принятыми членствами в команде
func newMemberQuery(teamID int) *memberQuery {
	q := &memberQuery{}
	q.where("m.team_id = %s", teamID)
	q.conditions = append(q.conditions, "m.accepted = TRUE")
	return q
}

// arg добавляет параметр и возвращает его плейсхолдер
func (q *memberQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// where добавляет условие; %s в format заменяется на плейсхолдер значения
func (q *memberQuery) where(format string, v any) {
	q.conditions = append(q.conditions, fmt.Sprintf(format, q.arg(v)))
}

// withEmails ограничивает выборку списком email, пустой список не ограничивает
func (q *memberQuery) withEmails(emails []string) *memberQuery {
	if len(emails) > 0 {
		q.where("u.email = ANY(%s)", emails)
	}
	return q
}

// withUserIDs ограничивает выборку списком id пользователей
func (q *memberQuery) withUserIDs(userIDs []int) *memberQuery {
	q.where("m.user_id = ANY(%s)", userIDs)
	return q
}

// withAttributeFilters добавляет предикат по назначенным опциям атрибутов
func (q *memberQuery) withAttributeFilters(filters domain.AttributeFilters) (*memberQuery, error) {
	const assigned = "SELECT 1 FROM attribute_to_user a WHERE a.member_id = m.id AND a.attribute_option_id"

	switch filters.Operator {
	case domain.AttributeOperatorAnd:
		// Каждая опция должна быть назначена: по одному EXISTS на опцию
		for _, optionID := range filters.AssignedOptionIDs {
			q.where("EXISTS ("+assigned+" = %s)", optionID)
		}
	case domain.AttributeOperatorOr:
		q.where("EXISTS ("+assigned+" = ANY(%s))", filters.AssignedOptionIDs)
	case domain.AttributeOperatorNone:
		q.where("NOT EXISTS ("+assigned+" = ANY(%s))", filters.AssignedOptionIDs)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAttributeOperator, filters.Operator)
	}
	return q, nil
}

// page задает смещение и лимит
func (q *memberQuery) page(skip, take int) *memberQuery {
	q.offset = skip
	q.limit = &take
	return q
}

// build возвращает SQL и параметры; сортировка по id пользователя стабильна для пагинации
func (q *memberQuery) build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(userColumns)
	sb.WriteString("\nFROM users u\nJOIN memberships m ON m.user_id = u.id\nWHERE ")
	sb.WriteString(strings.Join(q.conditions, "\n  AND "))
	sb.WriteString("\nORDER BY u.id")

	args := append([]any(nil), q.args...)
	if q.offset > 0 {
		args = append(args, q.offset)
		fmt.Fprintf(&sb, "\nOFFSET $%d", len(args))
	}
	if q.limit != nil {
		args = append(args, *q.limit)
		fmt.Fprintf(&sb, "\nLIMIT $%d", len(args))
	}

	return sb.String(), args
}
