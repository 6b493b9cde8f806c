package domain

import "errors"

// Доменные ошибки сервиса
var (
	// ErrUserNotFound возвращается когда пользователь не найден в команде
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrMembershipNotFound возвращается когда у пользователя нет членства в команде
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidAPIKey возвращается когда API ключ не найден или истек
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrForbidden возвращается когда у вызывающего нет нужной роли в команде
	ErrForbidden = errors.New("forbidden")

	// ErrUsersNotInTeam возвращается когда ни один из переданных id не состоит в команде
	ErrUsersNotInTeam = errors.New("provided user ids do not belong to the team")

	// ErrInvalidAttributeOperator возвращается для неизвестного оператора фильтра атрибутов
	ErrInvalidAttributeOperator = errors.New("invalid attribute query operator")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeBadRequest   ErrorCode = "BAD_REQUEST"    // Невалидные параметры запроса
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"   // Нет или невалидные учетные данные
	CodeForbidden    ErrorCode = "FORBIDDEN"      // Недостаточно прав
	CodeNotFound     ErrorCode = "NOT_FOUND"      // Ресурс не найден
	CodeInternal     ErrorCode = "INTERNAL_ERROR" // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidAttributeOperator):
		return CodeBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrInvalidAPIKey):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrUsersNotInTeam), errors.Is(err, ErrMembershipNotFound):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrTeamNotFound):
		return CodeNotFound
	default:
		return CodeInternal
	}
}
