package domain

// AuthMethod способ, которым вызывающий был аутентифицирован
type AuthMethod string

// Поддерживаемые способы аутентификации
const (
	AuthMethodAPIKey      AuthMethod = "api_key"
	AuthMethodAccessToken AuthMethod = "access_token"
)

// Caller представляет аутентифицированного вызывающего
type Caller struct {
	UserID int
	Method AuthMethod
}
