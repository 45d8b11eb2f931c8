package api

// Роли пользователей POS. Сравнение ролей строгое, без иерархии:
// admin не является cashier и наоборот.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User представляет учетную запись, возвращаемую сервером при логине
type User struct {
	ID       int64  `json:"id"`       // идентификатор пользователя
	Username string `json:"username"` // username
	Role     string `json:"role"`     // "admin" или "cashier"
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ на успешный логин
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`  // короткоживущий access token
	RefreshToken string `json:"refreshToken"` // долгоживущий refresh token
	User         User   `json:"user"`         // учетная запись
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse представляет ответ с новым access token.
// Refresh token при этом не меняется.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// LogoutRequest представляет запрос на выход (инвалидация refresh token)
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse представляет ответ сервера с ошибкой
type ErrorResponse struct {
	Message string `json:"message,omitempty"` // сообщение об ошибке
	Error   string `json:"error,omitempty"`   // краткое описание
}
