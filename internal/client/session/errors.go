package session

import "errors"

// ErrSessionExpired означает, что ранее действительную сессию не удалось
// продлить: backend вернул 401, а попытка обновления access token
// провалилась. Локальная сессия к этому моменту уже очищена, вызывающий
// код должен отправить пользователя на логин.
var ErrSessionExpired = errors.New("session expired")
