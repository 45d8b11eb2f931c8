package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал кассира: вывод, ввод и скрытый ввод пароля.
// В тестах подменяется моком.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	// Confirm запрашивает подтверждение y/n; пустой ввод означает отказ
	Confirm(prompt string) (bool, error)
}
