package cli

import (
	"fmt"
	"strconv"
)

// parseID разбирает числовой идентификатор из аргумента команды
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// parseAmount разбирает денежную сумму
func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	return amount, nil
}

// readRequired читает непустое значение
func (c *Cli) readRequired(prompt string) (string, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	return value, nil
}

// readFloat читает число с плавающей точкой; пустой ввод дает fallback
func (c *Cli) readFloat(prompt string, fallback float64) (float64, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return parsed, nil
}

// readInt читает целое число; пустой ввод дает fallback
func (c *Cli) readInt(prompt string, fallback int) (int, error) {
	value, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return parsed, nil
}
