package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dukahq/dukapos/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с backend API.
// Он не знает ничего о сессии: токены ему передают сверху.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Response представляет сырой ответ backend API.
// Клиент пайплайна сам решает, как декодировать тело.
type Response struct {
	Body       []byte
	StatusCode int
}

// OK reports whether the status code is in the 2xx range
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into result
func (r *Response) Decode(result any) error {
	if err := json.Unmarshal(r.Body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ErrorMessage извлекает текст ошибки из тела ответа,
// если оно является JSON с полем message
func (r *Response) ErrorMessage() string {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	return errResp.Error
}

// Login выполняет аутентификацию пользователя по паре логин/пароль
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, "/auth/login", body, nil)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	if !resp.OK() {
		// Сервер отверг учетные данные; текст ошибки может отсутствовать
		return nil, &AuthenticationError{Message: resp.ErrorMessage()}
	}

	var tokens api.TokenResponse
	if err := resp.Decode(&tokens); err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}

	return &tokens, nil
}

// Refresh обменивает refresh token на новый access token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	body, err := json.Marshal(api.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	resp, err := c.Do(ctx, http.MethodPost, "/auth/refresh", body, nil)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}

	if !resp.OK() {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorMessage()}
	}

	var refreshed api.RefreshResponse
	if err := resp.Decode(&refreshed); err != nil {
		return nil, fmt.Errorf("refresh response: %w", err)
	}

	return &refreshed, nil
}

// Logout уведомляет сервер об инвалидации refresh token.
// Ответ сервера игнорируется, важен только факт доставки.
func (c *Client) Logout(ctx context.Context, accessToken, refreshToken string) error {
	body, err := json.Marshal(api.LogoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal logout request: %w", err)
	}

	headers := map[string]string{}
	if accessToken != "" {
		headers["Authorization"] = "Bearer " + accessToken
	}

	resp, err := c.Do(ctx, http.MethodPost, "/auth/logout", body, headers)
	if err != nil {
		return &APIError{Message: err.Error()}
	}

	if !resp.OK() {
		return &APIError{StatusCode: resp.StatusCode, Message: resp.ErrorMessage()}
	}

	return nil
}

// Do выполняет один HTTP запрос к endpoint без какой-либо обработки 401.
// Заголовки применяются поверх Content-Type: application/json.
func (c *Client) Do(
	ctx context.Context,
	method, endpoint string,
	body []byte,
	headers map[string]string,
) (*Response, error) {
	url := c.baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
