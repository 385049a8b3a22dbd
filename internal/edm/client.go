// edm содержит HTTP-клиент token-endpoint'а EDM: обмен refresh-токена
// на свежую пару токенов (OAuth2 grant_type=refresh_token).
//
// Клиент не хранит состояние между вызовами и безопасен для конкурентного
// использования. HTTP-клиент настраивается извне (таймауты, прокси и т.д.);
// каждый запрос дополнительно ограничен дедлайном переданного контекста.
package edm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/edm-sync/internal/pkg/redact"
)

// ErrMalformedResponse — апстрим ответил успешным статусом, но тело
// не декодируется или в нём нет access_token.
var ErrMalformedResponse = errors.New("malformed token response")

// UpstreamError — token-endpoint отверг запрос (не-2xx статус).
// Body сохраняется для диагностики оператором: эхо секретов запроса
// из него вычищено, а в текст ошибки тело не попадает, чтобы не
// утекать в ответы клиентам.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream rejected: status=%d", e.StatusCode)
}

// TokenResponse — разобранный ответ token-endpoint'а.
type TokenResponse struct {
	AccessToken string
	// RefreshToken пуст, если апстрим не ротировал refresh-токен.
	RefreshToken string
	TokenType    string
	Scope        string
	// ExpiresIn — срок жизни access-токена в секундах; 0, если не сообщён.
	ExpiresIn int64
}

// Client выполняет запросы к token-endpoint'у EDM.
type Client struct {
	client       *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
}

// New создаёт клиент token-endpoint'а.
func New(client *http.Client, tokenURL, clientID, clientSecret string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		client:       client,
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Refresh обменивает refresh-токен на свежий access-токен.
//
// Ошибки:
//   - *UpstreamError — апстрим ответил не-2xx статусом (включая invalid_grant);
//   - ErrMalformedResponse — успешный статус с нечитаемым телом;
//   - прочие — сетевые/транспортные сбои (в т.ч. истечение дедлайна).
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	const op = "edm.client.Refresh"

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: %w", op, &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       scrubSecrets(string(body), refreshToken, c.clientSecret),
		})
	}

	var raw struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		Scope        string `json:"scope"`
		ExpiresIn    any    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedResponse)
	}

	if raw.AccessToken == "" {
		return nil, fmt.Errorf("%s: %w: no access_token", op, ErrMalformedResponse)
	}

	return &TokenResponse{
		AccessToken:  raw.AccessToken,
		RefreshToken: raw.RefreshToken,
		TokenType:    raw.TokenType,
		Scope:        raw.Scope,
		ExpiresIn:    expiresIn(raw.ExpiresIn),
	}, nil
}

// scrubSecrets вычищает из тела ошибки эхо секретов запроса:
// часть провайдеров дословно возвращает параметры формы в описании ошибки.
func scrubSecrets(body, refreshToken, clientSecret string) string {
	if refreshToken != "" {
		body = strings.ReplaceAll(body, refreshToken, redact.Token())
	}

	if clientSecret != "" {
		body = strings.ReplaceAll(body, clientSecret, redact.Secret())
	}

	return body
}

// expiresIn терпимо разбирает expires_in: провайдеры присылают
// и число, и строку с числом.
func expiresIn(v any) int64 {
	switch val := v.(type) {
	case float64:
		return int64(val)
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
