// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Источник истинности по маппингу: комментарии к сентинелам internal/service.
// Токены, шифротексты и тела ответов апстрима в ответ не попадают никогда.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/edm-sync/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// Транспортные сентинелы для ошибок, возникающих до сервисного слоя.
var (
	// ErrInvalidArgument — битый JSON, неизвестные поля, некорректный UUID.
	ErrInvalidArgument = stderrors.New("invalid argument")

	// ErrUnauthenticated — отсутствующий или неверный операторский ключ.
	ErrUnauthenticated = stderrors.New("unauthenticated")
)

// APIError — единый формат ошибки для вызывающей стороны.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - известный сентинел - маппинг из baseFromService;
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	httpStatus, code, msg := baseFromService(err)
	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromService — маппинг сентинелов в HTTP-статус/код/сообщение.
//
// Порядок проверок существенен: цепочка ошибки провайдера содержит и
// причину, и ErrAccessTokenUnavailable, а нечитаемый шифротекст должен
// быть виден оператору как отдельный код, а не как недоступность апстрима.
func baseFromService(err error) (int, string, string) {
	switch {
	case stderrors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrEmptyRefreshToken):
		return http.StatusBadRequest, "invalid_argument", "refresh token must not be empty"
	case stderrors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, service.ErrNoCredential):
		return http.StatusNotFound, "no_active_credential", "no active credential"
	case stderrors.Is(err, service.ErrCredentialNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrCredentialExists):
		return http.StatusConflict, "already_exists", "already exists"
	case stderrors.Is(err, service.ErrCredentialRevoked):
		return http.StatusConflict, "credential_revoked", "credential revoked"
	case stderrors.Is(err, service.ErrCorruptedCiphertext):
		return http.StatusInternalServerError, "credential_corrupted", "credential corrupted"
	case stderrors.Is(err, service.ErrAccessTokenUnavailable):
		return http.StatusServiceUnavailable, "upstream_unavailable", "upstream unavailable"
	case stderrors.Is(err, service.ErrUpstreamRejected):
		return http.StatusBadGateway, "upstream_rejected", "upstream rejected"
	case stderrors.Is(err, service.ErrUpstreamMalformed):
		return http.StatusBadGateway, "upstream_malformed", "upstream malformed"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
