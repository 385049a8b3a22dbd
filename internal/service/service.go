// service содержит бизнес-логику управления учётными данными EDM:
// обновление токенов через token-endpoint, выдачу действующего
// access-токена по требованию и массовые обходы записей.
//
// Основные аспекты:
//   - Экземпляр Service безопасен для конкурентного использования при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно; при этом
//     внутри одного массового обхода записи обрабатываются строго по одной.
//   - Plaintext-токены существуют только в памяти на время операции:
//     в хранилище попадают шифротексты и необратимый хэш, в логи — ничего.
//   - Access-токены не кэшируются между запросами: единственный источник
//     истины — запись в БД.
//   - Ошибки возвращаются сентинелами и далее маппятся HTTP-слоем
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/edm-sync/internal/config"
	"github.com/pribylovaa/edm-sync/internal/crypto"
	"github.com/pribylovaa/edm-sync/internal/edm"
	"github.com/pribylovaa/edm-sync/internal/storage"
)

var (
	// ErrNoCredential — в хранилище нет ни одной активной записи.
	// Транспорт: HTTP 404 (no_active_credential).
	ErrNoCredential = errors.New("no active credential")

	// ErrCredentialNotFound — запись с указанным ID отсутствует.
	// Транспорт: HTTP 404.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrCredentialExists — refresh-токен с таким хэшем уже зарегистрирован.
	// Транспорт: HTTP 409.
	ErrCredentialExists = errors.New("credential already exists")

	// ErrCredentialRevoked — запись отозвана; отзыв терминален.
	// Транспорт: HTTP 409.
	ErrCredentialRevoked = errors.New("credential revoked")

	// ErrEmptyRefreshToken — при регистрации передан пустой refresh-токен.
	// Транспорт: HTTP 400.
	ErrEmptyRefreshToken = errors.New("empty refresh token")

	// ErrCorruptedCiphertext — сохранённый шифротекст refresh-токена не
	// расшифровывается (повреждение или смена ключа). Запись требует
	// вмешательства оператора. Транспорт: HTTP 500 без деталей.
	ErrCorruptedCiphertext = errors.New("corrupted token ciphertext")

	// ErrUpstreamRejected — token-endpoint EDM отверг запрос либо недоступен
	// (включая сетевые сбои и таймауты). Попытка перенесена.
	ErrUpstreamRejected = errors.New("upstream rejected refresh")

	// ErrUpstreamMalformed — token-endpoint ответил успешным статусом,
	// но тело ответа не удалось разобрать. Попытка перенесена.
	ErrUpstreamMalformed = errors.New("upstream returned malformed response")

	// ErrAccessTokenUnavailable — действующий access-токен получить не удалось;
	// вызывающая операция должна сообщить о недоступности интеграции.
	// Транспорт: HTTP 503 (upstream_unavailable).
	ErrAccessTokenUnavailable = errors.New("access token unavailable")
)

// TokenClient — контракт клиента token-endpoint'а EDM.
// Реализуется *edm.Client.
type TokenClient interface {
	Refresh(ctx context.Context, refreshToken string) (*edm.TokenResponse, error)
}

// Service описывает бизнес-логику управления учётными данными.
type Service struct {
	storage storage.Storage
	tokens  TokenClient
	cipher  *crypto.Cipher
	cfg     config.RefreshConfig
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, tokens TokenClient, cipher *crypto.Cipher, cfg config.RefreshConfig) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		cipher:  cipher,
		cfg:     cfg,
	}
}

// Проверка на соответствие контракту TokenClient.
var _ TokenClient = (*edm.Client)(nil)
