package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/pkg/log"
	"github.com/pribylovaa/edm-sync/internal/storage"
)

// expirySafetyMargin — фиксированный запас до истечения access-токена.
// Токен считается пригодным, только если переживёт ещё столько времени:
// это исключает выдачу токена, который истечёт в полёте запроса.
const expirySafetyMargin = 60 * time.Second

// ValidAccessToken возвращает действующий access-токен записи.
//
// Быстрый путь: если сохранённый токен пригоден с учётом запаса
// expirySafetyMargin, он расшифровывается и возвращается без обращения
// к апстриму и без единой записи в хранилище. Иначе выполняется
// RefreshCredential; его неудача сворачивается в ErrAccessTokenUnavailable
// с сохранением причины в цепочке ошибки.
func (s *Service) ValidAccessToken(ctx context.Context, cred *models.Credential) (string, error) {
	const op = "service.provider.ValidAccessToken"

	if cred.Revoked {
		return "", fmt.Errorf("%s: %w", op, ErrCredentialRevoked)
	}

	if cred.HasValidAccessToken(time.Now().UTC(), expirySafetyMargin) {
		token, err := s.cipher.Decrypt(cred.EncryptedAccessToken)
		if err == nil {
			return token, nil
		}

		// Нечитаемый access-токен не фатален: refresh выдаст свежий.
		log.From(ctx).Warn("access_token_decrypt_failed",
			slog.String("op", op),
			slog.String("credential_id", cred.ID.String()))
	}

	token, err := s.RefreshCredential(ctx, cred)
	if err != nil {
		if errors.Is(err, ErrCredentialRevoked) {
			return "", fmt.Errorf("%s: %w", op, ErrCredentialRevoked)
		}

		return "", fmt.Errorf("%s: %w: %w", op, ErrAccessTokenUnavailable, err)
	}

	return token, nil
}

// ActiveAccessToken находит актуальную запись учётных данных и возвращает
// её действующий access-токен вместе с самой записью (состояние на момент
// выборки). Используется вызовами синхронизации, которым нужен токен
// «здесь и сейчас».
func (s *Service) ActiveAccessToken(ctx context.Context) (string, *models.Credential, error) {
	const op = "service.provider.ActiveAccessToken"

	cred, err := s.storage.ActiveCredential(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrNoCredential)
		}

		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.ValidAccessToken(ctx, cred)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	return token, cred, nil
}
