package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/edm"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/pkg/log"
	"github.com/pribylovaa/edm-sync/internal/pkg/redact"
	"github.com/pribylovaa/edm-sync/internal/storage"
)

// persistTimeout ограничивает запись итога неудачной попытки,
// когда исходный контекст уже отменён или истёк.
const persistTimeout = 5 * time.Second

// RefreshCredential выполняет обмен refresh-токена записи на свежую пару
// токенов через token-endpoint EDM и атомарно фиксирует итог в хранилище.
//
// Возвращает plaintext access-токен при успехе. Любой обработанный исход —
// успех или неудача — переносит next_refresh_at вперёд: успех на интервал
// планового обновления, неудача на интервал повтора с инкрементом счётчика.
// Refresh-токен в записи заменяется только если апстрим выдал новый.
func (s *Service) RefreshCredential(ctx context.Context, cred *models.Credential) (string, error) {
	const op = "service.refresher.RefreshCredential"

	if cred.Revoked {
		return "", fmt.Errorf("%s: %w", op, ErrCredentialRevoked)
	}

	now := time.Now().UTC()

	refreshToken, err := s.cipher.Decrypt(cred.EncryptedRefreshToken)
	if err != nil {
		log.From(ctx).Error("refresh_token_decrypt_failed",
			slog.String("op", op),
			slog.String("credential_id", cred.ID.String()))

		// Нечитаемая запись выводится из ближайших циклов тем же
		// переносом, что и отказ апстрима, и ждёт оператора.
		s.recordFailure(ctx, cred.ID, now)
		refreshTotal.WithLabelValues(resultCorrupted).Inc()

		return "", fmt.Errorf("%s: %w", op, ErrCorruptedCiphertext)
	}

	resp, err := s.tokens.Refresh(ctx, refreshToken)
	if err != nil {
		s.logRefreshFailure(ctx, op, cred.ID, err)
		s.recordFailure(ctx, cred.ID, now)

		return "", classifyRefreshErr(op, err)
	}

	upd := storage.RefreshSuccessUpdate{
		RefreshedAt:   now,
		NextRefreshAt: now.Add(s.cfg.Interval),
	}

	upd.EncryptedAccessToken, err = s.cipher.Encrypt(resp.AccessToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if resp.ExpiresIn > 0 {
		expiresAt := now.Add(time.Duration(resp.ExpiresIn) * time.Second)
		upd.AccessTokenExpiresAt = &expiresAt
	}

	rotated := resp.RefreshToken != ""
	if rotated {
		upd.EncryptedRefreshToken, err = s.cipher.Encrypt(resp.RefreshToken)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}

		upd.RefreshTokenHash = s.cipher.Hash(resp.RefreshToken)
	}

	if err := s.storage.ApplyRefreshSuccess(ctx, cred.ID, upd); err != nil {
		switch {
		case errors.Is(err, storage.ErrRevoked):
			return "", fmt.Errorf("%s: %w", op, ErrCredentialRevoked)
		case errors.Is(err, storage.ErrNotFound):
			return "", fmt.Errorf("%s: %w", op, ErrCredentialNotFound)
		default:
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	refreshTotal.WithLabelValues(resultSuccess).Inc()
	log.From(ctx).Info("credential_refreshed",
		slog.String("credential_id", cred.ID.String()),
		slog.Bool("rotated", rotated),
		slog.Time("next_refresh_at", upd.NextRefreshAt))

	return resp.AccessToken, nil
}

// recordFailure фиксирует неудачную попытку: инкремент счётчика и перенос
// next_refresh_at на интервал повтора. Запись выполняется на отвязанном от
// отмены контексте, чтобы таймаут апстрима не оставил запись в прошлом.
func (s *Service) recordFailure(ctx context.Context, id uuid.UUID, attemptedAt time.Time) {
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	nextRefreshAt := attemptedAt.Add(s.cfg.RetryBackoff)
	if err := s.storage.ApplyRefreshFailure(persistCtx, id, attemptedAt, nextRefreshAt); err != nil {
		log.From(ctx).Error("refresh_failure_persist_failed",
			slog.String("credential_id", id.String()),
			slog.String("err", err.Error()))
	}
}

// logRefreshFailure пишет диагностику отказа в операторские логи.
// Фрагмент тела ответа апстрима попадает только сюда и никогда —
// в текст возвращаемой ошибки.
func (s *Service) logRefreshFailure(ctx context.Context, op string, id uuid.UUID, err error) {
	var upstreamErr *edm.UpstreamError
	if errors.As(err, &upstreamErr) {
		log.From(ctx).Warn("refresh_rejected",
			slog.String("op", op),
			slog.String("credential_id", id.String()),
			slog.Int("status", upstreamErr.StatusCode),
			slog.String("body", redact.Snippet(upstreamErr.Body, 256)))

		return
	}

	log.From(ctx).Warn("refresh_failed",
		slog.String("op", op),
		slog.String("credential_id", id.String()),
		slog.String("err", err.Error()))
}

// classifyRefreshErr сводит ошибки token-клиента к сервисной таксономии.
// Сетевые сбои и таймауты неотличимы для планировщика от отказа апстрима
// и классифицируются так же.
func classifyRefreshErr(op string, err error) error {
	var upstreamErr *edm.UpstreamError

	switch {
	case errors.As(err, &upstreamErr):
		refreshTotal.WithLabelValues(resultRejected).Inc()
		return fmt.Errorf("%s: %w: status=%d", op, ErrUpstreamRejected, upstreamErr.StatusCode)
	case errors.Is(err, edm.ErrMalformedResponse):
		refreshTotal.WithLabelValues(resultMalformed).Inc()
		return fmt.Errorf("%s: %w", op, ErrUpstreamMalformed)
	default:
		refreshTotal.WithLabelValues(resultRejected).Inc()
		return fmt.Errorf("%s: %w: %v", op, ErrUpstreamRejected, err)
	}
}
