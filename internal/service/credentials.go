package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/pkg/log"
	"github.com/pribylovaa/edm-sync/internal/storage"
)

// CreateCredential регистрирует учётные данные интеграции по выданному
// вручную refresh-токену. Токен немедленно шифруется; plaintext за пределы
// вызова не выходит. Первая попытка обновления назначается на текущий
// момент, чтобы ближайший обход сразу проверил токен в деле.
func (s *Service) CreateCredential(ctx context.Context, refreshToken string) (*models.Credential, error) {
	const op = "service.credentials.CreateCredential"

	if strings.TrimSpace(refreshToken) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyRefreshToken)
	}

	encrypted, err := s.cipher.Encrypt(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	cred := &models.Credential{
		ID:                    uuid.New(),
		EncryptedRefreshToken: encrypted,
		RefreshTokenHash:      s.cipher.Hash(refreshToken),
		NextRefreshAt:         now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrCredentialExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("credential_created",
		slog.String("credential_id", cred.ID.String()))

	return cred, nil
}

// RevokeCredential отзывает запись. Отзыв терминален: запись выпадает из
// выборок обхода и больше не участвует в выдаче токенов. Повторный отзыв
// возвращает ErrCredentialRevoked.
func (s *Service) RevokeCredential(ctx context.Context, id uuid.UUID) error {
	const op = "service.credentials.RevokeCredential"

	revoked, err := s.storage.RevokeCredential(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrCredentialNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if !revoked {
		return fmt.Errorf("%s: %w", op, ErrCredentialRevoked)
	}

	log.From(ctx).Info("credential_revoked",
		slog.String("credential_id", id.String()))

	return nil
}

// CredentialByID возвращает запись по идентификатору.
func (s *Service) CredentialByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	const op = "service.credentials.CredentialByID"

	cred, err := s.storage.CredentialByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCredentialNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cred, nil
}

// ListCredentials возвращает все записи, включая отозванные,
// от новых к старым.
func (s *Service) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	const op = "service.credentials.ListCredentials"

	creds, err := s.storage.ListCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}
