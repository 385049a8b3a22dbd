// storage задаёт контракт хранилища учётных данных EDM.
//
// Реализация обязана выполнять ApplyRefreshSuccess/ApplyRefreshFailure
// атомарно (одним запросом к одной строке): по записи могут конкурировать
// sweep и обновление по требованию.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/edm-sync/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (хэш refresh-токена).
	ErrAlreadyExists = errors.New("already exists")
	// ErrRevoked — учётные данные отозваны; отзыв терминален.
	ErrRevoked = errors.New("revoked")
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

// RefreshSuccessUpdate — новое состояние учётных данных после успешного
// обновления токенов. Времена вычисляет сервисный слой.
type RefreshSuccessUpdate struct {
	// EncryptedAccessToken — свежий access-токен (шифротекст).
	EncryptedAccessToken string
	// AccessTokenExpiresAt — срок жизни access-токена; nil, если апстрим
	// не сообщил expires_in.
	AccessTokenExpiresAt *time.Time
	// EncryptedRefreshToken и RefreshTokenHash заполняются только при ротации
	// refresh-токена апстримом; пустые значения сохраняют прежние колонки.
	EncryptedRefreshToken string
	RefreshTokenHash      string
	// RefreshedAt — момент успешного обновления (last_refreshed_at).
	RefreshedAt time.Time
	// NextRefreshAt — плановое время следующего обновления.
	NextRefreshAt time.Time
}

// CredentialStorage выполняет операции над учётными данными EDM.
type CredentialStorage interface {
	// SaveCredential создаёт новую запись.
	SaveCredential(ctx context.Context, cred *models.Credential) error
	// CredentialByID находит запись по ID.
	CredentialByID(ctx context.Context, id uuid.UUID) (*models.Credential, error)
	// ActiveCredential возвращает актуальную неотозванную запись:
	// последнюю по времени обновления, при равенстве — по времени создания.
	ActiveCredential(ctx context.Context) (*models.Credential, error)
	// CredentialsForRefresh возвращает страницу неотозванных записей
	// с id > after в порядке возрастания id, не более limit штук.
	CredentialsForRefresh(ctx context.Context, after uuid.UUID, limit int) ([]models.Credential, error)
	// CredentialsDueForRefresh — то же, но только записи с next_refresh_at <= dueBefore.
	CredentialsDueForRefresh(ctx context.Context, after uuid.UUID, dueBefore time.Time, limit int) ([]models.Credential, error)
	// ApplyRefreshSuccess атомарно записывает результат успешного обновления
	// и сбрасывает счётчик неудач.
	ApplyRefreshSuccess(ctx context.Context, id uuid.UUID, upd RefreshSuccessUpdate) error
	// ApplyRefreshFailure атомарно увеличивает счётчик неудач и переносит
	// следующую попытку на nextRefreshAt.
	ApplyRefreshFailure(ctx context.Context, id uuid.UUID, attemptedAt, nextRefreshAt time.Time) error
	// RevokeCredential помечает запись отозванной, если она ещё активна.
	// Возвращает:
	//
	//	(true, nil)  — запись была активна и отозвана сейчас;
	//	(false, nil) — запись существует, но уже была отозвана;
	//	(false, ErrNotFound) — запись не найдена.
	RevokeCredential(ctx context.Context, id uuid.UUID) (bool, error)
	// ListCredentials возвращает все записи, новые первыми.
	ListCredentials(ctx context.Context) ([]models.Credential, error)
}

// Storage задаёт контракт работы с БД.
type Storage interface {
	CredentialStorage
	Close()
}
