package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/storage"
)

// credentialColumns — единый список колонок для SELECT-запросов.
const credentialColumns = `
        id, encrypted_access_token, access_token_expires_at,
        encrypted_refresh_token, refresh_token_hash,
        last_refreshed_at, next_refresh_at, refresh_failure_count,
        revoked, created_at, updated_at
`

// scanCredential читает строку результата в модель.
// Подходит и для pgx.Row, и для pgx.Rows.
func scanCredential(row interface{ Scan(dest ...any) error }) (*models.Credential, error) {
	var cred models.Credential
	err := row.Scan(
		&cred.ID,
		&cred.EncryptedAccessToken,
		&cred.AccessTokenExpiresAt,
		&cred.EncryptedRefreshToken,
		&cred.RefreshTokenHash,
		&cred.LastRefreshedAt,
		&cred.NextRefreshAt,
		&cred.RefreshFailureCount,
		&cred.Revoked,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// SaveCredential сохраняет новую запись учётных данных.
func (s *Storage) SaveCredential(ctx context.Context, cred *models.Credential) error {
	const op = "storage.postgres.SaveCredential"

	query := `
        INSERT INTO edm_credentials(
            id, encrypted_access_token, access_token_expires_at,
            encrypted_refresh_token, refresh_token_hash,
            last_refreshed_at, next_refresh_at, refresh_failure_count,
            revoked, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := s.db.Exec(ctx, query,
		cred.ID,
		cred.EncryptedAccessToken,
		cred.AccessTokenExpiresAt,
		cred.EncryptedRefreshToken,
		cred.RefreshTokenHash,
		cred.LastRefreshedAt,
		cred.NextRefreshAt,
		cred.RefreshFailureCount,
		cred.Revoked,
		cred.CreatedAt,
		cred.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CredentialByID находит запись по ID.
func (s *Storage) CredentialByID(ctx context.Context, id uuid.UUID) (*models.Credential, error) {
	const op = "storage.postgres.CredentialByID"

	query := `
        SELECT ` + credentialColumns + `
        FROM edm_credentials
        WHERE id = $1
    `

	cred, err := scanCredential(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cred, nil
}

// ActiveCredential возвращает актуальную неотозванную запись: последнюю
// по времени успешного обновления, при отсутствии таковых — последнюю созданную.
func (s *Storage) ActiveCredential(ctx context.Context) (*models.Credential, error) {
	const op = "storage.postgres.ActiveCredential"

	query := `
        SELECT ` + credentialColumns + `
        FROM edm_credentials
        WHERE revoked = FALSE
        ORDER BY last_refreshed_at DESC NULLS LAST, created_at DESC
        LIMIT 1
    `

	cred, err := scanCredential(s.db.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cred, nil
}

// CredentialsForRefresh возвращает страницу неотозванных записей с id > after
// в порядке возрастания id. Keyset-пагинация: обработанные записи не
// возвращаются повторно независимо от изменений next_refresh_at.
func (s *Storage) CredentialsForRefresh(ctx context.Context, after uuid.UUID, limit int) ([]models.Credential, error) {
	const op = "storage.postgres.CredentialsForRefresh"

	query := `
        SELECT ` + credentialColumns + `
        FROM edm_credentials
        WHERE revoked = FALSE AND id > $1
        ORDER BY id
        LIMIT $2
    `

	rows, err := s.db.Query(ctx, query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	creds, err := collectCredentials(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}

// CredentialsDueForRefresh возвращает страницу неотозванных записей,
// у которых наступил срок обновления (next_refresh_at <= dueBefore).
func (s *Storage) CredentialsDueForRefresh(ctx context.Context, after uuid.UUID, dueBefore time.Time, limit int) ([]models.Credential, error) {
	const op = "storage.postgres.CredentialsDueForRefresh"

	query := `
        SELECT ` + credentialColumns + `
        FROM edm_credentials
        WHERE revoked = FALSE AND id > $1 AND next_refresh_at <= $2
        ORDER BY id
        LIMIT $3
    `

	rows, err := s.db.Query(ctx, query, after, dueBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	creds, err := collectCredentials(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}

func collectCredentials(rows pgx.Rows) ([]models.Credential, error) {
	var creds []models.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}

		creds = append(creds, *cred)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return creds, nil
}

// ApplyRefreshSuccess атомарно записывает результат успешного обновления.
// Колонки refresh-токена затрагиваются только при ротации: пустые значения
// в upd оставляют прежний шифротекст и хэш.
func (s *Storage) ApplyRefreshSuccess(ctx context.Context, id uuid.UUID, upd storage.RefreshSuccessUpdate) error {
	const op = "storage.postgres.ApplyRefreshSuccess"

	query := `
        UPDATE edm_credentials
        SET encrypted_access_token = $2,
            access_token_expires_at = $3,
            encrypted_refresh_token = COALESCE(NULLIF($4::text, ''), encrypted_refresh_token),
            refresh_token_hash = COALESCE(NULLIF($5::text, ''), refresh_token_hash),
            last_refreshed_at = $6,
            next_refresh_at = $7,
            refresh_failure_count = 0,
            updated_at = $6
        WHERE id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query,
		id,
		upd.EncryptedAccessToken,
		upd.AccessTokenExpiresAt,
		upd.EncryptedRefreshToken,
		upd.RefreshTokenHash,
		upd.RefreshedAt,
		upd.NextRefreshAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, s.classifyMissing(ctx, id))
	}

	return nil
}

// ApplyRefreshFailure атомарно фиксирует неудачную попытку обновления:
// инкремент счётчика выполняется в самом запросе, next_refresh_at
// переносится вперёд.
func (s *Storage) ApplyRefreshFailure(ctx context.Context, id uuid.UUID, attemptedAt, nextRefreshAt time.Time) error {
	const op = "storage.postgres.ApplyRefreshFailure"

	query := `
        UPDATE edm_credentials
        SET refresh_failure_count = refresh_failure_count + 1,
            next_refresh_at = $3,
            updated_at = $2
        WHERE id = $1 AND revoked = FALSE
    `

	cmdTag, err := s.db.Exec(ctx, query, id, attemptedAt, nextRefreshAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, s.classifyMissing(ctx, id))
	}

	return nil
}

// RevokeCredential помечает запись отозванной, если она ещё активна.
// Возвращает:
//
//	(true, nil)  — запись была активна и отозвана сейчас;
//	(false, nil) — запись существует, но уже была отозвана;
//	(false, ErrNotFound) — запись не найдена.
func (s *Storage) RevokeCredential(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "storage.postgres.RevokeCredential"

	const upd = `
		UPDATE edm_credentials
		SET revoked = TRUE, updated_at = NOW()
		WHERE id = $1 AND revoked = FALSE
		RETURNING id
	`

	var revokedID uuid.UUID
	err := s.db.QueryRow(ctx, upd, id).Scan(&revokedID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	const sel = `
		SELECT revoked
		FROM edm_credentials
		WHERE id = $1
	`

	var revoked bool
	err = s.db.QueryRow(ctx, sel, id).Scan(&revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	return false, nil
}

// ListCredentials возвращает все записи, новые первыми.
func (s *Storage) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	const op = "storage.postgres.ListCredentials"

	query := `
        SELECT ` + credentialColumns + `
        FROM edm_credentials
        ORDER BY created_at DESC, id DESC
    `

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	creds, err := collectCredentials(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return creds, nil
}

// classifyMissing различает причину, по которой UPDATE активной записи
// не затронул строк: запись отозвана или отсутствует.
func (s *Storage) classifyMissing(ctx context.Context, id uuid.UUID) error {
	const sel = `
		SELECT revoked
		FROM edm_credentials
		WHERE id = $1
	`

	var revoked bool
	if err := s.db.QueryRow(ctx, sel, id).Scan(&revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.ErrNotFound
		}

		return err
	}

	if revoked {
		return storage.ErrRevoked
	}

	return storage.ErrNotFound
}
