package models

import (
	"time"

	"github.com/google/uuid"
)

// Credential - учётные данные интеграции с EDM.
//
// Токены хранятся только в зашифрованном виде (AES-GCM), refresh-токен
// дополнительно дублируется необратимым хэшем для аудита и поиска.
// Поля-указатели означают "значение неизвестно": access-токен ещё не получен,
// срок его жизни не сообщён апстримом, обновлений ещё не было.
type Credential struct {
	ID                    uuid.UUID
	EncryptedAccessToken  string
	AccessTokenExpiresAt  *time.Time
	EncryptedRefreshToken string
	RefreshTokenHash      string
	LastRefreshedAt       *time.Time
	NextRefreshAt         time.Time
	RefreshFailureCount   int
	Revoked               bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// HasValidAccessToken сообщает, можно ли использовать сохранённый access-токен
// без обращения к апстриму: токен есть, срок известен и не истекает в пределах margin.
func (c *Credential) HasValidAccessToken(now time.Time, margin time.Duration) bool {
	if c.EncryptedAccessToken == "" || c.AccessTokenExpiresAt == nil {
		return false
	}

	return now.Add(margin).Before(*c.AccessTokenExpiresAt)
}
