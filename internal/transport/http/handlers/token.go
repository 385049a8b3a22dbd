package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/edm-sync/internal/transport/http/errors"
)

// tokenCheckResponse — подтверждение работоспособности цепочки выдачи.
// Сам access-токен в ответ не попадает.
type tokenCheckResponse struct {
	CredentialID         string     `json:"credential_id"`
	AccessTokenExpiresAt *time.Time `json:"access_token_expires_at,omitempty"`
}

// CheckToken — POST /token/check: проверка, что действующий access-токен
// получить можно. Проходит тот же путь, что и вызовы синхронизации:
// выбор актуальной записи, быстрый путь либо обновление.
func (h *Handlers) CheckToken(w http.ResponseWriter, r *http.Request) {
	_, cred, err := h.Svc.ActiveAccessToken(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	// Перечитываем запись: обновление могло сдвинуть срок жизни токена.
	fresh, err := h.Svc.CredentialByID(r.Context(), cred.ID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenCheckResponse{
		CredentialID:         fresh.ID.String(),
		AccessTokenExpiresAt: fresh.AccessTokenExpiresAt,
	})
}
