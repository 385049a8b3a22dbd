package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/models"
	apierrors "github.com/pribylovaa/edm-sync/internal/transport/http/errors"
)

// hashPrefixLen — сколько символов хэша refresh-токена показывать оператору.
// Достаточно для сверки с выпиской EDM, бесполезно для подбора.
const hashPrefixLen = 8

// credentialView — операторское представление записи.
// Шифротекстов и полного хэша в нём нет.
type credentialView struct {
	ID                    string     `json:"id"`
	RefreshTokenHashPfx   string     `json:"refresh_token_hash_prefix"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	LastRefreshedAt       *time.Time `json:"last_refreshed_at,omitempty"`
	NextRefreshAt         time.Time  `json:"next_refresh_at"`
	RefreshFailureCount   int        `json:"refresh_failure_count"`
	Revoked               bool       `json:"revoked"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func credentialFromModel(c *models.Credential) credentialView {
	prefix := c.RefreshTokenHash
	if len(prefix) > hashPrefixLen {
		prefix = prefix[:hashPrefixLen]
	}

	return credentialView{
		ID:                   c.ID.String(),
		RefreshTokenHashPfx:  prefix,
		AccessTokenExpiresAt: c.AccessTokenExpiresAt,
		LastRefreshedAt:      c.LastRefreshedAt,
		NextRefreshAt:        c.NextRefreshAt,
		RefreshFailureCount:  c.RefreshFailureCount,
		Revoked:              c.Revoked,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

type createCredentialRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreateCredential — POST /credentials: регистрация выданного вручную
// refresh-токена.
func (h *Handlers) CreateCredential(w http.ResponseWriter, r *http.Request) {
	var in createCredentialRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	cred, err := h.Svc.CreateCredential(r.Context(), in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, credentialFromModel(cred))
}

// ListCredentials — GET /credentials: все записи, включая отозванные.
func (h *Handlers) ListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.Svc.ListCredentials(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]credentialView, 0, len(creds))
	for i := range creds {
		out = append(out, credentialFromModel(&creds[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetCredential — GET /credentials/{id}.
func (h *Handlers) GetCredential(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	cred, err := h.Svc.CredentialByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, credentialFromModel(cred))
}

type revokeCredentialResponse struct {
	Revoked bool `json:"revoked"`
}

// RevokeCredential — DELETE /credentials/{id}: терминальный отзыв записи.
func (h *Handlers) RevokeCredential(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
		return
	}

	if err := h.Svc.RevokeCredential(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, revokeCredentialResponse{Revoked: true})
}
