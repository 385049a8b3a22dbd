package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/edm-sync/internal/edm"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/internal/storage"
	"github.com/stretchr/testify/require"
)

// withAccessToken дополняет запись сохранённым access-токеном.
func withAccessToken(t *testing.T, cred *models.Credential, plain string, expiresAt *time.Time) {
	t.Helper()

	encrypted, err := testCipher(t).Encrypt(plain)
	require.NoError(t, err)

	cred.EncryptedAccessToken = encrypted
	cred.AccessTokenExpiresAt = expiresAt
}

// TestValidAccessToken_FastPath_NoSideEffects — пригодный сохранённый токен
// возвращается без обращения к апстриму и без единой записи в хранилище.
func TestValidAccessToken_FastPath_NoSideEffects(t *testing.T) {
	t.Parallel()

	svc, _, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	withAccessToken(t, cred, "cached-access", &expiresAt)

	token, err := svc.ValidAccessToken(context.Background(), cred)
	require.NoError(t, err)
	require.Equal(t, "cached-access", token)

	require.Empty(t, tokens.calls(), "быстрый путь не должен ходить к апстриму")
}

// TestValidAccessToken_ExpiryWithinMargin_Refreshes — токен формально жив,
// но запаса не хватает: выполняется обновление.
func TestValidAccessToken_ExpiryWithinMargin_Refreshes(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	expiresAt := time.Now().UTC().Add(30 * time.Second)
	withAccessToken(t, cred, "stale-access", &expiresAt)
	tokens.resp = &edm.TokenResponse{AccessToken: "fresh-access", ExpiresIn: 3600}

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), cred.ID, gomock.Any()).
		Return(nil)

	token, err := svc.ValidAccessToken(context.Background(), cred)
	require.NoError(t, err)
	require.Equal(t, "fresh-access", token)
	require.Equal(t, []string{"rt-plain"}, tokens.calls())
}

// TestValidAccessToken_UnknownExpiry_Refreshes — срок жизни неизвестен:
// токен пригодным не считается.
func TestValidAccessToken_UnknownExpiry_Refreshes(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	withAccessToken(t, cred, "no-expiry-access", nil)
	tokens.resp = &edm.TokenResponse{AccessToken: "fresh-access", ExpiresIn: 3600}

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), cred.ID, gomock.Any()).
		Return(nil)

	token, err := svc.ValidAccessToken(context.Background(), cred)
	require.NoError(t, err)
	require.Equal(t, "fresh-access", token)
}

// TestValidAccessToken_NoStoredToken_Refreshes — access-токена ещё нет
// (запись только зарегистрирована).
func TestValidAccessToken_NoStoredToken_Refreshes(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	tokens.resp = &edm.TokenResponse{AccessToken: "first-access", ExpiresIn: 3600}

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), cred.ID, gomock.Any()).
		Return(nil)

	token, err := svc.ValidAccessToken(context.Background(), cred)
	require.NoError(t, err)
	require.Equal(t, "first-access", token)
}

// TestValidAccessToken_CorruptStoredToken_FallsBackToRefresh — нечитаемый
// сохранённый access-токен не фатален: выдаётся свежий.
func TestValidAccessToken_CorruptStoredToken_FallsBackToRefresh(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	cred.EncryptedAccessToken = "@@@garbage@@@"
	cred.AccessTokenExpiresAt = &expiresAt
	tokens.resp = &edm.TokenResponse{AccessToken: "fresh-access", ExpiresIn: 3600}

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), cred.ID, gomock.Any()).
		Return(nil)

	token, err := svc.ValidAccessToken(context.Background(), cred)
	require.NoError(t, err)
	require.Equal(t, "fresh-access", token)
	require.Len(t, tokens.calls(), 1)
}

// TestValidAccessToken_RefreshFails_Unavailable — неудачное обновление
// сворачивается в ErrAccessTokenUnavailable с сохранением причины.
func TestValidAccessToken_RefreshFails_Unavailable(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	tokens.err = &edm.UpstreamError{StatusCode: 503, Body: "upstream down"}

	st.EXPECT().
		ApplyRefreshFailure(gomock.Any(), cred.ID, gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := svc.ValidAccessToken(context.Background(), cred)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAccessTokenUnavailable)
	require.ErrorIs(t, err, ErrUpstreamRejected)
}

// TestValidAccessToken_Revoked — отозванная запись токен не выдаёт.
func TestValidAccessToken_Revoked(t *testing.T) {
	t.Parallel()

	svc, _, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	cred.Revoked = true

	_, err := svc.ValidAccessToken(context.Background(), cred)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCredentialRevoked)
	require.NotErrorIs(t, err, ErrAccessTokenUnavailable)
	require.Empty(t, tokens.calls())
}

// TestActiveAccessToken_OK — выбор актуальной записи + выдача токена.
func TestActiveAccessToken_OK(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	withAccessToken(t, cred, "cached-access", &expiresAt)

	st.EXPECT().ActiveCredential(gomock.Any()).Return(cred, nil)

	token, got, err := svc.ActiveAccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cached-access", token)
	require.Equal(t, cred.ID, got.ID)
}

// TestActiveAccessToken_NoCredential — пустое хранилище.
func TestActiveAccessToken_NoCredential(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().ActiveCredential(gomock.Any()).Return(nil, storage.ErrNotFound)

	_, _, err := svc.ActiveAccessToken(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoCredential)
}

// TestActiveAccessToken_StorageError — инфраструктурная ошибка не
// маскируется под отсутствие записи.
func TestActiveAccessToken_StorageError(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().ActiveCredential(gomock.Any()).Return(nil, errors.New("db down"))

	_, _, err := svc.ActiveAccessToken(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoCredential)
}

// TestActiveAccessToken_RefreshPath — актуальная запись без пригодного
// токена проходит полный путь обновления.
func TestActiveAccessToken_RefreshPath(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	cred := mkCredential(t, testCipher(t), "rt-plain")
	tokens.resp = &edm.TokenResponse{AccessToken: "fresh-access", ExpiresIn: 3600}

	st.EXPECT().ActiveCredential(gomock.Any()).Return(cred, nil)
	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), cred.ID, gomock.Any()).
		Return(nil)

	token, got, err := svc.ActiveAccessToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresh-access", token)
	require.Equal(t, cred.ID, got.ID)
}
