package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/config"
	"github.com/pribylovaa/edm-sync/internal/edm"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/mocks"
	"github.com/stretchr/testify/require"
)

// seqID — UUID с возрастающим байтовым порядком: курсорная пагинация
// в тестах воспроизводит порядок выборки из БД.
func seqID(i int) uuid.UUID {
	var id uuid.UUID
	id[14] = byte(i >> 8)
	id[15] = byte(i)
	return id
}

// mkSweepCreds — n записей с упорядоченными ID и расшифровываемыми
// refresh-токенами "rt-1".."rt-n".
func mkSweepCreds(t *testing.T, n int) []models.Credential {
	t.Helper()

	cipher := testCipher(t)
	now := time.Now().UTC()

	creds := make([]models.Credential, 0, n)
	for i := 1; i <= n; i++ {
		encrypted, err := cipher.Encrypt(fmt.Sprintf("rt-%d", i))
		require.NoError(t, err)

		creds = append(creds, models.Credential{
			ID:                    seqID(i),
			EncryptedRefreshToken: encrypted,
			RefreshTokenHash:      cipher.Hash(fmt.Sprintf("rt-%d", i)),
			NextRefreshAt:         now,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	}

	return creds
}

// TestSweepAll_PaginatesUntilExhausted — 250 записей при странице 100:
// ровно три выборки с продвижением курсора и 250 итогов.
func TestSweepAll_PaginatesUntilExhausted(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	creds := mkSweepCreds(t, 250)

	gomock.InOrder(
		st.EXPECT().
			CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
			Return(append([]models.Credential(nil), creds[0:100]...), nil),
		st.EXPECT().
			CredentialsForRefresh(gomock.Any(), creds[99].ID, 100).
			Return(append([]models.Credential(nil), creds[100:200]...), nil),
		st.EXPECT().
			CredentialsForRefresh(gomock.Any(), creds[199].ID, 100).
			Return(append([]models.Credential(nil), creds[200:250]...), nil),
	)

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(250)

	results, err := svc.SweepAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 250)

	for i, res := range results {
		require.Equal(t, creds[i].ID, res.CredentialID, "итоги должны идти в порядке обхода")
		require.True(t, res.Refreshed)
		require.Empty(t, res.Detail)
	}
}

// TestSweepAll_ShortFirstPage_SingleQuery — страница короче лимита
// означает конец данных: второй выборки не будет.
func TestSweepAll_ShortFirstPage_SingleQuery(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	creds := mkSweepCreds(t, 3)

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(creds, nil)
	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)

	results, err := svc.SweepAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)
}

// TestSweepAll_Empty — пустое хранилище: один запрос, пустой итог.
func TestSweepAll_Empty(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(nil, nil)

	results, err := svc.SweepAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
}

// TestSweepAll_MixedOutcomes_IsolatesFailures — неудачи отдельных записей
// не прерывают обход и не влияют на соседние записи.
func TestSweepAll_MixedOutcomes_IsolatesFailures(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	creds := mkSweepCreds(t, 3)
	creds[2].EncryptedRefreshToken = "@@@corrupt@@@"

	tokens.respFn = func(refreshToken string) (*edm.TokenResponse, error) {
		if refreshToken == "rt-2" {
			return nil, &edm.UpstreamError{StatusCode: 400, Body: `{"error":"invalid_grant"}`}
		}
		return &edm.TokenResponse{AccessToken: "fresh-" + refreshToken, ExpiresIn: 3600}, nil
	}

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(creds, nil)
	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), creds[0].ID, gomock.Any()).
		Return(nil)
	st.EXPECT().
		ApplyRefreshFailure(gomock.Any(), creds[1].ID, gomock.Any(), gomock.Any()).
		Return(nil)
	st.EXPECT().
		ApplyRefreshFailure(gomock.Any(), creds[2].ID, gomock.Any(), gomock.Any()).
		Return(nil)

	results, err := svc.SweepAll(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.True(t, results[0].Refreshed)
	require.Empty(t, results[0].Detail)

	require.False(t, results[1].Refreshed)
	require.Contains(t, results[1].Detail, "status=400")
	require.NotContains(t, results[1].Detail, "invalid_grant")

	require.False(t, results[2].Refreshed)
	require.Contains(t, results[2].Detail, "corrupted")
}

// TestSweepAll_Sequential_NoOverlap — записи обрабатываются строго по одной:
// конкурентных обращений к апстриму обход не порождает.
func TestSweepAll_Sequential_NoOverlap(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	creds := mkSweepCreds(t, 5)
	tokens.delay = 10 * time.Millisecond

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(creds, nil)
	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(5)

	_, err := svc.SweepAll(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 1, tokens.maxSeen, "не больше одного обращения одновременно")
	require.Equal(t, []string{"rt-1", "rt-2", "rt-3", "rt-4", "rt-5"}, tokens.calls())
}

// TestSweepAll_PageError_Aborts — ошибка постраничной выборки прерывает обход.
func TestSweepAll_PageError_Aborts(t *testing.T) {
	t.Parallel()

	svc, st, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(nil, errors.New("db down"))

	results, err := svc.SweepAll(context.Background())
	require.Error(t, err)
	require.Nil(t, results)
}

// TestSweepDue_DeadlinePinnedAtStart — срез «наступивших» фиксируется на
// старте: обе страницы запрашиваются с одним и тем же порогом.
func TestSweepDue_DeadlinePinnedAtStart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	st := mocks.NewMockStorage(ctrl)
	tokens := &stubTokens{delay: 5 * time.Millisecond}

	cfg := config.RefreshConfig{
		Interval:     8 * time.Hour,
		RetryBackoff: time.Hour,
		BatchSize:    2,
	}
	svc := New(st, tokens, testCipher(t), cfg)

	creds := mkSweepCreds(t, 3)

	var deadlines []time.Time
	gomock.InOrder(
		st.EXPECT().
			CredentialsDueForRefresh(gomock.Any(), uuid.Nil, gomock.Any(), 2).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, dueBefore time.Time, _ int) ([]models.Credential, error) {
				deadlines = append(deadlines, dueBefore)
				return append([]models.Credential(nil), creds[0:2]...), nil
			}),
		st.EXPECT().
			CredentialsDueForRefresh(gomock.Any(), creds[1].ID, gomock.Any(), 2).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, dueBefore time.Time, _ int) ([]models.Credential, error) {
				deadlines = append(deadlines, dueBefore)
				return append([]models.Credential(nil), creds[2:3]...), nil
			}),
	)

	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(3)

	before := time.Now().UTC()
	results, err := svc.SweepDue(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.Len(t, deadlines, 2)
	require.Equal(t, deadlines[0], deadlines[1], "порог должен быть зафиксирован на старте обхода")
	require.True(t, deadlines[0].After(before.Add(-time.Second)))
}

// TestSweep_ContextCanceled_Aborts — отмена контекста прерывает обход
// между записями.
func TestSweep_ContextCanceled_Aborts(t *testing.T) {
	t.Parallel()

	svc, st, tokens, ctrl := newSvc(t)
	defer ctrl.Finish()

	creds := mkSweepCreds(t, 2)

	ctx, cancel := context.WithCancel(context.Background())

	tokens.respFn = func(string) (*edm.TokenResponse, error) {
		// Отмена после первой записи.
		cancel()
		return &edm.TokenResponse{AccessToken: "fresh", ExpiresIn: 3600}, nil
	}

	st.EXPECT().
		CredentialsForRefresh(gomock.Any(), uuid.Nil, 100).
		Return(creds, nil)
	st.EXPECT().
		ApplyRefreshSuccess(gomock.Any(), creds[0].ID, gomock.Any()).
		Return(nil)

	results, err := svc.SweepAll(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results)
}
