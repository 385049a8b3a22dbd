package service

import (
	"context"
	"encoding/base64"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pribylovaa/edm-sync/internal/config"
	"github.com/pribylovaa/edm-sync/internal/crypto"
	"github.com/pribylovaa/edm-sync/internal/edm"
	"github.com/pribylovaa/edm-sync/internal/models"
	"github.com/pribylovaa/edm-sync/mocks"
	"github.com/stretchr/testify/require"
)

// testKeyPlain — ровно 32 байта; ключ детерминирован, чтобы шифротексты
// из хелперов расшифровывались в любом месте теста.
const testKeyPlain = "0123456789abcdef0123456789abcdef"

func testCipher(t *testing.T) *crypto.Cipher {
	t.Helper()

	c, err := crypto.New(base64.StdEncoding.EncodeToString([]byte(testKeyPlain)))
	require.NoError(t, err)
	return c
}

func testRefreshCfg() config.RefreshConfig {
	return config.RefreshConfig{
		Interval:     8 * time.Hour,
		RetryBackoff: time.Hour,
		BatchSize:    100,
	}
}

// stubTokens — минимальный TokenClient для тестов сервиса.
// Фиксирует полученные plaintext refresh-токены и следит за тем,
// сколько обращений выполняется одновременно.
type stubTokens struct {
	mu  sync.Mutex
	got []string

	// respFn, если задан, имеет приоритет над resp/err.
	respFn func(refreshToken string) (*edm.TokenResponse, error)
	resp   *edm.TokenResponse
	err    error

	delay    time.Duration
	inFlight int32
	maxSeen  int32
}

func (s *stubTokens) Refresh(ctx context.Context, refreshToken string) (*edm.TokenResponse, error) {
	cur := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)

	for {
		seen := atomic.LoadInt32(&s.maxSeen)
		if cur <= seen || atomic.CompareAndSwapInt32(&s.maxSeen, seen, cur) {
			break
		}
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	s.got = append(s.got, refreshToken)
	fn, resp, err := s.respFn, s.resp, s.err
	s.mu.Unlock()

	if fn != nil {
		return fn(refreshToken)
	}
	if err != nil {
		return nil, err
	}
	if resp != nil {
		out := *resp
		return &out, nil
	}

	return &edm.TokenResponse{AccessToken: "stub-access", ExpiresIn: 3600}, nil
}

func (s *stubTokens) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.got...)
}

func newSvc(t *testing.T) (*Service, *mocks.MockStorage, *stubTokens, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	tokens := &stubTokens{}
	svc := New(st, tokens, testCipher(t), testRefreshCfg())
	return svc, st, tokens, ctrl
}

// mkCredential — активная запись с расшифровываемым refresh-токеном.
func mkCredential(t *testing.T, c *crypto.Cipher, refreshPlain string) *models.Credential {
	t.Helper()

	encrypted, err := c.Encrypt(refreshPlain)
	require.NoError(t, err)

	now := time.Now().UTC()
	return &models.Credential{
		ID:                    uuid.New(),
		EncryptedRefreshToken: encrypted,
		RefreshTokenHash:      c.Hash(refreshPlain),
		NextRefreshAt:         now,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// within проверяет, что момент времени t попал в [from, to].
func within(t time.Time, from, to time.Time) bool {
	return (t.Equal(from) || t.After(from)) && (t.Equal(to) || t.Before(to))
}
