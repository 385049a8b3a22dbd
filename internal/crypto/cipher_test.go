package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Пакет unit-тестов для internal/crypto (cipher.go).
//
// Покрытие:
//   - New: валидный ключ, пустой ключ, не-base64, неверная длина;
//   - Encrypt/Decrypt round-trip, включая пустую строку и Unicode;
//   - недетерминированность шифрования (свежий nonce на каждый вызов);
//   - обнаружение подмены/усечения шифротекста (ErrDecrypt);
//   - расшифровка чужим ключом (ErrDecrypt);
//   - Hash: детерминированность, отличие от исходного значения.

func testKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, keySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(key)
}

func newTestCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := New(testKey(t))
	require.NoError(t, err)
	return c
}

func TestNew_InvalidKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "not_base64", key: "%%%not-base64%%%"},
		{name: "too_short", key: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "too_long", key: base64.StdEncoding.EncodeToString(make([]byte, 48))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.key)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	c := newTestCipher(t)

	tests := []struct {
		name  string
		plain string
	}{
		{name: "refresh_token_like", plain: "1000.abcdef0123456789.fedcba9876543210"},
		{name: "empty", plain: ""},
		{name: "unicode", plain: "токен-доступа-«ЕДМ»"},
		{name: "long", plain: strings.Repeat("x", 4096)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, err := c.Encrypt(tt.plain)
			require.NoError(t, err)
			require.NotEqual(t, tt.plain, enc)

			dec, err := c.Decrypt(enc)
			require.NoError(t, err)
			require.Equal(t, tt.plain, dec)
		})
	}
}

// TestEncrypt_FreshNonce — два шифрования одного значения дают разные
// шифротексты, и оба расшифровываются в исходное значение.
func TestEncrypt_FreshNonce(t *testing.T) {
	t.Parallel()

	c := newTestCipher(t)
	const plain = "same-plaintext"

	enc1, err := c.Encrypt(plain)
	require.NoError(t, err)
	enc2, err := c.Encrypt(plain)
	require.NoError(t, err)

	require.NotEqual(t, enc1, enc2)

	dec1, err := c.Decrypt(enc1)
	require.NoError(t, err)
	dec2, err := c.Decrypt(enc2)
	require.NoError(t, err)

	require.Equal(t, plain, dec1)
	require.Equal(t, plain, dec2)
}

func TestDecrypt_Tampered(t *testing.T) {
	t.Parallel()

	c := newTestCipher(t)

	enc, err := c.Encrypt("sensitive-value")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(enc)
	require.NoError(t, err)

	t.Run("flipped_byte", func(t *testing.T) {
		t.Parallel()

		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[len(tampered)-1] ^= 0xFF

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
		require.Error(t, err)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(raw[:8]))
		require.Error(t, err)
		require.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("not_base64", func(t *testing.T) {
		t.Parallel()

		_, err := c.Decrypt("***not-base64***")
		require.Error(t, err)
		require.ErrorIs(t, err, ErrDecrypt)
	})
}

// TestDecrypt_WrongKey — значение, зашифрованное одним ключом,
// не расшифровывается другим.
func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	c1 := newTestCipher(t)
	c2 := newTestCipher(t)

	enc, err := c1.Encrypt("cross-key-value")
	require.NoError(t, err)

	_, err = c2.Decrypt(enc)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestHash_DeterministicAndOpaque(t *testing.T) {
	t.Parallel()

	c := newTestCipher(t)
	const plain = "refresh-token-plain"

	h1 := c.Hash(plain)
	h2 := c.Hash(plain)

	require.Equal(t, h1, h2)
	require.NotEqual(t, plain, h1)
	require.NotContains(t, h1, plain)

	require.NotEqual(t, h1, c.Hash("another-token"))

	// base64url без паддинга: декодируется обратно в 32 байта sha256.
	sum, err := base64.RawURLEncoding.DecodeString(h1)
	require.NoError(t, err)
	require.Len(t, sum, 32)
}
