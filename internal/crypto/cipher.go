// crypto реализует шифрование токенов EDM для хранения в БД (AES-256-GCM)
// и необратимое хэширование refresh-токенов (SHA-256) для аудита.
//
// Ключ задаётся один раз при старте сервиса; пакет не выполняет I/O
// и безопасен для конкурентного использования.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidKey — ключ отсутствует, не декодируется из base64 или имеет
	// неверную длину. Фатальная ошибка конфигурации: сервис не должен стартовать.
	ErrInvalidKey = errors.New("invalid cipher key")

	// ErrDecrypt — шифротекст не расшифровывается: повреждение, усечение
	// или подмена данных (GCM не прошёл аутентификацию).
	ErrDecrypt = errors.New("decrypt failed")
)

// keySize — длина ключа AES-256 в байтах.
const keySize = 32

// Cipher шифрует и расшифровывает токены одним симметричным ключом.
type Cipher struct {
	aead cipher.AEAD
}

// New создаёт Cipher из base64-кодированного 32-байтового ключа.
func New(base64Key string) (*Cipher, error) {
	const op = "crypto.cipher.New"

	if base64Key == "" {
		return nil, fmt.Errorf("%s: %w: key is empty", op, ErrInvalidKey)
	}

	key, err := base64.StdEncoding.DecodeString(base64Key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: not a base64 string", op, ErrInvalidKey)
	}

	if len(key) != keySize {
		return nil, fmt.Errorf("%s: %w: want %d bytes, got %d", op, ErrInvalidKey, keySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt шифрует plaintext и возвращает base64-строку вида nonce||ciphertext.
// Nonce генерируется заново на каждый вызов: повторное шифрование одного
// и того же значения даёт разные шифротексты.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	const op = "crypto.cipher.Encrypt"

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt расшифровывает строку, полученную из Encrypt.
// Любая форма повреждения входа возвращает ErrDecrypt.
func (c *Cipher) Decrypt(encrypted string) (string, error) {
	const op = "crypto.cipher.Decrypt"

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%s: %w: not a base64 string", op, ErrDecrypt)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", fmt.Errorf("%s: %w: ciphertext too short", op, ErrDecrypt)
	}

	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	return string(plaintext), nil
}

// Hash возвращает необратимый хэш токена (sha256 → base64url без паддинга).
// Хэш детерминирован и пригоден для поиска/сверки без раскрытия значения.
func (c *Cipher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
