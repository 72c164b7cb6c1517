// Package password проверяет пароль оператора API по bcrypt-хэшу из конфигурации.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMismatch возвращается, если пароль не соответствует хэшу.
	ErrMismatch = errors.New("password mismatch")

	// ErrMalformedHash возвращается для строки, не являющейся bcrypt-хэшем.
	ErrMalformedHash = errors.New("malformed bcrypt hash")
)

// Hash хеширует пароль с использованием bcrypt.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password is empty")
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(bytes), nil
}

// ValidateHash проверяет, что строка является bcrypt-хэшем.
func ValidateHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return nil
}

// Verify сверяет пароль с хэшем.
func Verify(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
