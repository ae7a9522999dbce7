package hash

import (
	"github.com/libreserve/reservation-service/internal/errs"
	"golang.org/x/crypto/bcrypt"
)

// Checker verifies a plaintext credential against its stored
// representation. Injected so tests and future schemes can swap it.
type Checker interface {
	Verify(plaintext, stored string) error
}

type bcryptChecker struct{}

func NewBcryptChecker() Checker {
	return bcryptChecker{}
}

func (bcryptChecker) Verify(plaintext, stored string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)); err != nil {
		return errs.ErrWrongPassword
	}
	return nil
}

// Generate hashes a plaintext credential for storage. Used by seeding
// and tests; account management itself lives outside this service.
func Generate(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
