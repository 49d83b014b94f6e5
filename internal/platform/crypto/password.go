package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for account passwords.
const PasswordCost = 10

// BcryptHasher hashes and verifies passwords with a per-hash random salt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using PasswordCost.
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: PasswordCost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = PasswordCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
