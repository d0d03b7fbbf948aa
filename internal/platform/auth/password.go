package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for every password in the
// system. 12 keeps a single verify in the tens-of-milliseconds range on
// commodity hardware.
const DefaultCost = 12

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
// bcrypt.CompareHashAndPassword is constant-time with respect to the
// candidate password, which is the property the Identity service relies on
// to avoid leaking which half of a login attempt was wrong.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
