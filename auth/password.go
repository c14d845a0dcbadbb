package auth

import (
	"errors"

	"github.com/rpupo63/blog-platform-backend/errs"
	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor
const passwordCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword returns an invalid-password error when password does not match hash
func ComparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return errs.NewInvalidPasswordError()
	}
	return err
}
