package utils

import (
	"fmt"
	"strings"

	"github.com/go-crypt/crypt"
	"github.com/go-crypt/crypt/algorithm"
	"github.com/go-crypt/crypt/algorithm/argon2"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for bcrypt digests.
const BcryptCost = 10

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type argon2Hasher struct {
	hasher *argon2.Hasher
}

func NewArgon2Hasher() (PasswordHasher, error) {
	hasher, err := argon2.New(
		argon2.WithProfileRFC9106LowMemory(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating argon2 hasher: %w", err)
	}

	return &argon2Hasher{
		hasher: hasher,
	}, nil
}

func (h *argon2Hasher) Hash(password string) (string, error) {
	var (
		digest algorithm.Digest
		err    error
	)

	if digest, err = h.hasher.Hash(password); err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return digest.Encode(), nil
}

type bcryptHasher struct {
	cost int
}

func NewBcryptHasher() PasswordHasher {
	return &bcryptHasher{
		cost: BcryptCost,
	}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hashed), nil
}

// CompareHash reports whether password matches hashedPassword. Both argon2 and
// bcrypt digests are understood.
func CompareHash(password string, hashedPassword string) bool {
	if strings.HasPrefix(hashedPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
	}

	valid, err := crypt.CheckPassword(password, hashedPassword)
	if err != nil {
		return false
	}

	return valid
}
