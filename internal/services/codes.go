package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	MinVerificationCode = 100000
	MaxVerificationCode = 999999
)

//go:generate mockgen -destination=./mocks/code_generator.go -package=mocks Staffline/internal/services CodeGenerator
type CodeGenerator interface {
	Generate() (string, error)
}

type codeGenerator struct{}

// NewCodeGenerator returns a generator for six digit codes drawn uniformly
// from [MinVerificationCode, MaxVerificationCode].
func NewCodeGenerator() CodeGenerator {
	return codeGenerator{}
}

func (codeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(MaxVerificationCode-MinVerificationCode+1))
	if err != nil {
		return "", fmt.Errorf("reading random: %w", err)
	}

	return fmt.Sprintf("%d", n.Int64()+MinVerificationCode), nil
}
