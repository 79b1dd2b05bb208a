package passwordresetcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"postboard/internal/core/domain/user"
)

var codeSpace = big.NewInt(1_000_000)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePasswordResetCode returns a zero-padded decimal code drawn uniformly
// from 000000-999999.
func (g *Generator) GeneratePasswordResetCode() (user.PasswordResetCode, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("could not generate password reset code: %w", err)
	}
	return user.PasswordResetCode(fmt.Sprintf("%0*d", user.PasswordResetCodeLength, n.Int64())), nil
}
