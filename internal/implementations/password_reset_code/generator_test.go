package passwordresetcode

import (
	"postboard/internal/core/domain/user"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

func TestGeneratedCodeFormat(t *testing.T) {
	generator := NewGenerator()
	for i := 0; i < 1000; i++ {
		code, err := generator.GeneratePasswordResetCode()
		require.NoError(t, err)
		require.Regexp(t, codePattern, string(code))
		require.Len(t, string(code), user.PasswordResetCodeLength)
	}
}

func TestGeneratedCodesVary(t *testing.T) {
	generator := NewGenerator()
	codes := make(map[user.PasswordResetCode]struct{})
	for i := 0; i < 100; i++ {
		code, err := generator.GeneratePasswordResetCode()
		require.NoError(t, err)
		codes[code] = struct{}{}
	}
	// 100 draws from a million values collide rarely, never down to a handful.
	require.Greater(t, len(codes), 90)
}
