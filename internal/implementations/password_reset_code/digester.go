package passwordresetcode

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"postboard/internal/core/domain/user"
	"strconv"
)

// HMAC digests reset codes with a server-side key. The digest is bound to the
// account, so a code issued for one account never matches another.
type HMAC struct {
	secretKey []byte
}

func NewHMAC(secretKey string) *HMAC {
	return &HMAC{secretKey: []byte(secretKey)}
}

func (h *HMAC) Digest(userID user.ID, code user.PasswordResetCode) user.PasswordResetCodeDigest {
	return user.PasswordResetCodeDigest(hex.EncodeToString(h.getMac(userID, code)))
}

func (h *HMAC) Matches(
	userID user.ID,
	code user.PasswordResetCode,
	digest user.PasswordResetCodeDigest,
) bool {
	expected, err := hex.DecodeString(string(digest))
	if err != nil {
		return false
	}
	return hmac.Equal(h.getMac(userID, code), expected)
}

func (h *HMAC) getMac(userID user.ID, code user.PasswordResetCode) []byte {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, strconv.FormatInt(int64(userID), 10))
	io.WriteString(hasher, ":")
	io.WriteString(hasher, string(code))
	return hasher.Sum(nil)
}
