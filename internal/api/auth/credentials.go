package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt digest. The digest embeds the algorithm
// version, cost and salt, so the scheme can be raised later without
// invalidating stored credentials.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// GenerateTempPassword returns a short random url-safe secret. Used both
// for the unusable password assigned to pending registrations and for the
// one-time temporary password handed out on approval.
func GenerateTempPassword() string {
	b := make([]byte, 8)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
