package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"regexp"
)

var inviteCodePattern = regexp.MustCompile(`^\d{6}$`)

// GenerateInviteCode returns a 6-digit numeric one-time code.
func GenerateInviteCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashInviteCode digests a code for storage. The collaborator ID acts as a
// per-record salt so equal codes on different invites produce different digests.
func HashInviteCode(collaboratorID uint, code string) string {
	secret := os.Getenv("INVITE_CODE_SECRET")
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s:%s", collaboratorID, code, secret)))
	return hex.EncodeToString(sum[:])
}

// ValidInviteCodeFormat reports whether the code is syntactically a 6-digit OTP.
func ValidInviteCodeFormat(code string) bool {
	return inviteCodePattern.MatchString(code)
}
