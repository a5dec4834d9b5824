package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	verificationCodeTTLSeconds = 10 * 60
	resetTokenTTLSeconds       = 60 * 60
)

// newVerificationCode returns a uniformly random zero-padded 6-digit code.
func newVerificationCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(1000000))
	return fmt.Sprintf("%06d", n.Int64())
}

// newResetToken returns 32 random bytes hex-encoded, long enough that the
// token cannot be guessed within its one hour lifetime.
func newResetToken() string {
	bytes := make([]byte, 32)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
