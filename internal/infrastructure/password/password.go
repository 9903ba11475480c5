// Package password derives and checks account password digests.
//
// New digests are bcrypt. Accounts migrated from the previous storefront
// still carry a bare hex SHA-256 digest; those verify with a constant-time
// compare and are reported by NeedsRehash so the caller can upgrade them.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const legacyDigestLen = sha256.Size * 2

// Hasher implements ports.PasswordHasher.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using the given bcrypt cost. Costs outside the
// range bcrypt accepts fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *Hasher) Verify(hash, plain string) bool {
	if isLegacyDigest(hash) {
		want := []byte(strings.ToLower(hash))
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(plain)), want) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (h *Hasher) NeedsRehash(hash string) bool {
	if isLegacyDigest(hash) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < h.cost
}

// LegacyDigest is the unsalted hex SHA-256 digest older accounts were stored with.
func LegacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(hash string) bool {
	if len(hash) != legacyDigestLen {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
