package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// dummyHashes holds one throwaway hash per bcrypt cost, built on first use.
// Comparing against it makes unknown emails cost the same bcrypt work as
// wrong passwords.
var dummyHashes sync.Map // int -> []byte

func dummyHash(cost int) []byte {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if h, ok := dummyHashes.Load(cost); ok {
		return h.([]byte)
	}
	h, err := bcrypt.GenerateFromPassword([]byte("restaurant-dummy-password"), cost)
	if err != nil {
		// cost above bcrypt.MaxCost; HashPassword fails the same way.
		return nil
	}
	actual, _ := dummyHashes.LoadOrStore(cost, h)
	return actual.([]byte)
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnPassword performs a throwaway comparison at the given cost, the one
// real hashes are made with, and always reports false.
func BurnPassword(plain string, cost int) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cost), []byte(plain))
	return false
}
