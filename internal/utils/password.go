package utils

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used when configuration does not
// override it.
const DefaultBcryptCost = 12

// HashPassword returns a bcrypt hash using the given cost.  Every call draws
// a fresh salt, so hashing the same password twice yields different strings.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.  A
// mismatch or a malformed hash both report false.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
