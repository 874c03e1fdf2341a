package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.  A
// malformed hash never matches.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewDummyHash returns a bcrypt hash of a fixed throwaway string at the
// given cost.  Comparing against it costs the same as checking a real
// password hashed at that cost.
func NewDummyHash(cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte("not-a-real-password-7f3a"), cost)
}

// BurnPasswordCheck runs a bcrypt comparison against dummy whose result is
// discarded.  Login calls it for unknown users so response time does not
// reveal whether the username exists.
func BurnPasswordCheck(dummy []byte, plain string) {
	_ = bcrypt.CompareHashAndPassword(dummy, []byte(plain))
}
