package auth

import "golang.org/x/crypto/bcrypt"

// hashPassword returns a bcrypt hash using the given cost. bcrypt
// salts internally, so equal passwords produce different hashes.
func hashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword compares a stored hash against a candidate password.
// bcrypt's comparison is constant-time, which keeps the wrong-password
// path indistinguishable from a near-miss by timing.
func verifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
