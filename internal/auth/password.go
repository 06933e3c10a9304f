package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword creates a bcrypt digest. bcrypt salts per call, so hashing the
// same plaintext twice yields different digests.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the digest. bcrypt's
// comparison is constant-time; a malformed digest surfaces as an error rather
// than a silent mismatch.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
