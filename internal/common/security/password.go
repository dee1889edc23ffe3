package security

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of the plaintext password. bcrypt
// embeds a per-call random salt in the hash, so equal passwords still
// produce distinct hashes.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
