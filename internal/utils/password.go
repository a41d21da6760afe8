package utils

import "golang.org/x/crypto/bcrypt"

// HashSenha returns the bcrypt hash of a senha using the given cost.
// Senhas are never stored or compared in plaintext.
func HashSenha(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifySenha safely compares a bcrypt hash and a plaintext senha.
func VerifySenha(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
