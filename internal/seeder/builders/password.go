package builders

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	hashSaltSize    = 16
	hashKeySize     = 32
	hashMemory      = 64 * 1024
	hashIterations  = 1
	hashParallelism = 4
)

// hashPassword derives an argon2id credential in PHC string format. Seeded
// accounts are real logins in staging, so the hash must match what the
// application's verifier expects.
func hashPassword(password string) (string, error) {
	salt := make([]byte, hashSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, hashIterations, hashMemory, uint8(hashParallelism), hashKeySize)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, hashMemory, hashIterations, hashParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}
