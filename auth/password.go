package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters; 64-byte derived keys stored as "<hexHash>.<hexSalt>".
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

func hashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// comparePasswords verifies a supplied password against a stored value.
// A stored value without the separator is a legacy plaintext credential
// from initial setup and is compared directly; that path exists only so
// the bootstrap admin can log in before its hash migration runs.
// Malformed stored values fail verification rather than erroring out.
func comparePasswords(supplied, stored string) bool {
	if !strings.Contains(stored, ".") {
		log.Println("Stored password is not in the hashed format, using plaintext fallback")
		return supplied == stored
	}

	parts := strings.SplitN(stored, ".", 2)
	hashed, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	suppliedKey, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}
	if len(hashed) != len(suppliedKey) {
		return false
	}

	return subtle.ConstantTimeCompare(hashed, suppliedKey) == 1
}
