package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Hashes are self-describing (PHC format), so these
// can be raised later without invalidating stored hashes.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024 // KiB
	argonThreads uint8  = 4
	saltLength          = 16
	keyLength    uint32 = 32
)

// HashPassword hashes a plaintext password with argon2id and encodes the
// result in PHC string format.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks a plaintext password against a stored PHC-encoded
// argon2id hash. A malformed hash and a wrong password produce the same
// ErrInvalidCredentials, so callers cannot tell the cases apart. The
// plaintext password is never logged or echoed back in the error.
func VerifyPassword(storedHash, password string) error {
	memory, time, threads, salt, hash, err := parsePHC(storedHash)
	if err != nil {
		return ErrInvalidCredentials
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))

	if subtle.ConstantTimeCompare(computed, hash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// parsePHC splits a "$argon2id$v=19$m=...,t=...,p=...$salt$hash" string.
func parsePHC(encoded string) (memory, time uint32, threads uint8, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported hash format")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid hash version: %w", err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var parallelism uint32
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid hash parameters: %w", err)
	}
	if parallelism == 0 || parallelism > 255 || time == 0 || memory == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("hash parameters out of range")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(hash) == 0 {
		return 0, 0, 0, nil, nil, fmt.Errorf("empty hash")
	}

	return memory, time, uint8(parallelism), salt, hash, nil
}
