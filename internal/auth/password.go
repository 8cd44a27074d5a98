// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth hashes and verifies admin passwords with argon2id.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are the argon2id cost settings encoded into every hash.
type Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams follow the OWASP second recommendation (m=19456, t=2, p=1).
var DefaultParams = Params{
	Memory:  19 * 1024,
	Time:    2,
	Threads: 1,
	KeyLen:  32,
	SaltLen: 16,
}

// ErrInvalidHash is returned for stored hashes that cannot be parsed.
var ErrInvalidHash = errors.New("invalid password hash")

type decodedHash struct {
	params Params
	salt   []byte
	key    []byte
}

// HashPassword returns "$argon2id$v=19$m=..,t=..,p=..$<salt>$<key>" for a
// fresh random salt.
func HashPassword(password string) (string, error) {
	p := DefaultParams
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// CheckPassword recomputes the hash of password with the stored salt and
// parameters and compares in constant time.
func CheckPassword(password, encodedHash string) (bool, error) {
	d, err := decode(encodedHash)
	if err != nil {
		return false, err
	}

	key := argon2.IDKey([]byte(password), d.salt, d.params.Time, d.params.Memory, d.params.Threads, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(key, d.key) == 1, nil
}

// NeedsRehash reports whether encodedHash was produced with parameters other
// than DefaultParams.
func NeedsRehash(encodedHash string) bool {
	d, err := decode(encodedHash)
	if err != nil {
		return true
	}
	p := d.params
	return p.Memory != DefaultParams.Memory || p.Time != DefaultParams.Time || p.Threads != DefaultParams.Threads
}

// dummyHash is verified against when a login names an unknown user so the
// response time does not reveal which usernames exist.
var dummyHash, _ = HashPassword("speakercms-timing-equalizer")

// EqualizeTiming performs one throwaway verification.
func EqualizeTiming(password string) {
	_, _ = CheckPassword(password, dummyHash)
}

func decode(encodedHash string) (decodedHash, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decodedHash{}, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return decodedHash{}, fmt.Errorf("%w: unsupported type %q", ErrInvalidHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return decodedHash{}, fmt.Errorf("%w: version: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return decodedHash{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidHash, version)
	}

	var d decodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.params.Memory, &d.params.Time, &d.params.Threads); err != nil {
		return decodedHash{}, fmt.Errorf("%w: parameters: %v", ErrInvalidHash, err)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}
	if len(d.key) == 0 {
		return decodedHash{}, ErrInvalidHash
	}
	return d, nil
}
