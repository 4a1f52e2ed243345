package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestArgon2HashRoundtrip(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := argon2.IDKey([]byte("hunter2hunter2"), salt, 1, 64*1024, 4, 32)

	encoded := EncodeArgon2Hash(64*1024, 1, 4, salt, hash)

	parts, err := DecodeArgon2Hash(encoded)
	require.NoError(t, err)

	assert.Equal(t, uint32(64*1024), parts.Memory)
	assert.Equal(t, uint32(1), parts.Time)
	assert.Equal(t, uint8(4), parts.Threads)
	assert.Equal(t, uint32(32), parts.KeyLen)
	assert.Equal(t, salt, parts.Salt)
	assert.Equal(t, hash, parts.Hash)

	// Re-deriving with the decoded parameters must reproduce the hash
	rederived := argon2.IDKey([]byte("hunter2hunter2"), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)
	assert.True(t, SecureCompare(parts.Hash, rederived))

	wrong := argon2.IDKey([]byte("wrong-password"), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)
	assert.False(t, SecureCompare(parts.Hash, wrong))
}

func TestDecodeArgon2HashRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",            // wrong variant
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$aGFzaA",           // wrong version
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA",                  // missing hash part
		"$argon2id$v=19$m=65536,t=1,p=4$!!invalid-base64!$aGFzaA", // bad salt encoding
	}

	for _, encoded := range cases {
		_, err := DecodeArgon2Hash(encoded)
		assert.Error(t, err, "input %q", encoded)
	}
}
