package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	keyLen       = 32 // 256-bit
	masterKeyLen = 32
)

// LoadOrCreateMasterKey reads the hex-encoded master key from path, creating
// it with fresh random bytes and 0600 permissions if it does not exist.
func LoadOrCreateMasterKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		key, decErr := hex.DecodeString(strings.TrimSpace(string(data)))
		if decErr != nil {
			return nil, fmt.Errorf("decode master key %s: %w", path, decErr)
		}
		if len(key) != masterKeyLen {
			return nil, fmt.Errorf("master key %s: expected %d bytes, got %d", path, masterKeyLen, len(key))
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read master key %s: %w", path, err)
	}

	key := make([]byte, masterKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	if err := os.WriteFile(path, []byte(hex.EncodeToString(key)+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("write master key %s: %w", path, err)
	}
	return key, nil
}

// DeriveKey derives a 256-bit encryption key from the master key for a named
// purpose. Uses HKDF-SHA256 with the purpose as info.
func DeriveKey(master []byte, purpose string) ([]byte, error) {
	r := hkdf.New(sha256.New, master, nil, []byte(purpose))
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving key for %s: %w", purpose, err)
	}
	return key, nil
}
