package credential

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"github.com/akeshr/autifyme/internal/crypto"
)

// Default file locations, relative to the working directory.
const (
	DefaultCredentialsFile = ".credentials.json"
	DefaultKeyFile         = ".credential_key"
)

const keyPurpose = "credentials"

var ErrCorruptStore = errors.New("credential store is corrupt")

// Options configures Open.
type Options struct {
	CredentialsPath string
	KeyPath         string
	Logger          zerolog.Logger
	Audit           AuditSink
}

// Store is a file-backed credential store. Values are decrypted once at load
// and re-encrypted on every save; each mutation rewrites the full snapshot
// via a temp file and atomic rename.
//
// The store holds no internal lock. Callers issuing mutations from multiple
// goroutines must serialize access themselves.
type Store struct {
	path  string
	key   []byte
	creds map[string]*Credential
	log   zerolog.Logger
	audit AuditSink
}

// Open loads the store from disk, creating the encryption key file if absent.
// A corrupt credential file or a value that fails to decrypt aborts Open; the
// store never starts partially loaded.
func Open(opts Options) (*Store, error) {
	if opts.CredentialsPath == "" {
		opts.CredentialsPath = DefaultCredentialsFile
	}
	if opts.KeyPath == "" {
		opts.KeyPath = DefaultKeyFile
	}

	master, err := crypto.LoadOrCreateMasterKey(opts.KeyPath)
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(master, keyPurpose)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:  opts.CredentialsPath,
		key:   key,
		creds: make(map[string]*Credential),
		log:   opts.Logger,
		audit: opts.Audit,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read credentials %s: %w", s.path, err)
	}

	var raw map[string]*Credential
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrCorruptStore, s.path, err)
	}

	for name, cred := range raw {
		if cred.Encrypted {
			plaintext, err := crypto.DecryptFromBase64(s.key, cred.Value)
			if err != nil {
				return fmt.Errorf("%w: decrypt credential %s: %v", ErrCorruptStore, name, err)
			}
			cred.Value = string(plaintext)
		}
		if cred.ValidationStatus == "" {
			cred.ValidationStatus = StatusUnknown
		}
		s.creds[name] = cred
	}
	return nil
}

func (s *Store) save() error {
	out := make(map[string]Credential, len(s.creds))
	for name, cred := range s.creds {
		c := *cred
		if c.Encrypted {
			ciphertext, err := crypto.EncryptToBase64(s.key, []byte(c.Value))
			if err != nil {
				return fmt.Errorf("encrypt credential %s: %w", name, err)
			}
			c.Value = ciphertext
		}
		out[name] = c
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write credentials %s: %w", s.path, err)
	}
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("restrict credentials %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) record(name, action string) {
	if s.audit != nil {
		s.audit.Record(name, action)
	}
}

// SetOption customizes Set.
type SetOption func(*Credential)

// WithExpiry marks the credential as expiring at t.
func WithExpiry(t time.Time) SetOption {
	return func(c *Credential) { c.ExpiresAt = &t }
}

// WithoutEncryption stores the value in plaintext on disk.
func WithoutEncryption() SetOption {
	return func(c *Credential) { c.Encrypted = false }
}

// Set inserts or overwrites the credential for name and persists the store.
// Duplicate names overwrite silently.
func (s *Store) Set(name, value string, opts ...SetOption) error {
	cred := &Credential{
		Name:             name,
		Value:            value,
		Encrypted:        true,
		CreatedAt:        time.Now(),
		ValidationStatus: StatusUnknown,
	}
	for _, opt := range opts {
		opt(cred)
	}

	s.creds[name] = cred
	if err := s.save(); err != nil {
		return err
	}
	s.log.Info().Str("name", name).Bool("encrypted", cred.Encrypted).Msg("stored credential")
	s.record(name, "store")
	return nil
}

// Get returns the decrypted value for name. An entry whose expiry has passed
// is treated as absent. Names with no stored entry fall back to an
// identically-named environment variable. Absence is never an error.
func (s *Store) Get(name string) (string, bool) {
	cred, ok := s.creds[name]
	if !ok {
		if env, ok := os.LookupEnv(name); ok {
			s.log.Debug().Str("name", name).Msg("credential from environment")
			s.record(name, "read_env")
			return env, true
		}
		return "", false
	}

	if cred.IsExpired(time.Now()) {
		s.log.Warn().Str("name", name).Msg("credential has expired")
		return "", false
	}

	s.record(name, "read")
	return cred.Value, true
}

// Validate runs the validator against the stored value, records the result,
// and persists it. Unknown names return false without touching any state.
func (s *Store) Validate(name string, v Validator) (bool, error) {
	cred, ok := s.creds[name]
	if !ok {
		return false, nil
	}

	valid := v.IsValid(cred.Value)
	now := time.Now()
	cred.LastValidated = &now
	if valid {
		cred.ValidationStatus = StatusValid
	} else {
		cred.ValidationStatus = StatusInvalid
	}
	if err := s.save(); err != nil {
		return valid, err
	}

	s.log.Info().Str("name", name).Bool("valid", valid).Msg("validated credential")
	s.record(name, "validate")
	return valid, nil
}

// ValidateAll applies Validate per entry. Names with no stored credential map
// to false.
func (s *Store) ValidateAll(validators map[string]Validator) (map[string]bool, error) {
	results := make(map[string]bool, len(validators))
	for name, v := range validators {
		valid, err := s.Validate(name, v)
		results[name] = valid
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// List returns non-secret metadata for every stored credential, including
// expired ones.
func (s *Store) List() map[string]Metadata {
	now := time.Now()
	result := make(map[string]Metadata, len(s.creds))
	for name, cred := range s.creds {
		result[name] = Metadata{
			Name:             cred.Name,
			Encrypted:        cred.Encrypted,
			ExpiresAt:        cred.ExpiresAt,
			CreatedAt:        cred.CreatedAt,
			LastValidated:    cred.LastValidated,
			ValidationStatus: cred.ValidationStatus,
			IsExpired:        cred.IsExpired(now),
		}
	}
	return result
}

// Delete removes the credential if present and persists. Reports whether
// anything was removed.
func (s *Store) Delete(name string) (bool, error) {
	if _, ok := s.creds[name]; !ok {
		return false, nil
	}
	delete(s.creds, name)
	if err := s.save(); err != nil {
		return true, err
	}
	s.log.Info().Str("name", name).Msg("deleted credential")
	s.record(name, "delete")
	return true, nil
}

// Rotate replaces the value in place, resets CreatedAt, and clears validation
// state. Returns false when name is absent.
func (s *Store) Rotate(name, newValue string) (bool, error) {
	cred, ok := s.creds[name]
	if !ok {
		return false, nil
	}

	cred.Value = newValue
	cred.CreatedAt = time.Now()
	cred.ValidationStatus = StatusUnknown
	cred.LastValidated = nil
	if err := s.save(); err != nil {
		return true, err
	}

	s.log.Info().Str("name", name).Msg("rotated credential")
	s.record(name, "rotate")
	return true, nil
}

// ExpiringWithin returns copies of credentials whose expiry falls at or
// before now plus the given number of days.
func (s *Store) ExpiringWithin(days int) map[string]Credential {
	cutoff := time.Now().AddDate(0, 0, days)
	expiring := make(map[string]Credential)
	for name, cred := range s.creds {
		if cred.ExpiresAt != nil && !cred.ExpiresAt.After(cutoff) {
			expiring[name] = *cred
		}
	}
	return expiring
}

// Len returns the number of stored credentials, expired entries included.
func (s *Store) Len() int {
	return len(s.creds)
}
