// Package credential implements the encrypted credential store: named secrets
// with optional expiry and validation state, persisted as a JSON snapshot with
// values encrypted at rest.
package credential

import "time"

// Validation status values recorded by Validate.
const (
	StatusUnknown = "unknown"
	StatusValid   = "valid"
	StatusInvalid = "invalid"
)

// Credential is one named secret. Value is held decrypted in memory; on disk
// it is ciphertext whenever Encrypted is set.
type Credential struct {
	Name             string     `json:"name"`
	Value            string     `json:"value"`
	Encrypted        bool       `json:"encrypted"`
	ExpiresAt        *time.Time `json:"expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
	LastValidated    *time.Time `json:"last_validated"`
	ValidationStatus string     `json:"validation_status"`
}

// IsExpired reports whether the credential's expiry, if any, has passed.
func (c *Credential) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Metadata is the non-secret view of a credential returned by List.
type Metadata struct {
	Name             string     `json:"name"`
	Encrypted        bool       `json:"encrypted"`
	ExpiresAt        *time.Time `json:"expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
	LastValidated    *time.Time `json:"last_validated"`
	ValidationStatus string     `json:"validation_status"`
	IsExpired        bool       `json:"is_expired"`
}

// AuditSink receives access events from the store. Implementations must not
// be handed secret values; the store only reports names and actions.
type AuditSink interface {
	Record(name, action string)
}
