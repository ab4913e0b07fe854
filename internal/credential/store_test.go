package credential

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func tmpStore(t *testing.T) (*Store, Options) {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		CredentialsPath: filepath.Join(dir, ".credentials.json"),
		KeyPath:         filepath.Join(dir, ".credential_key"),
		Logger:          zerolog.Nop(),
	}
	s, err := Open(opts)
	if err != nil {
		t.Fatal(err)
	}
	return s, opts
}

func reopen(t *testing.T, opts Options) *Store {
	t.Helper()
	s, err := Open(opts)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return s
}

func TestSetGet_Roundtrip(t *testing.T) {
	s, _ := tmpStore(t)

	if err := s.Set("OPENAI_API_KEY", "sk-abc123456789012345678901"); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Get("OPENAI_API_KEY")
	if !ok {
		t.Fatal("expected credential to be present")
	}
	if got != "sk-abc123456789012345678901" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestSetGet_Unencrypted(t *testing.T) {
	s, opts := tmpStore(t)

	if err := s.Set("PLAIN_TOKEN", "plain-value", WithoutEncryption()); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Get("PLAIN_TOKEN")
	if !ok || got != "plain-value" {
		t.Fatalf("expected plain-value, got %q (ok=%v)", got, ok)
	}

	// Unencrypted values appear verbatim in the file.
	data, err := os.ReadFile(opts.CredentialsPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "plain-value") {
		t.Fatal("unencrypted value should be stored as plaintext")
	}
}

func TestSet_EncryptedAtRest(t *testing.T) {
	s, opts := tmpStore(t)

	secret := "sk-abc123-super-secret-value"
	if err := s.Set("OPENAI_API_KEY", secret); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(opts.CredentialsPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), secret) {
		t.Fatal("encrypted value must not appear in the credential file")
	}
}

func TestSet_Overwrites(t *testing.T) {
	s, _ := tmpStore(t)

	s.Set("TOKEN", "first")
	if err := s.Set("TOKEN", "second"); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get("TOKEN")
	if got != "second" {
		t.Fatalf("expected overwrite, got %q", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 credential, got %d", s.Len())
	}
}

func TestGet_RestartRoundtrip(t *testing.T) {
	s, opts := tmpStore(t)

	secret := "sk-abc123def456ghi789jkl012"
	if err := s.Set("OPENAI_API_KEY", secret); err != nil {
		t.Fatal(err)
	}

	s2 := reopen(t, opts)
	got, ok := s2.Get("OPENAI_API_KEY")
	if !ok {
		t.Fatal("expected credential after reload")
	}
	if got != secret {
		t.Fatalf("expected %q after reload, got %q", secret, got)
	}
}

func TestGet_EnvFallback(t *testing.T) {
	s, _ := tmpStore(t)

	t.Setenv("SUPABASE_URL", "https://x.supabase.co")

	got, ok := s.Get("SUPABASE_URL")
	if !ok {
		t.Fatal("expected env fallback to hit")
	}
	if got != "https://x.supabase.co" {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestGet_AbsentEverywhere(t *testing.T) {
	s, _ := tmpStore(t)

	got, ok := s.Get("NO_SUCH_CREDENTIAL")
	if ok || got != "" {
		t.Fatalf("expected absence, got %q (ok=%v)", got, ok)
	}
}

func TestGet_Expired(t *testing.T) {
	s, _ := tmpStore(t)

	past := time.Now().Add(-time.Hour)
	if err := s.Set("OLD_TOKEN", "stale", WithExpiry(past)); err != nil {
		t.Fatal(err)
	}

	if _, ok := s.Get("OLD_TOKEN"); ok {
		t.Fatal("expired credential must not be returned")
	}

	// Still listed, flagged as expired.
	meta, ok := s.List()["OLD_TOKEN"]
	if !ok {
		t.Fatal("expired credential should still be listed")
	}
	if !meta.IsExpired {
		t.Fatal("expected is_expired=true")
	}
}

func TestList_NeverIncludesValues(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("TOKEN", "sensitive-value")

	meta := s.List()["TOKEN"]
	if meta.Name != "TOKEN" {
		t.Fatalf("unexpected metadata name %q", meta.Name)
	}
	if meta.ValidationStatus != StatusUnknown {
		t.Fatalf("expected unknown status, got %q", meta.ValidationStatus)
	}
}

func TestDelete(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("TOKEN", "value")

	removed, err := s.Delete("TOKEN")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected delete to report removal")
	}

	if _, ok := s.Get("TOKEN"); ok {
		t.Fatal("deleted credential should be absent")
	}

	removed, err = s.Delete("TOKEN")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("second delete should report nothing removed")
	}
}

func TestDelete_EnvFallbackAfter(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("API_TOKEN", "stored")
	t.Setenv("API_TOKEN", "from-env")

	if _, err := s.Delete("API_TOKEN"); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Get("API_TOKEN")
	if !ok || got != "from-env" {
		t.Fatalf("expected env fallback after delete, got %q (ok=%v)", got, ok)
	}
}

func TestRotate(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("TOKEN", "v1")
	s.Validate("TOKEN", ValidatorFunc(func(string) bool { return true }))

	before := s.List()["TOKEN"].CreatedAt
	time.Sleep(10 * time.Millisecond)

	rotated, err := s.Rotate("TOKEN", "v2")
	if err != nil {
		t.Fatal(err)
	}
	if !rotated {
		t.Fatal("expected rotation to succeed")
	}

	got, _ := s.Get("TOKEN")
	if got != "v2" {
		t.Fatalf("expected v2 after rotation, got %q", got)
	}

	meta := s.List()["TOKEN"]
	if meta.ValidationStatus != StatusUnknown {
		t.Fatalf("rotation should reset validation, got %q", meta.ValidationStatus)
	}
	if meta.LastValidated != nil {
		t.Fatal("rotation should clear last_validated")
	}
	if !meta.CreatedAt.After(before) {
		t.Fatal("rotation should update created_at")
	}
}

func TestRotate_Absent(t *testing.T) {
	s, _ := tmpStore(t)
	rotated, err := s.Rotate("MISSING", "value")
	if err != nil {
		t.Fatal(err)
	}
	if rotated {
		t.Fatal("rotating an absent credential should return false")
	}
}

func TestValidate(t *testing.T) {
	s, opts := tmpStore(t)
	s.Set("OPENAI_API_KEY", "sk-abc123456789012345678901")

	valid, err := s.Validate("OPENAI_API_KEY", OpenAIKey)
	if err != nil {
		t.Fatal(err)
	}
	if !valid {
		t.Fatal("expected valid key")
	}

	// Status survives a restart.
	s2 := reopen(t, opts)
	meta := s2.List()["OPENAI_API_KEY"]
	if meta.ValidationStatus != StatusValid {
		t.Fatalf("expected persisted valid status, got %q", meta.ValidationStatus)
	}
	if meta.LastValidated == nil {
		t.Fatal("expected last_validated to be set")
	}
}

func TestValidate_Invalid(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("OPENAI_API_KEY", "not-an-openai-key")

	valid, err := s.Validate("OPENAI_API_KEY", OpenAIKey)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Fatal("expected invalid key")
	}
	if got := s.List()["OPENAI_API_KEY"].ValidationStatus; got != StatusInvalid {
		t.Fatalf("expected invalid status, got %q", got)
	}
}

func TestValidate_Unknown(t *testing.T) {
	s, _ := tmpStore(t)
	valid, err := s.Validate("MISSING", OpenAIKey)
	if err != nil {
		t.Fatal(err)
	}
	if valid {
		t.Fatal("validating an unknown name should return false")
	}
}

func TestValidateAll(t *testing.T) {
	s, _ := tmpStore(t)
	s.Set("OPENAI_API_KEY", "sk-abc123456789012345678901")
	s.Set("ANTHROPIC_API_KEY", "wrong-format")

	results, err := s.ValidateAll(map[string]Validator{
		"OPENAI_API_KEY":    OpenAIKey,
		"ANTHROPIC_API_KEY": AnthropicKey,
		"MISSING_KEY":       OpenAIKey,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !results["OPENAI_API_KEY"] {
		t.Fatal("expected OPENAI_API_KEY valid")
	}
	if results["ANTHROPIC_API_KEY"] {
		t.Fatal("expected ANTHROPIC_API_KEY invalid")
	}
	if results["MISSING_KEY"] {
		t.Fatal("expected unknown name to map to false")
	}
}

func TestExpiringWithin(t *testing.T) {
	s, _ := tmpStore(t)

	soon := time.Now().AddDate(0, 0, 3)
	later := time.Now().AddDate(0, 0, 30)
	s.Set("SOON", "a", WithExpiry(soon))
	s.Set("LATER", "b", WithExpiry(later))
	s.Set("NEVER", "c")

	expiring := s.ExpiringWithin(7)
	if _, ok := expiring["SOON"]; !ok {
		t.Fatal("expected SOON in expiring set")
	}
	if _, ok := expiring["LATER"]; ok {
		t.Fatal("LATER should not be in expiring set")
	}
	if _, ok := expiring["NEVER"]; ok {
		t.Fatal("credentials without expiry should not be in expiring set")
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CredentialsPath: filepath.Join(dir, ".credentials.json"),
		KeyPath:         filepath.Join(dir, ".credential_key"),
		Logger:          zerolog.Nop(),
	}
	if err := os.WriteFile(opts.CredentialsPath, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(opts); err == nil {
		t.Fatal("expected error for corrupt credential file")
	}
}

func TestOpen_WrongKey(t *testing.T) {
	s, opts := tmpStore(t)
	if err := s.Set("TOKEN", "secret"); err != nil {
		t.Fatal(err)
	}

	// Replace the key file so stored ciphertext can no longer be decrypted.
	if err := os.Remove(opts.KeyPath); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(opts); err == nil {
		t.Fatal("expected decryption failure with a fresh key")
	}
}

func TestSave_RestrictsPermissions(t *testing.T) {
	s, opts := tmpStore(t)
	if err := s.Set("TOKEN", "value"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(opts.CredentialsPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
}

type recordingSink struct {
	events []string
}

func (r *recordingSink) Record(name, action string) {
	r.events = append(r.events, name+":"+action)
}

func TestAuditSink(t *testing.T) {
	dir := t.TempDir()
	sink := &recordingSink{}
	s, err := Open(Options{
		CredentialsPath: filepath.Join(dir, ".credentials.json"),
		KeyPath:         filepath.Join(dir, ".credential_key"),
		Logger:          zerolog.Nop(),
		Audit:           sink,
	})
	if err != nil {
		t.Fatal(err)
	}

	s.Set("TOKEN", "value")
	s.Get("TOKEN")
	s.Rotate("TOKEN", "value2")
	s.Delete("TOKEN")

	want := []string{"TOKEN:store", "TOKEN:read", "TOKEN:rotate", "TOKEN:delete"}
	if len(sink.events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), sink.events)
	}
	for i, ev := range want {
		if sink.events[i] != ev {
			t.Fatalf("event %d: expected %s, got %s", i, ev, sink.events[i])
		}
	}
}
