package credential

import (
	"net/url"
	"strings"
)

// Validator checks whether a credential value is well-formed or usable.
type Validator interface {
	IsValid(value string) bool
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(value string) bool

func (f ValidatorFunc) IsValid(value string) bool { return f(value) }

// Format validators for the providers the system talks to. These check shape
// only; they make no network calls.
var (
	OpenAIKey Validator = ValidatorFunc(func(v string) bool {
		return strings.HasPrefix(v, "sk-") && len(v) > 20
	})

	AnthropicKey Validator = ValidatorFunc(func(v string) bool {
		return strings.HasPrefix(v, "sk-ant-") && len(v) > 20
	})

	GoogleKey Validator = ValidatorFunc(func(v string) bool {
		return len(v) > 20 && !strings.HasPrefix(v, "sk-")
	})

	HTTPSURL Validator = ValidatorFunc(func(v string) bool {
		u, err := url.Parse(v)
		return err == nil && u.Scheme == "https" && u.Host != ""
	})
)

// DefaultValidators maps the well-known credential names to their format
// validators.
func DefaultValidators() map[string]Validator {
	return map[string]Validator{
		"OPENAI_API_KEY":    OpenAIKey,
		"ANTHROPIC_API_KEY": AnthropicKey,
		"GOOGLE_API_KEY":    GoogleKey,
		"SUPABASE_URL":      HTTPSURL,
	}
}
