package enums

import "fmt"

// Provider identifies where an account's credentials originate.
type Provider string

const (
	ProviderSelf   Provider = "SELF"
	ProviderGoogle Provider = "GOOGLE"
)

func (p Provider) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Provider.
func (p Provider) IsValid() bool {
	_, err := ParseProvider(string(p))
	return err == nil
}

// ParseProvider converts raw input into a Provider.
func ParseProvider(value string) (Provider, error) {
	switch Provider(value) {
	case ProviderSelf, ProviderGoogle:
		return Provider(value), nil
	}
	return "", fmt.Errorf("invalid provider %q", value)
}
