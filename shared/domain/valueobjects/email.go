// Package valueobjects agrupa value objects simples de un solo campo.
// Todos validan en construcción y al deserializarse.
package valueobjects

import (
	"regexp"
	"strings"

	"github.com/davicafu/sharedkernel/shared/domain"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if strings.TrimSpace(value) == "" {
		return Email{}, domain.InvalidArgument("Email cannot be blank")
	}
	if !emailRegex.MatchString(value) {
		return Email{}, domain.InvalidArgument("Invalid email format")
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }

func (e Email) MarshalText() ([]byte, error) { return []byte(e.value), nil }

func (e *Email) UnmarshalText(b []byte) error {
	parsed, err := NewEmail(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
