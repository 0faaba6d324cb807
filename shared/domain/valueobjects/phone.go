package valueobjects

import (
	"regexp"
	"strings"

	"github.com/davicafu/sharedkernel/shared/domain"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type Phone struct {
	value string
}

func NewPhone(value string) (Phone, error) {
	if strings.TrimSpace(value) == "" {
		return Phone{}, domain.InvalidArgument("Phone cannot be blank")
	}
	if !phoneRegex.MatchString(value) {
		return Phone{}, domain.InvalidArgument("Invalid phone number format")
	}
	return Phone{value: value}, nil
}

func (p Phone) String() string { return p.value }

func (p Phone) MarshalText() ([]byte, error) { return []byte(p.value), nil }

func (p *Phone) UnmarshalText(b []byte) error {
	parsed, err := NewPhone(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
