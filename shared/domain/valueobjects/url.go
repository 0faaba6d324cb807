package valueobjects

import (
	"net/url"
	"strings"

	"github.com/davicafu/sharedkernel/shared/domain"
)

// URL es una URL absoluta (con esquema y host).
type URL struct {
	value string
}

func NewURL(value string) (URL, error) {
	if strings.TrimSpace(value) == "" {
		return URL{}, domain.InvalidArgument("URL cannot be blank.")
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return URL{}, domain.InvalidArgument("Invalid URL format.")
	}
	return URL{value: value}, nil
}

func (u URL) String() string { return u.value }

func (u URL) MarshalText() ([]byte, error) { return []byte(u.value), nil }

func (u *URL) UnmarshalText(b []byte) error {
	parsed, err := NewURL(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
