package valueobjects

import (
	"encoding/json"
	"strings"

	"github.com/davicafu/sharedkernel/shared/domain"
)

type Address struct {
	Street  string  `json:"street"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	ZipCode *string `json:"zipCode,omitempty"`
}

func NewAddress(street, city, country string, zipCode *string) (Address, error) {
	a := Address{Street: street, City: city, Country: country, ZipCode: zipCode}
	if err := a.validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

func (a Address) validate() error {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return domain.InvalidArgument("Address street cannot be blank")
	case strings.TrimSpace(a.City) == "":
		return domain.InvalidArgument("Address city cannot be blank")
	case strings.TrimSpace(a.Country) == "":
		return domain.InvalidArgument("Address country cannot be blank")
	}
	return nil
}

func (a *Address) UnmarshalJSON(b []byte) error {
	type raw Address
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	parsed := Address(r)
	if err := parsed.validate(); err != nil {
		return err
	}
	*a = parsed
	return nil
}
