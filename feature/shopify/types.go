package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"bulk-ingest/core/utils"
)

// Scalar holds a GraphQL scalar that exporters emit either as a JSON string
// or as a bare number (Decimal, Money amounts, UnsignedInt64).
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*s = Scalar(data)
	default:
		return fmt.Errorf("unsupported scalar %s", data)
	}
	return nil
}

// Float returns the scalar as a number, or nil when it is empty or not numeric.
func (s Scalar) Float() *float64 {
	f, ok := utils.ToFloat(string(s))
	if !ok {
		return nil
	}
	return utils.Ptr(f)
}

// Money is an amount in one currency.
type Money struct {
	Amount       Scalar  `json:"amount"`
	CurrencyCode *string `json:"currencyCode"`
}

// MoneyBag is an amount in shop and presentment currencies.
type MoneyBag struct {
	ShopMoney        *Money `json:"shopMoney"`
	PresentmentMoney *Money `json:"presentmentMoney"`
}

// ShopAmount returns the first shop currency amount present in bags.
func ShopAmount(bags ...*MoneyBag) *float64 {
	for _, b := range bags {
		if b == nil || b.ShopMoney == nil {
			continue
		}
		if f := b.ShopMoney.Amount.Float(); f != nil {
			return f
		}
	}
	return nil
}

// Tags accepts the tag list as an array or as a comma separated string.
type Tags struct {
	text *string
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		t.text = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		joined := strings.Join(list, ", ")
		t.text = &joined
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Anything else is not a tag list
		t.text = nil
		return nil
	}
	t.text = &s
	return nil
}

// Text returns the tags joined by ", ", or nil when absent.
func (t Tags) Text() *string {
	return t.text
}

// Address is a MailingAddress.
type Address struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Company       *string `json:"company"`
	Address1      *string `json:"address1"`
	Address2      *string `json:"address2"`
	City          *string `json:"city"`
	Province      *string `json:"province"`
	ProvinceCode  *string `json:"provinceCode"`
	Zip           *string `json:"zip"`
	Country       *string `json:"country"`
	CountryCode   *string `json:"countryCode"`
	CountryCodeV2 *string `json:"countryCodeV2"`
	Phone         *string `json:"phone"`
}

// CountryISO prefers countryCodeV2 over the deprecated countryCode.
func (a *Address) CountryISO() *string {
	if a == nil {
		return nil
	}
	return utils.Coalesce(a.CountryCodeV2, a.CountryCode)
}

// MarketingConsent is the email or SMS marketing consent of a customer.
type MarketingConsent struct {
	MarketingState      *string `json:"marketingState"`
	MarketingOptInLevel *string `json:"marketingOptInLevel"`
	ConsentUpdatedAt    *string `json:"consentUpdatedAt"`
}

// Ref is an object reference such as {"id": "gid://shopify/Customer/1"}.
type Ref struct {
	ID string `json:"id"`
}
