package analytics

import (
	"bytes"
	"encoding/json"
)

// RawValue holds a field that upstream producers deliver as a JSON
// string, number, or null. It keeps the textual form only; coercion to
// a numeric type happens in ToNumber, the single chokepoint for
// untrusted values.
type RawValue string

// UnmarshalJSON accepts string, number, null, or any other token.
// Non-string tokens are kept as their raw text so that malformed values
// degrade in ToNumber instead of failing the whole batch decode.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = RawValue(s)
		return nil
	}
	*v = RawValue(data)
	return nil
}

// MarshalJSON writes the value back as a plain string.
func (v RawValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v RawValue) String() string { return string(v) }

// RawSale is the untrusted wire shape of one sale line as delivered by
// the sales listing producer. Every field is optional and loosely
// typed; only Normalize ever reads this shape.
type RawSale struct {
	ID              RawValue `json:"id,omitempty"`
	SaleID          RawValue `json:"saleId,omitempty"`
	TransactionID   string   `json:"transactionId,omitempty"`
	Name            string   `json:"name,omitempty"`
	PhoneNumber     string   `json:"phoneNumber,omitempty"`
	Date            string   `json:"date,omitempty"`
	Category        string   `json:"category,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Model           string   `json:"model,omitempty"`
	Quantity        RawValue `json:"quantity,omitempty"`
	SellPrice       RawValue `json:"sellPrice,omitempty"`
	DiscountedPrice RawValue `json:"discountedPrice,omitempty"`
	BuyPrice        RawValue `json:"buyPrice,omitempty"`
}
