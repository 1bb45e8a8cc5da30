package domain

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/jx"
)

// Product is a catalog entry as served by the remote product API.
type Product struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	// Price is kept as sent: the service mixes numbers and strings.
	Price json.RawMessage `json:"price"`
}

// PriceText is the price as shown on a card. Numbers keep their literal form,
// strings are unquoted and a null or missing price is empty.
func (p Product) PriceText() string {
	raw := bytes.TrimSpace(p.Price)
	if len(raw) == 0 {
		return ""
	}

	d := jx.DecodeBytes(raw)
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return string(raw)
		}

		return s
	case jx.Null:
		return ""
	default:
		return string(raw)
	}
}
