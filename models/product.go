package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductCatalogEntry is an immutable snapshot of one product (a "service"
// on the wire) from the directory provider.
type ProductCatalogEntry struct {
	ID        int
	Name      string
	UnitPrice decimal.Decimal
}

// UnmarshalJSON flattens the GET /services item shape {id, title, price:{amount}}.
func (p *ProductCatalogEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Price struct {
			Amount decimal.Decimal `json:"amount"`
		} `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Name = raw.Title
	p.UnitPrice = raw.Price.Amount
	return nil
}
