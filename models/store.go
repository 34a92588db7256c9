package models

import (
	"github.com/shopspring/decimal"
)

// Credential is one key/value row of the persisted session store.
type Credential struct {
	Key   string `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// CachedClient is the local snapshot of one directory client, replaced
// wholesale on every successful fetch.
type CachedClient struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

// CachedProduct is the local snapshot of one catalog product.
type CachedProduct struct {
	ID        int             `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
}
