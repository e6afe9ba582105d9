// Package warehouse holds stock-keeping destination types.
package warehouse

import (
	"time"
)

// Location identifies a bin in a warehouse.
type Location struct {
	Site string `rowmap:"site"`
	Bin  string `rowmap:"bin"`
}

// Stock is the quantity of one SKU held at a location.
type Stock struct {
	Location
	SKU       string `rowmap:"sku"`
	Quantity  int
	Reserved  int `rowmap:",suppress"`
	CountedAt *time.Time
}
