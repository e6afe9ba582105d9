// Package store holds the destination types of the shop database.
package store

import (
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	"rowmapper/warehouse"
)

// Entity carries the columns every stored record has.
type Entity struct {
	ID        int64     `rowmap:"id"`
	CreatedAt time.Time `rowmap:"created_at"`
}

// Product is an item available for sale. Prices are in cents.
type Product struct {
	Entity
	SKU         string `rowmap:"sku"`
	Name        string
	Description *string
	PriceCents  int64
	Inventory   int      `rowmap:"inventory_count"`
	Tags        []string `rowmap:"tags"`
}

// Customer is the person placing orders.
//
//rowmap:generate
type Customer struct {
	Entity
	Email      string
	FullName   string
	Address    *string
	IsActive   bool
	BirthDate  civil.Date
	ExternalID uuid.UUID `rowmap:"external_id,convert=string-to-uuid"`
	Session    string    `rowmap:"-"`
	score      int
}

// Score is the internal loyalty score.
func (c *Customer) Score() int { return c.score }

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Order is a purchase made by a customer. Its own ID is the public order
// number. CreatedAt is the shop-local order time and shadows the entity
// instant.
//
//rowmap:suppress
type Order struct {
	*Entity
	ID         string      `rowmap:"order_number"`
	CustomerID int64       `rowmap:"customer_id"`
	Status     OrderStatus `rowmap:",suppress"`
	TotalCents int64
	CreatedAt  civil.DateTime
}

// Shipment sends an order from a warehouse location.
//
//rowmap:generate
type Shipment struct {
	Entity
	warehouse.Location
	OrderID string `rowmap:"order_id"`
	Carrier string
}

// Note is not mapped: it has neither a directive nor rowmap tags.
type Note struct {
	Text string
}
