package store

import (
	"time"

	"github.com/uptrace/bun"
)

// Chinook table mappings. Track/Genre/Customer are externally managed and
// read-only here; Invoice/InvoiceLine are created by CreateOrder and never
// mutated afterwards.

type Genre struct {
	bun.BaseModel `bun:"table:Genre,alias:g"`

	GenreID int64  `bun:"GenreId,pk,autoincrement"`
	Name    string `bun:"Name"`
}

type Track struct {
	bun.BaseModel `bun:"table:Track,alias:t"`

	TrackID int64  `bun:"TrackId,pk,autoincrement"`
	Name    string `bun:"Name,notnull"`
	GenreID int64  `bun:"GenreId"`
}

type Customer struct {
	bun.BaseModel `bun:"table:Customer,alias:c"`

	CustomerID int64  `bun:"CustomerId,pk,autoincrement"`
	FirstName  string `bun:"FirstName"`
	LastName   string `bun:"LastName"`
}

type Invoice struct {
	bun.BaseModel `bun:"table:Invoice,alias:i"`

	InvoiceID   int64     `bun:"InvoiceId,pk,autoincrement"`
	CustomerID  int64     `bun:"CustomerId,notnull"`
	InvoiceDate time.Time `bun:"InvoiceDate,notnull"`
	Total       float64   `bun:"Total"`
}

type InvoiceLine struct {
	bun.BaseModel `bun:"table:InvoiceLine,alias:il"`

	InvoiceLineID int64   `bun:"InvoiceLineId,pk,autoincrement"`
	InvoiceID     int64   `bun:"InvoiceId,notnull"`
	TrackID       int64   `bun:"TrackId,notnull"`
	UnitPrice     float64 `bun:"UnitPrice,notnull"`
	Quantity      int64   `bun:"Quantity,notnull"`
}
