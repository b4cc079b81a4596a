package model

import "time"

// Client is a portal client whose statements are stored.
type Client struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RollupSnapshot is a stored default-mode rollup for one client and scope.
type RollupSnapshot struct {
	ID           string    `json:"id"`
	ClientID     int       `json:"client_id"`
	Scope        Scope     `json:"scope"`
	MonthDate    *string   `json:"month_date"`
	GrandTotal   float64   `json:"grand_total"`
	Payload      string    `json:"-"` // JSON-encoded RollupResult
	CalculatedAt time.Time `json:"calculated_at"`
}
