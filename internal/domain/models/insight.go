package models

import "github.com/shopspring/decimal"

// SlipReading is the best-effort parse of a handwritten milk collection slip.
// Unrecoverable fields are zero.
type SlipReading struct {
	Qty  decimal.Decimal `json:"qty"`
	Fat  decimal.Decimal `json:"fat"`
	SNF  decimal.Decimal `json:"snf"`
	Rate decimal.Decimal `json:"rate"`
}

// SyncResult reports what a sync run achieved. Notices are non-fatal.
type SyncResult struct {
	BackedUp   bool     `json:"backedUp"`
	Exported   bool     `json:"exported"`
	Insight    string   `json:"insight,omitempty"`
	LastSynced string   `json:"lastSynced"`
	Notices    []string `json:"notices,omitempty"`
}
