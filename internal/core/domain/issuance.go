package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShareIssuance records shares issued to a shareholder. Immutable once created.
type ShareIssuance struct {
	ID             int64           `json:"id"`
	ShareholderID  int64           `json:"shareholder_id"`
	NumberOfShares int64           `json:"number_of_shares"`
	Price          decimal.Decimal `json:"price"`
	Date           time.Time       `json:"date"`
}
