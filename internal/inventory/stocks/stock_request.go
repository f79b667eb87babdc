package stocks

import "github.com/shopspring/decimal"

type restockRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
