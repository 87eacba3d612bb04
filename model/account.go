package model

import "github.com/shopspring/decimal"

type Account struct {
	Number  int             `json:"account_number"`
	PIN     int             `json:"-"`
	Balance decimal.Decimal `json:"balance"`
}
