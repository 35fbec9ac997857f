package usecase

import "github.com/shopspring/decimal"

// TaxRate se guarda como fracción (0.19 = 19%); nunca mayor que 1.
var decimalOne = decimal.NewFromInt(1)
