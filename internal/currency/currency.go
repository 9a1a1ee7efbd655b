package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders integer minor-currency amounts as display strings.
// Display localisation beyond symbol and decimal placement is a caller
// concern.
type Formatter interface {
	Format(amount int64, currencyCode string) string
}

// zeroDecimal lists ISO currencies whose minor unit equals the major
// unit, so amounts are never divided by 100.
var zeroDecimal = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true, "IDR": true,
	"JPY": true, "KMF": true, "KRW": true, "MGA": true, "PYG": true,
	"RWF": true, "UGX": true, "VND": true, "VUV": true, "XAF": true,
	"XOF": true, "XPF": true,
}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
}

type formatter struct{}

func NewFormatter() Formatter {
	return formatter{}
}

// ToMajor converts minor units to a major-unit decimal, honouring
// zero-decimal currencies.
func ToMajor(amount int64, currencyCode string) decimal.Decimal {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	value := decimal.NewFromInt(amount)
	if zeroDecimal[code] {
		return value
	}
	return value.Div(decimal.NewFromInt(100))
}

func (formatter) Format(amount int64, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	major := ToMajor(amount, code)

	places := int32(2)
	if zeroDecimal[code] {
		places = 0
	}

	symbol, ok := symbols[code]
	if !ok {
		return code + " " + major.StringFixed(places)
	}
	return symbol + major.StringFixed(places)
}
