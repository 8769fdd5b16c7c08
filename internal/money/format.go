// Package money renders ledger amounts for people to read.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "USD"

var printer = message.NewPrinter(language.AmericanEnglish)

// Format renders amount with grouping and two fraction digits behind an ISO
// currency code, e.g. "USD 5,500.00". Unknown codes fall back to USD.
// Digits are taken from the decimal itself, so large amounts stay exact.
func Format(amount decimal.Decimal, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.USD
	}

	rounded := amount.Round(2)
	whole, fraction, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return unit.String() + " " + sign + group(whole) + "." + fraction
}

// group inserts thousands separators into a string of digits.
func group(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return printer.Sprint(number.Decimal(n))
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Percent renders a rate such as 0.03 as "3.00%".
func Percent(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(2) + "%"
}
