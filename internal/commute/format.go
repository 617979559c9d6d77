package commute

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across platforms.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatTrees formats a tree count with thousand separators.
// Example: FormatTrees(1840) returns "1,840".
func FormatTrees(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatKg formats an emissions value in kilograms with two decimal places.
// Example: FormatKg(2.5) returns "2.50".
func FormatKg(kg float64) string {
	return fmt.Sprintf("%.*f", emissionsPrecision, kg)
}

// FormatAnnualKg formats annualized emissions with thousand separators and
// two decimal places. Example: FormatAnnualKg(1150) returns "1,150.00".
func FormatAnnualKg(kg float64) string {
	return printer.Sprintf("%.2f", kg)
}
