package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyPrefix is how the Kenyan shilling is displayed in en-KE.
const CurrencyPrefix = "Ksh"

var printer = message.NewPrinter(language.English)

// Amount renders a backend decimal as a Kenyan shilling amount with two
// decimals and thousands grouping. Backend amounts arrive as strings.
// Unparseable input renders as zero.
func Amount[T ~string | ~float64 | ~int | ~int64](amount T) string {
	var value float64
	switch v := any(amount).(type) {
	case string:
		value, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	default:
		value, _ = strconv.ParseFloat(fmt.Sprint(amount), 64)
	}
	if value < 0 {
		return "-" + CurrencyPrefix + " " + printer.Sprintf("%.2f", -value)
	}
	return CurrencyPrefix + " " + printer.Sprintf("%.2f", value)
}

// FileSize renders attachment sizes such as "1.2 MB".
func FileSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
