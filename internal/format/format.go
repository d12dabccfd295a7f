// Package format renders game values for players.
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"datathieves/internal/domain"
)

var suffixes = []string{"", "K", "M", "B", "T", "Qa", "Qi"}

var printer = message.NewPrinter(language.English)

// HumanReadable shortens an amount with a magnitude suffix, e.g. 1234 -> 1.23K.
// Values below one thousand are printed as-is.
func HumanReadable(g domain.Gelds) string {
	if g < 1000 {
		return printer.Sprint(number.Decimal(uint64(g)))
	}

	v := float64(g)
	i := 0
	for v >= 1000 && i < len(suffixes)-1 {
		v /= 1000
		i++
	}
	// 999.999K rounds up to 1000K; promote it to the next suffix instead.
	if v >= 999.995 && i < len(suffixes)-1 {
		v /= 1000
		i++
	}

	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2), number.NoSeparator())) + suffixes[i]
}

// Seconds returns the whole seconds in d.
func Seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
