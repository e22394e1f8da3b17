package export

import (
	"fmt"
	"time"
)

// monthNames holds the French month labels used in sheet tab names.
var monthNames = []string{
	"Janvier", "Fevrier", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Aout", "Septembre", "Octobre", "Novembre", "Decembre",
}

// MonthName returns the French label for a 1-based month, or an empty
// string for out-of-range input.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// SheetRangeLabel is the tab name holding one month of data, e.g.
// "Janvier 2026".
func SheetRangeLabel(month, year int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

// Filename builds the download name for one month's export.
func Filename(month, year int) string {
	return fmt.Sprintf("compta_%s_%d", MonthName(month), year)
}

// AvailableMonths lists the selectable months for a year, newest first.
// The current year is clamped to the current month; past years offer all
// twelve.
func AvailableMonths(year int, now time.Time) []int {
	maxMonth := 12
	if year == now.Year() {
		maxMonth = int(now.Month())
	}
	months := make([]int, 0, maxMonth)
	for m := maxMonth; m >= 1; m-- {
		months = append(months, m)
	}
	return months
}

// CanExportFullYear reports whether the full-year export is open: only
// in December of the current year.
func CanExportFullYear(year int, now time.Time) bool {
	return year == now.Year() && now.Month() == time.December
}
