package models

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const isoDate = "2006-01-02"

// ParseDOB parses an ISO date of birth, tolerating a full RFC 3339 timestamp
func ParseDOB(dob string) (time.Time, bool) {
	if dob == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(isoDate, dob); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, dob); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// AgeAt computes a person's age in whole years at the given moment.
// An empty or unparseable DOB yields 0.
func AgeAt(dob string, now time.Time) int {
	birth, ok := ParseDOB(dob)
	if !ok {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// GradeAt maps a date of birth to the household's school-grade label
func GradeAt(dob string, now time.Time) string {
	age := AgeAt(dob, now)
	switch {
	case age < 3:
		return "Toddler"
	case age < 5:
		return "Preschool"
	case age < 11:
		return fmt.Sprintf("Class %d", age-5)
	case age < 18:
		return fmt.Sprintf("Class %d (Secondary)", age-5)
	default:
		return "Graduate"
	}
}

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency renders a value as whole-rupee INR with Indian digit grouping
func FormatCurrency(val float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(val, number.MaxFractionDigits(0)))
}
