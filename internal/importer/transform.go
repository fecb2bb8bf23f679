package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cell transforms are total functions: whatever garbage a hand-edited
// spreadsheet throws at them, they return a safe default (0, nil or "")
// instead of failing, so one bad cell never aborts an import batch.

// excelEpoch is the zero point of Excel serial dates (1900 date system).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	plainNumberRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	brNumberRe    = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+,\d{1,2}$`)
	usNumberRe    = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+\.\d{1,2}$`)
	digitsOnlyRe  = regexp.MustCompile(`^\d+$`)
	isoDateRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	slashDateRe   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
	monthSlashRe  = regexp.MustCompile(`^(\d{1,2})/(\d{2}|\d{4})$`)
	ptMonthRe     = regexp.MustCompile(`^([a-zç]+)[/\- ](\d{2}|\d{4})$`)
	dateTimeRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:[ T](\d{1,2}):(\d{2}))?$`)
	nonDigitRe    = regexp.MustCompile(`\D`)
)

// ptMonths maps Portuguese month names and their three-letter
// abbreviations to month numbers.
var ptMonths = map[string]time.Month{
	"jan": time.January, "janeiro": time.January,
	"fev": time.February, "fevereiro": time.February,
	"mar": time.March, "marco": time.March, "março": time.March,
	"abr": time.April, "abril": time.April,
	"mai": time.May, "maio": time.May,
	"jun": time.June, "junho": time.June,
	"jul": time.July, "julho": time.July,
	"ago": time.August, "agosto": time.August,
	"set": time.September, "setembro": time.September,
	"out": time.October, "outubro": time.October,
	"nov": time.November, "novembro": time.November,
	"dez": time.December, "dezembro": time.December,
}

// ParseNumber converts a cell to float64, disambiguating Brazilian
// ("1.234,56") and US ("1,234.56") separator conventions. Returns 0 when
// the value cannot be read as a number.
func ParseNumber(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseNumberString(v)
	default:
		return parseNumberString(fmt.Sprint(v))
	}
}

func parseNumberString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if plainNumberRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}

	// Strip currency symbols and every kind of space before classifying.
	s = strings.NewReplacer("R$", "", "$", "", " ", "", " ", "").Replace(s)

	switch {
	case brNumberRe.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case usNumberRe.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = resolveAmbiguousSeparators(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// resolveAmbiguousSeparators handles inputs outside the strict BR/US
// patterns: whichever of comma/dot appears last with at most three digits
// after it is taken as the decimal mark; the other is treated as a
// thousands separator. When neither qualifies, all separators are stripped.
func resolveAmbiguousSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	decimal := byte(0)
	switch {
	case lastComma < 0 && lastDot < 0:
		return nonNumericStripped(s)
	case lastComma > lastDot && len(s)-lastComma-1 <= 3:
		decimal = ','
	case lastDot > lastComma && len(s)-lastDot-1 <= 3:
		decimal = '.'
	default:
		return strings.NewReplacer(",", "", ".", "").Replace(s)
	}

	var b strings.Builder
	last := strings.LastIndexByte(s, decimal)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case i == last:
			b.WriteByte('.')
		case c == ',' || c == '.':
			// thousands separator, dropped
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func nonNumericStripped(s string) string {
	var b strings.Builder
	for i, c := range s {
		if (c >= '0' && c <= '9') || (c == '-' && i == 0) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ParseInteger strips everything that is not a digit and parses base-10.
// Returns 0 on empty or unparseable input.
func ParseInteger(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	digits := nonDigitRe.ReplaceAllString(fmt.Sprint(raw), "")
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate converts a cell to an ISO "YYYY-MM-DD" string. Accepts Excel
// serial numbers, ISO dates and D/M/Y or M/D/Y with 2- or 4-digit years.
// Returns nil for anything it cannot read as a date in the years 1900-2100.
func ParseDate(raw any) *string {
	if t := parseDateValue(raw); t != nil {
		s := t.Format("2006-01-02")
		return &s
	}
	return nil
}

func parseDateValue(raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return serialToTime(v)
	case int:
		return serialToTime(float64(v))
	case int64:
		return serialToTime(float64(v))
	case time.Time:
		return validateYear(v)
	case string:
		return parseDateString(v)
	default:
		return parseDateString(fmt.Sprint(v))
	}
}

func serialToTime(serial float64) *time.Time {
	if serial <= 0 {
		return nil
	}
	t := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return validateYear(t)
}

func validateYear(t time.Time) *time.Time {
	if t.Year() < 1900 || t.Year() > 2100 {
		return nil
	}
	return &t
}

func parseDateString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 20 {
		return nil
	}
	// Long digit runs are identifiers (RENAVAM, serials), not dates.
	if digitsOnlyRe.MatchString(s) && len(s) >= 5 {
		return nil
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		t, err := time.Parse("2006-01-02", m[1]+"-"+m[2]+"-"+m[3])
		if err != nil {
			return nil
		}
		return validateYear(t)
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])

		// Default is day/month (Brazilian); flip only when the first
		// component can only be a month position (US-exported sheets).
		day, month := first, second
		if first <= 12 && second > 12 {
			day, month = second, first
		}
		return buildDate(year, month, day)
	}
	return nil
}

func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if len(s) == 2 {
		if y <= 69 {
			y += 2000
		} else {
			y += 1900
		}
	}
	return y
}

func buildDate(year, month, day int) *time.Time {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31/02); reject those.
	if t.Day() != day || t.Month() != time.Month(month) {
		return nil
	}
	return validateYear(t)
}

// ParseMonth converts a cell to the first day of its month ("YYYY-MM-01").
// Besides everything ParseDate accepts, it reads "MM/YYYY" stamps and
// Portuguese month names such as "jan/26" or "janeiro/2026".
func ParseMonth(raw any) *string {
	if s, ok := raw.(string); ok {
		trimmed := strings.ToLower(strings.TrimSpace(s))
		if m := ptMonthRe.FindStringSubmatch(trimmed); m != nil {
			if month, ok := ptMonths[m[1]]; ok {
				year := expandYear(m[2])
				if t := buildDate(year, int(month), 1); t != nil {
					out := t.Format("2006-01-02")
					return &out
				}
			}
			return nil
		}
		if m := monthSlashRe.FindStringSubmatch(trimmed); m != nil {
			month, _ := strconv.Atoi(m[1])
			if t := buildDate(expandYear(m[2]), month, 1); t != nil {
				out := t.Format("2006-01-02")
				return &out
			}
			return nil
		}
	}
	if t := parseDateValue(raw); t != nil {
		out := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		return &out
	}
	return nil
}

// ParseDateTime converts a cell to "YYYY-MM-DDTHH:MM:SS". Accepts Brazilian
// "DD/MM/YYYY HH:MM", fractional Excel serials, and a couple of permissive
// fallback layouts. Returns nil on failure.
func ParseDateTime(raw any) *string {
	format := func(t time.Time) *string {
		s := t.Format("2006-01-02T15:04:05")
		return &s
	}

	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		if t := serialToTime(v); t != nil {
			return format(*t)
		}
		return nil
	case int:
		if t := serialToTime(float64(v)); t != nil {
			return format(*t)
		}
		return nil
	case time.Time:
		if t := validateYear(v); t != nil {
			return format(*t)
		}
		return nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		if m := dateTimeRe.FindStringSubmatch(s); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			hour, minute := 0, 0
			if m[4] != "" {
				hour, _ = strconv.Atoi(m[4])
				minute, _ = strconv.Atoi(m[5])
			}
			if t := buildDate(year, month, day); t != nil && hour < 24 && minute < 60 {
				return format(t.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute))
			}
			return nil
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				if vt := validateYear(t); vt != nil {
					return format(*vt)
				}
				return nil
			}
		}
		return nil
	default:
		return nil
	}
}

// ParseString trims a cell, returning "" for nil or non-string garbage.
func ParseString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
