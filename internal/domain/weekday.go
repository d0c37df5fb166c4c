package domain

import "sort"

// Weekday is a day of the week, 0 = Sunday through 6 = Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = map[Weekday]string{
	Sunday:    "週日",
	Monday:    "週一",
	Tuesday:   "週二",
	Wednesday: "週三",
	Thursday:  "週四",
	Friday:    "週五",
	Saturday:  "週六",
}

// IsValid reports whether the value is within 0..6.
func (d Weekday) IsValid() bool {
	return d >= Sunday && d <= Saturday
}

// String returns the display name of the weekday.
func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return "?"
}

// displayKey maps Sunday behind Saturday so that Monday comes first and
// Sunday renders last, matching the week layout shown to members.
func (d Weekday) displayKey() int {
	if d == Sunday {
		return 7
	}
	return int(d)
}

// SortWeekdays returns a de-duplicated copy ordered Monday first, Sunday last.
// This is the single place weekday display ordering is defined.
func SortWeekdays(days []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(days))
	out := make([]Weekday, 0, len(days))
	for _, d := range days {
		if !d.IsValid() || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].displayKey() < out[j].displayKey()
	})
	return out
}

// FormatWeekdays returns the display names of the given weekdays in
// Monday-first, Sunday-last order with duplicates removed.
func FormatWeekdays(days []Weekday) []string {
	sorted := SortWeekdays(days)
	names := make([]string, len(sorted))
	for i, d := range sorted {
		names[i] = d.String()
	}
	return names
}
