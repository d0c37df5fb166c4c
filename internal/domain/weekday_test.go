package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortWeekdays(t *testing.T) {
	t.Run("sunday sorts last", func(t *testing.T) {
		got := SortWeekdays([]Weekday{Sunday, Wednesday, Monday})
		assert.Equal(t, []Weekday{Monday, Wednesday, Sunday}, got)
	})

	t.Run("duplicates removed", func(t *testing.T) {
		got := SortWeekdays([]Weekday{Friday, Friday, Monday, Monday})
		assert.Equal(t, []Weekday{Monday, Friday}, got)
	})

	t.Run("invalid values dropped", func(t *testing.T) {
		got := SortWeekdays([]Weekday{7, -1, Tuesday})
		assert.Equal(t, []Weekday{Tuesday}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SortWeekdays(nil))
	})
}

func TestFormatWeekdays(t *testing.T) {
	got := FormatWeekdays([]Weekday{Sunday, Wednesday, Monday})
	assert.Equal(t, []string{"週一", "週三", "週日"}, got)
}

func TestWeekday_IsValid(t *testing.T) {
	assert.True(t, Sunday.IsValid())
	assert.True(t, Saturday.IsValid())
	assert.False(t, Weekday(7).IsValid())
	assert.False(t, Weekday(-1).IsValid())
}
