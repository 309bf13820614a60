package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout - формат дат на границе API
const DateLayout = "2006-01-02"

// ParseDate принимает YYYY-MM-DD или полный RFC3339 (берется только дата)
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// DateOf обрезает время до полуночи UTC того же календарного дня
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths прибавляет месяцы по календарю. Несуществующий день переносится
// вперед: 31 января + 1 месяц = 2 или 3 марта.
func AddMonths(start time.Time, months int) time.Time {
	return DateOf(start).AddDate(0, months, 0)
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

func NewDate(t time.Time) datatypes.Date {
	return datatypes.Date(DateOf(t))
}
