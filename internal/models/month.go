package models

import (
	"fmt"
	"time"
)

// MonthIndex кодирует календарный месяц целым числом year*12 + (month-1).
// Используется для арифметики окон вместо календарных дат.
type MonthIndex int

// NewMonthIndex строит индекс из года и месяца (1-12).
func NewMonthIndex(year, month int) MonthIndex {
	return MonthIndex(year*12 + (month - 1))
}

// CurrentMonthIndex возвращает индекс текущего месяца в UTC.
func CurrentMonthIndex(now time.Time) MonthIndex {
	utc := now.UTC()
	return NewMonthIndex(utc.Year(), int(utc.Month()))
}

// Year возвращает год индекса.
func (m MonthIndex) Year() int {
	return int(m) / 12
}

// Month возвращает месяц индекса (1-12).
func (m MonthIndex) Month() int {
	return int(m)%12 + 1
}

func (m MonthIndex) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Month())
}

// Window представляет включающее окно из Length последовательных месяцев.
type Window struct {
	Length int        `json:"length"`
	Start  MonthIndex `json:"start_index"`
	End    MonthIndex `json:"end_index"`
}

// Contains сообщает, попадает ли месяц в окно.
func (w Window) Contains(m MonthIndex) bool {
	return m >= w.Start && m <= w.End
}
