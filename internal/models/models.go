// Package models содержит доменные сущности и структуры ответов системы анализа филиалов.
package models

// District представляет административный район (ilçe).
// Район может не содержать ни одного филиала.
type District struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Population int    `json:"population"`
}

// Branch представляет филиал с фиксированной вместимостью.
type Branch struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	DistrictID int    `json:"district_id"`
	Capacity   int    `json:"capacity"`
}

// CostBreakdown представляет детализацию затрат за месяц.
// Отсутствующая детализация равна нулевому значению структуры.
type CostBreakdown struct {
	Staff       float64 `json:"staff"`
	Rent        float64 `json:"rent"`
	Electricity float64 `json:"electricity"`
	Water       float64 `json:"water"`
	Maintenance float64 `json:"maintenance"`
	Other       float64 `json:"other"`
}

// RevenueBreakdown представляет детализацию выручки за месяц.
type RevenueBreakdown struct {
	Membership float64 `json:"membership"`
	Class      float64 `json:"class"`
	Other      float64 `json:"other"`
}

// MonthlyRecord представляет месячные показатели одного филиала.
// Пара (BranchID, Year, Month) уникальна. Все необязательные значения
// нормализуются в 0 на границе хранилища.
type MonthlyRecord struct {
	ID                int64            `json:"id"`
	BranchID          int              `json:"branch_id"`
	Year              int              `json:"year"`
	Month             int              `json:"month"`
	Revenue           float64          `json:"revenue"`
	Cost              float64          `json:"cost"`
	ActiveMembers     int              `json:"active_members"`
	ClassParticipants int              `json:"class_participants"`
	Costs             CostBreakdown    `json:"costs"`
	Revenues          RevenueBreakdown `json:"revenues"`
}

// Index возвращает MonthIndex записи.
func (r MonthlyRecord) Index() MonthIndex {
	return NewMonthIndex(r.Year, r.Month)
}

// RecordQuery описывает выборку месячных записей из хранилища.
// Нулевые DistrictID и BranchID означают отсутствие фильтра,
// nil Window означает выборку за весь период.
type RecordQuery struct {
	DistrictID int
	BranchID   int
	Window     *Window
}
