package models

// AggregateResult представляет итоги по району или филиалу за окно.
// При пустой выборке все суммы равны нулю, а RecordCount = 0.
type AggregateResult struct {
	TotalRevenue           float64 `json:"total_revenue"`
	TotalCost              float64 `json:"total_cost"`
	AvgActiveMembers       float64 `json:"avg_active_members"`
	TotalClassParticipants int     `json:"total_class_participants"`
	TotalCapacity          int     `json:"total_capacity"`
	TotalProfit            float64 `json:"total_profit"`
	CapacityUtilizationPct float64 `json:"capacity_utilization_pct"`
	ProfitabilityPct       float64 `json:"profitability_pct"`
	RecordCount            int     `json:"record_count"`
	BranchCount            int     `json:"branch_count"`
}

// BreakdownTotals содержит суммы по подкатегориям выручки и затрат.
type BreakdownTotals struct {
	MembershipRevenue float64 `json:"membership_revenue"`
	ClassRevenue      float64 `json:"class_revenue"`
	OtherRevenue      float64 `json:"other_revenue"`
	StaffCost         float64 `json:"staff_cost"`
	RentCost          float64 `json:"rent_cost"`
	ElectricityCost   float64 `json:"electricity_cost"`
	WaterCost         float64 `json:"water_cost"`
	MaintenanceCost   float64 `json:"maintenance_cost"`
	OtherCost         float64 `json:"other_cost"`
}

// MonthlySeriesEntry представляет сумму по всем филиалам области за один месяц.
// ActiveMembers здесь суммируется, а не усредняется.
type MonthlySeriesEntry struct {
	Year              int     `json:"year"`
	Month             int     `json:"month"`
	Revenue           float64 `json:"revenue"`
	Cost              float64 `json:"cost"`
	ActiveMembers     int     `json:"active_members"`
	ClassParticipants int     `json:"class_participants"`
}

// DashboardRequest представляет параметры расчёта дашборда.
type DashboardRequest struct {
	DistrictID   int `json:"district_id"`
	BranchID     int `json:"branch_id"`
	WindowLength int `json:"window"`
}

// DashboardResult объединяет итоги, помесячный ряд и детализацию для слоя представления.
// Aggregate равен nil, если район не выбран.
type DashboardResult struct {
	DistrictID       int                  `json:"district_id"`
	BranchID         int                  `json:"branch_id"`
	DistrictName     string               `json:"district_name"`
	BranchName       string               `json:"branch_name,omitempty"`
	Window           Window               `json:"window"`
	Aggregate        *AggregateResult     `json:"aggregate"`
	Series           []MonthlySeriesEntry `json:"series"`
	Breakdown        BreakdownTotals      `json:"breakdown"`
	Districts        []District           `json:"districts"`
	Branches         []Branch             `json:"branches"`
	DistrictBranches []Branch             `json:"district_branches"`
	DistrictNames    map[int]string       `json:"district_names"`
	BranchNames      map[int]string       `json:"branch_names"`
}

// RecommendationRequest представляет параметры расчёта рекомендаций.
type RecommendationRequest struct {
	DistrictID   int      `json:"district_id"`
	BranchID     int      `json:"branch_id"`
	WindowLength int      `json:"window"`
	Category     Category `json:"category,omitempty"`
}

// RecommendationsResult содержит отфильтрованный список и счётчики по полному списку.
type RecommendationsResult struct {
	Window           Window           `json:"window"`
	Category         Category         `json:"category,omitempty"`
	Recommendations  []Recommendation `json:"recommendations"`
	Total            int              `json:"total"`
	CountsByCategory map[Category]int `json:"counts_by_category"`
	Districts        []District       `json:"districts"`
	Branches         []Branch         `json:"branches"`
	DistrictBranches []Branch         `json:"district_branches"`
}

// DistrictSummaryEntry представляет итоги района за окно.
type DistrictSummaryEntry struct {
	DistrictID   int    `json:"district_id"`
	DistrictName string `json:"district_name"`
	AggregateResult
}

// DistrictSummaryResult содержит рейтинг районов.
type DistrictSummaryResult struct {
	Window    Window                 `json:"window"`
	Districts []DistrictSummaryEntry `json:"districts"`
}

// BranchMapRequest представляет параметры карты филиалов.
// Month фильтрует по месяцу года (1-12), 0 означает все месяцы.
type BranchMapRequest struct {
	DistrictID int `json:"district_id"`
	BranchID   int `json:"branch_id"`
	Month      int `json:"month"`
}

// BranchMapEntry представляет показатели филиала за один месяц.
type BranchMapEntry struct {
	DistrictID    int     `json:"district_id"`
	DistrictName  string  `json:"district_name"`
	DistrictSlug  string  `json:"district_slug"`
	BranchID      int     `json:"branch_id"`
	BranchName    string  `json:"branch_name"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	ActiveMembers int     `json:"active_members"`
	Population    int     `json:"population"`
}

// BranchMapResult содержит данные для карты и справочники районов.
type BranchMapResult struct {
	Entries       []BranchMapEntry `json:"entries"`
	DistrictNames map[int]string   `json:"district_names"`
	DistrictSlugs map[string]int   `json:"district_slugs"`
	Branches      []Branch         `json:"branches"`
}
