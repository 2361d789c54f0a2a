package report

// AllGroups is the sentinel filter value selecting every disease group.
const AllGroups = "all"

// AllGroupsLabel is the display label of the sentinel filter option.
const AllGroupsLabel = "--- all groups ---"

// AllGroupsName is the KPI display name used when no single group is selected.
const AllGroupsName = "All disease groups"

// KPI is the headline aggregate for a (disease group, year) selection. The
// rate denominator is the total population across all provinces for the
// year, pre-formatted to two decimals for display.
type KPI struct {
	DiseaseName string `json:"disease_name"`
	TotalCases  int64  `json:"total_cases"`
	RatePer100k string `json:"rate_per_100k"`
}

// ChartPoint is one month of the trend chart. Months with no matching rows
// are absent, not zero-valued.
type ChartPoint struct {
	Month string `json:"month"`
	Cases int64  `json:"cases"`
}

// ProvinceRow is one row of the per-province summary table. Rate uses the
// province's own population for the selected year.
type ProvinceRow struct {
	Province string  `json:"province"`
	Cases    int64   `json:"cases"`
	Rate     float64 `json:"rate"`
}

// WeeklyRow is one row of the per-week breakdown, keyed by ISO week
// ("YYYYWW"), province, and disease group.
type WeeklyRow struct {
	Week      string  `json:"week"`
	Province  string  `json:"province"`
	GroupName string  `json:"groupname"`
	Cases     int64   `json:"patient_count"`
	Rate      float64 `json:"rate"`
}

// DiseaseGroup is a filter option. Value and label carry the same group name
// for real groups; the sentinel "all" entry is prepended by the service.
type DiseaseGroup struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Filters describes the filter controls for a dashboard view: the available
// options and the resolved current selection.
type Filters struct {
	Years         []string       `json:"years"`
	Groups        []DiseaseGroup `json:"groups"`
	SelectedYear  string         `json:"selected_year"`
	SelectedGroup string         `json:"selected_group"`
}

// Dashboard bundles everything one page request needs.
type Dashboard struct {
	Filters   Filters       `json:"filters"`
	KPI       KPI           `json:"kpi"`
	Monthly   []ChartPoint  `json:"monthly"`
	Provinces []ProvinceRow `json:"provinces"`
	Weekly    []WeeklyRow   `json:"weekly"`
}
