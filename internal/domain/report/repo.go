package report

import "context"

// Repository is the read-only query surface over the disease-case fact table
// and the population reference table. Every method taking a group filter
// treats AllGroups as "no group predicate". Zero matching rows is never an
// error: each method returns its well-defined empty shape.
type Repository interface {
	// Years lists the distinct years present in the case data, descending.
	Years(ctx context.Context) ([]string, error)

	// DiseaseGroups lists the distinct group names present for a year,
	// ascending. The sentinel entry is not included here.
	DiseaseGroups(ctx context.Context, year string) ([]DiseaseGroup, error)

	// KPI sums cases over the filtered set and rates them against the total
	// population of all provinces for the year.
	KPI(ctx context.Context, group, year string) (*KPI, error)

	// MonthlyTrend returns per-month case sums in chronological order,
	// omitting empty months.
	MonthlyTrend(ctx context.Context, group, year string) ([]ChartPoint, error)

	// ProvinceSummary returns per-province case sums and rates,
	// alphabetically by province.
	ProvinceSummary(ctx context.Context, group, year string) ([]ProvinceRow, error)

	// WeeklyBreakdown returns per (ISO week, province, group) sums and
	// rates, ordered week descending, then province and group ascending.
	WeeklyBreakdown(ctx context.Context, group, year string) ([]WeeklyRow, error)
}
