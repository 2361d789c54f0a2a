package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepo creates a PostgreSQL-backed report repository.
func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

// parseYear validates the caller-supplied year string before it reaches SQL.
func parseYear(year string) (int, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", year)
	}
	return y, nil
}

// caseFilter builds the shared WHERE clause for the fact table: always the
// year predicate, plus an exact group match unless the sentinel "all" is
// selected.
func caseFilter(group string, year int) (string, []interface{}) {
	clause := `EXTRACT(YEAR FROM service_date) = $1`
	args := []interface{}{year}
	if group != AllGroups {
		clause += ` AND groupname = $2`
		args = append(args, group)
	}
	return clause, args
}

func (r *repoPG) Years(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM service_date)::int AS year
		FROM summary_disease_amphur
		ORDER BY year DESC`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	var years []string
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, strconv.Itoa(y))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate years: %w", err)
	}
	return years, nil
}

func (r *repoPG) DiseaseGroups(ctx context.Context, year string) ([]DiseaseGroup, error) {
	y, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT groupname
		FROM summary_disease_amphur
		WHERE EXTRACT(YEAR FROM service_date) = $1
		ORDER BY groupname`, y)
	if err != nil {
		return nil, fmt.Errorf("query disease groups: %w", err)
	}
	defer rows.Close()

	var groups []DiseaseGroup
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan disease group: %w", err)
		}
		groups = append(groups, DiseaseGroup{Value: name, Label: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate disease groups: %w", err)
	}
	return groups, nil
}

func (r *repoPG) KPI(ctx context.Context, group, year string) (*KPI, error) {
	y, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	clause, args := caseFilter(group, y)
	query := fmt.Sprintf(`
		SELECT
			COALESCE((SELECT SUM(patient_count) FROM summary_disease_amphur WHERE %s), 0) AS total_cases,
			COALESCE((SELECT SUM(population_count) FROM population_data WHERE year = $1), 0) AS total_population`,
		clause)

	var totalCases, totalPopulation int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&totalCases, &totalPopulation); err != nil {
		return nil, fmt.Errorf("query kpi: %w", err)
	}

	name := group
	if group == AllGroups {
		name = AllGroupsName
	}

	return &KPI{
		DiseaseName: name,
		TotalCases:  totalCases,
		RatePer100k: FormatRate(totalCases, totalPopulation),
	}, nil
}

func (r *repoPG) MonthlyTrend(ctx context.Context, group, year string) ([]ChartPoint, error) {
	y, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	clause, args := caseFilter(group, y)
	query := fmt.Sprintf(`
		SELECT trim(to_char(service_date, 'Mon')) AS month,
		       EXTRACT(MONTH FROM service_date)::int AS month_num,
		       SUM(patient_count) AS cases
		FROM summary_disease_amphur
		WHERE %s
		GROUP BY month, month_num
		ORDER BY month_num`, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query monthly trend: %w", err)
	}
	defer rows.Close()

	var points []ChartPoint
	for rows.Next() {
		var p ChartPoint
		var monthNum int
		if err := rows.Scan(&p.Month, &monthNum, &p.Cases); err != nil {
			return nil, fmt.Errorf("scan chart point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly trend: %w", err)
	}
	return points, nil
}

// Province and weekly queries pre-aggregate the fact table in a subquery and
// only then join population. Joining first would multiply case counts if the
// population table ever held more than one row per (province, year).

func (r *repoPG) ProvinceSummary(ctx context.Context, group, year string) ([]ProvinceRow, error) {
	y, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	clause, args := caseFilter(group, y)
	query := fmt.Sprintf(`
		SELECT c.province,
		       c.cases,
		       (c.cases::float8 / p.population_count::float8) * 100000 AS rate
		FROM (
			SELECT province, SUM(patient_count) AS cases
			FROM summary_disease_amphur
			WHERE %s
			GROUP BY province
		) c
		JOIN population_data p ON p.province = c.province AND p.year = $1
		ORDER BY c.province`, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query province summary: %w", err)
	}
	defer rows.Close()

	var result []ProvinceRow
	for rows.Next() {
		var row ProvinceRow
		if err := rows.Scan(&row.Province, &row.Cases, &row.Rate); err != nil {
			return nil, fmt.Errorf("scan province row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate province summary: %w", err)
	}
	return result, nil
}

func (r *repoPG) WeeklyBreakdown(ctx context.Context, group, year string) ([]WeeklyRow, error) {
	y, err := parseYear(year)
	if err != nil {
		return nil, err
	}

	clause, args := caseFilter(group, y)
	query := fmt.Sprintf(`
		SELECT c.week,
		       c.province,
		       c.groupname,
		       c.cases,
		       (c.cases::float8 / p.population_count::float8) * 100000 AS rate
		FROM (
			SELECT to_char(service_date, 'IYYYIW') AS week,
			       province,
			       groupname,
			       SUM(patient_count) AS cases
			FROM summary_disease_amphur
			WHERE %s
			GROUP BY week, province, groupname
		) c
		JOIN population_data p ON p.province = c.province AND p.year = $1
		ORDER BY c.week DESC, c.province ASC, c.groupname ASC`, clause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weekly breakdown: %w", err)
	}
	defer rows.Close()

	var result []WeeklyRow
	for rows.Next() {
		var row WeeklyRow
		if err := rows.Scan(&row.Week, &row.Province, &row.GroupName, &row.Cases, &row.Rate); err != nil {
			return nil, fmt.Errorf("scan weekly row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly breakdown: %w", err)
	}
	return result, nil
}

// FormatRate renders cases per 100k population to two decimals. A zero or
// missing denominator yields "0.00" rather than an error.
func FormatRate(cases, population int64) string {
	if population <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(cases)/float64(population)*100000, 'f', 2, 64)
}
