package report

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Filters resolves the available filter options and the effective selection.
// An empty year defaults to the most recent year with data; an empty group
// defaults to the first real group, or "all" when the year has none.
func (s *Service) Filters(ctx context.Context, year, group string) (*Filters, error) {
	years, err := s.repo.Years(ctx)
	if err != nil {
		return nil, err
	}

	if year == "" && len(years) > 0 {
		year = years[0]
	}

	f := &Filters{
		Years:         years,
		Groups:        []DiseaseGroup{{Value: AllGroups, Label: AllGroupsLabel}},
		SelectedYear:  year,
		SelectedGroup: group,
	}

	if year != "" {
		groups, err := s.repo.DiseaseGroups(ctx, year)
		if err != nil {
			return nil, err
		}
		f.Groups = append(f.Groups, groups...)

		if f.SelectedGroup == "" {
			if len(groups) > 0 {
				f.SelectedGroup = groups[0].Value
			} else {
				f.SelectedGroup = AllGroups
			}
		}
	}
	if f.SelectedGroup == "" {
		f.SelectedGroup = AllGroups
	}

	return f, nil
}

// Dashboard resolves filters and runs the four report queries concurrently.
// The queries are independent reads; if any one fails the whole request
// fails, with no partial result.
func (s *Service) Dashboard(ctx context.Context, year, group string) (*Dashboard, error) {
	filters, err := s.Filters(ctx, year, group)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Filters: *filters}
	if filters.SelectedYear == "" {
		// No data at all: nothing to query.
		d.KPI = KPI{DiseaseName: AllGroupsName, TotalCases: 0, RatePer100k: "0.00"}
		return d, nil
	}

	y, g := filters.SelectedYear, filters.SelectedGroup

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		kpi, err := s.repo.KPI(egCtx, g, y)
		if err != nil {
			return err
		}
		d.KPI = *kpi
		return nil
	})
	eg.Go(func() error {
		var err error
		d.Monthly, err = s.repo.MonthlyTrend(egCtx, g, y)
		return err
	})
	eg.Go(func() error {
		var err error
		d.Provinces, err = s.repo.ProvinceSummary(egCtx, g, y)
		return err
	})
	eg.Go(func() error {
		var err error
		d.Weekly, err = s.repo.WeeklyBreakdown(egCtx, g, y)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
