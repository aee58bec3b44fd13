package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// DashboardService assembles the admin overview: the endpoint's KPI payload
// plus aggregations derived from the expense collection and project masters.
type DashboardService struct {
	gateway  sheet.Gateway
	expenses *ExpenseService
	projects *ProjectService
	log      zerolog.Logger
}

func NewDashboardService(gateway sheet.Gateway, expenses *ExpenseService, projects *ProjectService, log zerolog.Logger) *DashboardService {
	return &DashboardService{gateway: gateway, expenses: expenses, projects: projects, log: log}
}

func (s *DashboardService) Overview(ctx context.Context, actor ports.Actor, filter ports.SummaryFilter) (*ports.DashboardView, error) {
	view := &ports.DashboardView{CostRatios: []ports.CostRatioRow{}}

	res, err := s.gateway.Query(ctx, sheet.ActionGetDashboard, nil)
	switch {
	case err == nil:
		view.KPI = res.Data
	case errors.Is(err, sheet.ErrNotConfigured):
		// Local aggregations still work without the endpoint.
	default:
		s.log.Warn().Err(err).Msg("dashboard KPI fetch failed")
	}

	entries, err := s.expenses.List(ctx, actor, ports.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	view.Expenses = summarizeExpenses(entries, filter)

	masters, err := s.projects.masters(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("project masters fetch failed")
		return view, nil
	}
	if len(masters) > 0 {
		view.CostRatios = costRatioTable(entries, masters, filter)
	}

	return view, nil
}
