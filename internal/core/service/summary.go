package service

import (
	"math"
	"sort"
	"time"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
)

// The aggregation views are pure functions of (collection, filter); they
// never mutate the source collection.

func matchesFilter(e domain.Expense, f ports.SummaryFilter) bool {
	if f.ProjectID != "" && e.ProjectID != f.ProjectID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Year != 0 || f.Month != 0 {
		dt, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return false
		}
		if f.Year != 0 && dt.Year() != f.Year {
			return false
		}
		if f.Month != 0 && int(dt.Month()) != f.Month {
			return false
		}
	}
	return true
}

func filterExpenses(entries []domain.Expense, f ports.SummaryFilter) []domain.Expense {
	out := make([]domain.Expense, 0, len(entries))
	for _, e := range entries {
		if matchesFilter(e, f) {
			out = append(out, e)
		}
	}
	return out
}

// summarizeExpenses derives the total, per-category, and per-project views.
// Per-project rows are sorted by amount descending; per-category rows follow
// the fixed category order with unknown categories appended.
func summarizeExpenses(entries []domain.Expense, f ports.SummaryFilter) *ports.ExpenseSummary {
	filtered := filterExpenses(entries, f)

	byCategory := make(map[string]int)
	byProject := make(map[string]int)
	projectNames := make(map[string]string)
	total := 0

	for _, e := range filtered {
		total += e.Amount
		byCategory[e.Category] += e.Amount
		byProject[e.ProjectID] += e.Amount
		if _, ok := projectNames[e.ProjectID]; !ok || projectNames[e.ProjectID] == "" {
			projectNames[e.ProjectID] = e.ProjectName
		}
	}

	summary := &ports.ExpenseSummary{
		Count: len(filtered),
		Total: total,
	}

	seen := make(map[string]bool)
	for _, c := range domain.ExpenseCategories {
		if amt, ok := byCategory[c]; ok {
			summary.ByCategory = append(summary.ByCategory, ports.CategoryTotal{Category: c, Amount: amt})
			seen[c] = true
		}
	}
	extras := make([]string, 0)
	for c := range byCategory {
		if !seen[c] {
			extras = append(extras, c)
		}
	}
	sort.Strings(extras)
	for _, c := range extras {
		summary.ByCategory = append(summary.ByCategory, ports.CategoryTotal{Category: c, Amount: byCategory[c]})
	}

	for id, amt := range byProject {
		summary.ByProject = append(summary.ByProject, ports.ProjectTotal{
			ProjectID: id,
			Name:      projectNames[id],
			Amount:    amt,
		})
	}
	sort.Slice(summary.ByProject, func(i, j int) bool {
		if summary.ByProject[i].Amount != summary.ByProject[j].Amount {
			return summary.ByProject[i].Amount > summary.ByProject[j].Amount
		}
		return summary.ByProject[i].ProjectID < summary.ByProject[j].ProjectID
	})

	return summary
}

// costRatioTable compares actual spend per project with the planned cost
// derived from each project's order amount and planned cost rate. Projects
// without a master row are skipped; a zero planned cost yields ratio 0.
func costRatioTable(entries []domain.Expense, masters []domain.ProjectMaster, f ports.SummaryFilter) []ports.CostRatioRow {
	actual := make(map[string]int)
	for _, e := range filterExpenses(entries, f) {
		actual[e.ProjectID] += e.Amount
	}

	rows := make([]ports.CostRatioRow, 0, len(masters))
	for _, m := range masters {
		planned := int(math.Round(float64(m.OrderAmount) * m.PlannedCostRate / 100))
		row := ports.CostRatioRow{
			ProjectID:       m.ProjectID,
			Name:            m.Name,
			OrderAmount:     m.OrderAmount,
			PlannedCostRate: m.PlannedCostRate,
			PlannedCost:     planned,
			ActualCost:      actual[m.ProjectID],
		}
		if planned > 0 {
			row.Ratio = float64(row.ActualCost) / float64(planned)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Ratio > rows[j].Ratio })
	return rows
}
