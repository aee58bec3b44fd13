package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/sheet"
)

func TestProjectService_Create_JoinsWorkTypes(t *testing.T) {
	gw := newStubGateway()
	gw.callResults[sheet.ActionCreateProject] = &sheet.Result{
		Success: true,
		Data:    map[string]any{"id": "p9"},
	}
	svc := NewProjectService(gw, testDispatcher(), zerolog.Nop())

	project, err := svc.Create(context.Background(), testActor, ports.CreateProjectInput{
		CustomerName: "田中様",
		Address:      "東京都",
		Phone:        "090-0000-0000",
		WorkTypes:    []string{"外壁塗装", "屋根工事"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if project.ID != "p9" {
		t.Fatalf("server id not used: %q", project.ID)
	}
	if project.InquiryDate == "" {
		t.Fatalf("inquiry date not defaulted")
	}

	payload := gw.lastPayload(sheet.ActionCreateProject)
	if payload["work_type"] != "外壁塗装,屋根工事" {
		t.Fatalf("work types not joined: %+v", payload)
	}
	// A blank description falls back to the joined work types.
	if payload["work_description"] != "外壁塗装,屋根工事" {
		t.Fatalf("description fallback missing: %+v", payload)
	}
	if _, ok := payload["assigned_to"]; ok {
		t.Fatalf("empty assignment must be omitted: %+v", payload)
	}
}

func TestProjectService_Options_Normalizes(t *testing.T) {
	gw := newStubGateway()
	gw.queryResults[sheet.ActionGetProjects] = &sheet.Result{
		Success: true,
		Data: map[string]any{
			"projects": []any{
				map[string]any{"value": "p1", "label": "田中邸"},
				map[string]any{"id": "p2", "name": "佐藤邸"},
			},
		},
	}
	svc := NewProjectService(gw, testDispatcher(), zerolog.Nop())

	opts, err := svc.Options(context.Background(), testActor)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[1].Value != "p2" || opts[1].Label != "佐藤邸" {
		t.Fatalf("id/name row not normalized: %+v", opts[1])
	}
}

func TestProjectService_Options_UnconfiguredIsEmpty(t *testing.T) {
	gw := newStubGateway()
	gw.queryErrs[sheet.ActionGetProjects] = sheet.ErrNotConfigured
	svc := NewProjectService(gw, testDispatcher(), zerolog.Nop())

	opts, err := svc.Options(context.Background(), testActor)
	if err != nil {
		t.Fatalf("unconfigured endpoint must not error: %v", err)
	}
	if len(opts) != 0 {
		t.Fatalf("expected empty picker, got %+v", opts)
	}
}

func TestProjectService_Employees_FiltersRetired(t *testing.T) {
	gw := newStubGateway()
	gw.queryResults[sheet.ActionGetEmployees] = &sheet.Result{
		Success: true,
		Data: map[string]any{
			"employees": []any{
				map[string]any{"id": "e1", "name": "山田", "status": "active"},
				map[string]any{"id": "e2", "name": "退職者", "status": "retired"},
			},
		},
	}
	svc := NewProjectService(gw, testDispatcher(), zerolog.Nop())

	emps, err := svc.Employees(context.Background(), testActor)
	if err != nil {
		t.Fatalf("employees failed: %v", err)
	}
	if len(emps) != 1 || emps[0].ID != "e1" {
		t.Fatalf("retired employee not filtered: %+v", emps)
	}
}

func TestNoticeService_CreateRequiresAdmin(t *testing.T) {
	gw := newStubGateway()
	svc := NewNoticeService(gw, testDispatcher(), zerolog.Nop())

	_, err := svc.Create(context.Background(), testActor, ports.CreateNoticeInput{Title: "t", Body: "b"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for staff, got %v", err)
	}

	admin := ports.Actor{UserID: "a1", Name: "管理者", Role: domain.RoleAdmin}
	notice, err := svc.Create(context.Background(), admin, ports.CreateNoticeInput{Title: "title", Body: "body", Pinned: true})
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if !notice.Pinned || notice.Title != "title" {
		t.Fatalf("unexpected notice: %+v", notice)
	}
}

func TestNoticeService_ListAppliesLimit(t *testing.T) {
	gw := newStubGateway()
	gw.queryResults[sheet.ActionGetNotices] = &sheet.Result{
		Success: true,
		Data: map[string]any{
			"notices": []any{
				map[string]any{"id": "n1", "title": "a"},
				map[string]any{"id": "n2", "title": "b"},
				map[string]any{"id": "n3", "title": "c"},
			},
		},
	}
	svc := NewNoticeService(gw, testDispatcher(), zerolog.Nop())

	notices, err := svc.List(context.Background(), testActor, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(notices) != 2 {
		t.Fatalf("limit not applied: %+v", notices)
	}
}

func TestDashboardService_Overview(t *testing.T) {
	gw := newStubGateway()
	gw.queryResults[sheet.ActionGetDashboard] = &sheet.Result{
		Success: true,
		Data:    map[string]any{"monthly_sales": float64(1200000)},
	}
	gw.queryResults[sheet.ActionGetExpenses] = &sheet.Result{
		Success: true,
		Data: map[string]any{
			"expenses": []any{
				map[string]any{"id": "e1", "amount": float64(300000), "category": "材料費", "date": "2026-08-01", "project_id": "p1"},
			},
		},
	}
	gw.queryResults[sheet.ActionGetProjects] = &sheet.Result{
		Success: true,
		Data: map[string]any{
			"projects": []any{
				map[string]any{"id": "p1", "name": "田中邸", "order_amount": float64(1000000), "planned_cost_rate": float64(40)},
			},
		},
	}

	expenses := NewExpenseService(gw, testDispatcher(), nil, zerolog.Nop())
	projects := NewProjectService(gw, testDispatcher(), zerolog.Nop())
	svc := NewDashboardService(gw, expenses, projects, zerolog.Nop())

	view, err := svc.Overview(context.Background(), testActor, ports.SummaryFilter{})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if view.KPI["monthly_sales"] != float64(1200000) {
		t.Fatalf("KPI not passed through: %+v", view.KPI)
	}
	if view.Expenses.Total != 300000 {
		t.Fatalf("expense aggregation missing: %+v", view.Expenses)
	}
	if len(view.CostRatios) != 1 || view.CostRatios[0].Ratio != 0.75 {
		t.Fatalf("cost ratio table wrong: %+v", view.CostRatios)
	}
}
