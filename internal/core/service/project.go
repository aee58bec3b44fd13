package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// ProjectService registers projects and serves the picker/master data the
// other forms depend on.
type ProjectService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger
}

func NewProjectService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *ProjectService {
	return &ProjectService{gateway: gateway, journal: journal, log: log}
}

func (s *ProjectService) Create(ctx context.Context, actor ports.Actor, in ports.CreateProjectInput) (*domain.Project, error) {
	if in.InquiryDate == "" {
		in.InquiryDate = todayStr()
	}
	workTypes := strings.Join(in.WorkTypes, ",")
	workDesc := in.WorkDescription
	if workDesc == "" {
		workDesc = workTypes
	}

	payload := map[string]any{
		"customer_name":      in.CustomerName,
		"customer_name_kana": in.CustomerNameKana,
		"postal_code":        in.PostalCode,
		"address":            in.Address,
		"phone":              in.Phone,
		"email":              in.Email,
		"work_description":   workDesc,
		"work_type":          workTypes,
		"estimated_amount":   in.EstimatedAmount,
		"acquisition_route":  in.AcquisitionRoute,
		"inquiry_date":       in.InquiryDate,
		"notes":              in.Notes,
	}
	if in.AssignedTo != "" {
		payload["assigned_to"] = in.AssignedTo
	}

	res, err := s.gateway.Call(ctx, sheet.ActionCreateProject, payload)
	if err != nil {
		return nil, err
	}

	project := &domain.Project{
		ID:               strField(res.Data, "id"),
		CustomerName:     in.CustomerName,
		CustomerNameKana: in.CustomerNameKana,
		PostalCode:       in.PostalCode,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		WorkDescription:  workDesc,
		WorkTypes:        workTypes,
		EstimatedAmount:  in.EstimatedAmount,
		AcquisitionRoute: in.AcquisitionRoute,
		InquiryDate:      in.InquiryDate,
		AssignedTo:       in.AssignedTo,
		Notes:            in.Notes,
	}
	if project.ID == "" {
		project.ID = "local-" + uuid.NewString()
	}

	metrics.SubmissionsTotal.WithLabelValues("project").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:      "project",
		Action:    sheet.ActionCreateProject,
		UserID:    actor.UserID,
		UserName:  actor.Name,
		ProjectID: project.ID,
		Payload:   payload,
		Mock:      res.Mock,
	})

	s.log.Info().Str("user_id", actor.UserID).Str("customer", in.CustomerName).Msg("project registered")
	return project, nil
}

// Options returns the project picker entries. An unconfigured endpoint
// yields an empty list, not an error.
func (s *ProjectService) Options(ctx context.Context, _ ports.Actor) ([]domain.ProjectOption, error) {
	res, err := s.gateway.Query(ctx, sheet.ActionGetProjects, nil)
	if errors.Is(err, sheet.ErrNotConfigured) {
		return []domain.ProjectOption{}, nil
	}
	if err != nil {
		return nil, err
	}

	recs := rows(res.Data, "projects")
	out := make([]domain.ProjectOption, 0, len(recs))
	for _, r := range recs {
		opt := domain.ProjectOption{
			Value: strField(r, "value"),
			Label: strField(r, "label"),
		}
		if opt.Value == "" {
			opt.Value = strField(r, "id")
		}
		if opt.Label == "" {
			opt.Label = strField(r, "name")
		}
		if raw, ok := r["work_types"].([]any); ok {
			for _, w := range raw {
				if wt, ok := w.(string); ok {
					opt.WorkTypes = append(opt.WorkTypes, wt)
				}
			}
		}
		out = append(out, opt)
	}
	return out, nil
}

// Employees returns active staff for the assignment picker; retired
// employees are filtered out here so no form ever offers them.
func (s *ProjectService) Employees(ctx context.Context, _ ports.Actor) ([]domain.Employee, error) {
	res, err := s.gateway.Query(ctx, sheet.ActionGetEmployees, nil)
	if errors.Is(err, sheet.ErrNotConfigured) {
		return []domain.Employee{}, nil
	}
	if err != nil {
		return nil, err
	}

	recs := rows(res.Data, "employees")
	out := make([]domain.Employee, 0, len(recs))
	for _, r := range recs {
		emp := domain.Employee{
			ID:     strField(r, "id"),
			Name:   strField(r, "name"),
			Status: strField(r, "status"),
		}
		if emp.Retired() {
			continue
		}
		out = append(out, emp)
	}
	return out, nil
}

// CompanySettings passes the settings sheet through untouched; its fields
// belong to the spreadsheet.
func (s *ProjectService) CompanySettings(ctx context.Context, _ ports.Actor) (map[string]any, error) {
	res, err := s.gateway.Query(ctx, sheet.ActionGetCompanySettings, nil)
	if errors.Is(err, sheet.ErrNotConfigured) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	if res.Data == nil {
		return map[string]any{}, nil
	}
	return res.Data, nil
}

// masters decodes the project planning figures used by the cost-ratio view.
func (s *ProjectService) masters(ctx context.Context) ([]domain.ProjectMaster, error) {
	res, err := s.gateway.Query(ctx, sheet.ActionGetProjects, map[string]string{"include": "masters"})
	if errors.Is(err, sheet.ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	recs := rows(res.Data, "projects")
	out := make([]domain.ProjectMaster, 0, len(recs))
	for _, r := range recs {
		m := domain.ProjectMaster{
			ProjectID:       strField(r, "id"),
			Name:            strField(r, "name"),
			OrderAmount:     intField(r, "order_amount"),
			PlannedCostRate: floatField(r, "planned_cost_rate"),
		}
		if m.ProjectID == "" {
			m.ProjectID = strField(r, "value")
		}
		if m.Name == "" {
			m.Name = strField(r, "label")
		}
		out = append(out, m)
	}
	return out, nil
}
