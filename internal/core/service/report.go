package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/capture"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// ReportService submits daily work reports.
type ReportService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger
}

func NewReportService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *ReportService {
	return &ReportService{gateway: gateway, journal: journal, log: log}
}

func (s *ReportService) Submit(ctx context.Context, actor ports.Actor, in ports.CreateReportInput) (*domain.Report, error) {
	if in.ReportDate == "" {
		in.ReportDate = todayStr()
	}
	if len(in.Photos) > capture.MaxReportPhotos {
		return nil, fmt.Errorf("%w: a report accepts at most %d", domain.ErrTooManyPhotos, capture.MaxReportPhotos)
	}

	content := capture.FormatText(in.Content)
	title := in.ReportDate + " 日報"

	payload := map[string]any{
		"report_date": in.ReportDate,
		"content":     content,
		"title":       title,
	}
	if in.ProjectID != "" {
		payload["project_id"] = in.ProjectID
	}

	photos := make([]string, 0, len(in.Photos))
	for _, raw := range in.Photos {
		uri, err := capture.InlineImage(raw)
		if err != nil {
			return nil, err
		}
		photos = append(photos, uri)
	}
	if len(photos) > 0 {
		payload["photos"] = photos
	}

	res, err := s.gateway.Call(ctx, sheet.ActionCreateReport, payload)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:         strField(res.Data, "id"),
		ReportDate: in.ReportDate,
		Title:      title,
		Content:    content,
		ProjectID:  in.ProjectID,
		UserName:   actor.Name,
	}
	if report.ID == "" {
		report.ID = "local-" + uuid.NewString()
	}

	metrics.SubmissionsTotal.WithLabelValues("report").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:      "report",
		Action:    sheet.ActionCreateReport,
		UserID:    actor.UserID,
		UserName:  actor.Name,
		ProjectID: in.ProjectID,
		Payload:   payload,
		Mock:      res.Mock,
	})

	s.log.Info().Str("user_id", actor.UserID).Str("report_date", in.ReportDate).Msg("report submitted")
	return report, nil
}
