package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/capture"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/liststate"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// MeetingService records customer meetings per project.
type MeetingService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger

	mu    sync.Mutex
	lists map[string]*liststate.List[domain.Meeting]
}

func NewMeetingService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *MeetingService {
	return &MeetingService{
		gateway: gateway,
		journal: journal,
		log:     log,
		lists:   make(map[string]*liststate.List[domain.Meeting]),
	}
}

// listKey scopes collections per user and project, since the meeting view
// is always filtered to one project.
func (s *MeetingService) list(userID, projectID string) *liststate.List[domain.Meeting] {
	key := userID + "/" + projectID
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[key]
	if !ok {
		l = liststate.New(func(m domain.Meeting) string { return m.ID })
		s.lists[key] = l
	}
	return l
}

func (s *MeetingService) Create(ctx context.Context, actor ports.Actor, in ports.CreateMeetingInput) (*domain.Meeting, error) {
	if in.MeetingDate == "" {
		in.MeetingDate = todayStr()
	}

	payload := map[string]any{
		"project_id":   in.ProjectID,
		"meeting_date": in.MeetingDate,
		"meeting_type": in.MeetingType,
		"attendees":    in.Attendees,
		"content":      in.Content,
		"next_action":  in.NextAction,
	}

	res, err := s.gateway.Call(ctx, sheet.ActionCreateMeeting, payload)
	if err != nil {
		return nil, err
	}

	meeting := &domain.Meeting{
		ID:          strField(res.Data, "id"),
		ProjectID:   in.ProjectID,
		MeetingDate: in.MeetingDate,
		MeetingType: in.MeetingType,
		Attendees:   in.Attendees,
		Content:     in.Content,
		NextAction:  in.NextAction,
		UserName:    actor.Name,
	}
	if meeting.ID == "" {
		meeting.ID = "local-" + uuid.NewString()
	}

	s.list(actor.UserID, in.ProjectID).Append(*meeting)

	metrics.SubmissionsTotal.WithLabelValues("meeting").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:      "meeting",
		Action:    sheet.ActionCreateMeeting,
		UserID:    actor.UserID,
		UserName:  actor.Name,
		ProjectID: in.ProjectID,
		Payload:   payload,
		Mock:      res.Mock,
	})

	s.log.Info().Str("user_id", actor.UserID).Str("project_id", in.ProjectID).Msg("meeting recorded")
	return meeting, nil
}

func (s *MeetingService) List(ctx context.Context, actor ports.Actor, projectID string) ([]domain.Meeting, error) {
	l := s.list(actor.UserID, projectID)
	err := l.Load(ctx, func(ctx context.Context) ([]domain.Meeting, error) {
		res, err := s.gateway.Query(ctx, sheet.ActionGetMeetings, map[string]string{"project_id": projectID})
		if err != nil {
			return nil, err
		}
		recs := rows(res.Data, "meetings")
		out := make([]domain.Meeting, 0, len(recs))
		for _, r := range recs {
			out = append(out, domain.Meeting{
				ID:          strField(r, "id"),
				ProjectID:   strField(r, "project_id"),
				MeetingDate: strField(r, "meeting_date"),
				MeetingType: strField(r, "meeting_type"),
				Attendees:   strField(r, "attendees"),
				Content:     strField(r, "content"),
				NextAction:  strField(r, "next_action"),
				UserName:    strField(r, "user_name"),
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return l.Snapshot(), nil
}

// Format reshapes dictated meeting notes. The endpoint's formatter is
// preferred; any failure falls back to the local reformatter so the button
// always produces something.
func (s *MeetingService) Format(ctx context.Context, raw, formatType string) (string, error) {
	res, err := s.gateway.Call(ctx, sheet.ActionFormatText, map[string]any{
		"input_text":  raw,
		"format_type": formatType,
	})
	if err == nil {
		if formatted, ok := res.Data["formatted_text"].(string); ok && formatted != "" {
			return formatted, nil
		}
	} else {
		s.log.Debug().Err(err).Msg("remote formatter unavailable, formatting locally")
	}
	return capture.FormatText(raw), nil
}
