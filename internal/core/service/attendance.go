package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// dayLog is one user's clock events for the current day.
type dayLog struct {
	date    string
	entries []domain.PunchEntry
}

// AttendanceService validates punch ordering and records clock events. The
// day log is held in memory per user; a new date starts a fresh log.
type AttendanceService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger
	now     func() time.Time

	mu   sync.Mutex
	days map[string]*dayLog
}

func NewAttendanceService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		gateway: gateway,
		journal: journal,
		log:     log,
		now:     time.Now,
		days:    make(map[string]*dayLog),
	}
}

// Punch records a clock event after checking it may follow the previous one,
// then reports it to the endpoint. The local state is authoritative for
// ordering; the endpoint only archives.
func (s *AttendanceService) Punch(ctx context.Context, actor ports.Actor, punch domain.PunchType) (*domain.AttendanceStatus, error) {
	if !punch.Known() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPunch, punch)
	}

	now := s.now()
	today := now.Format("2006-01-02")

	s.mu.Lock()
	day, ok := s.days[actor.UserID]
	if !ok || day.date != today {
		day = &dayLog{date: today}
		s.days[actor.UserID] = day
	}
	last := domain.PunchType("")
	if n := len(day.entries); n > 0 {
		last = day.entries[n-1].Type
	}
	if !last.CanFollow(punch) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s cannot follow %s", domain.ErrInvalidPunch, punch, orStart(last))
	}
	entry := domain.PunchEntry{Type: punch, At: now}
	day.entries = append(day.entries, entry)
	status := statusOf(day)
	s.mu.Unlock()

	payload := map[string]any{
		"date": today,
		"type": string(punch),
		"time": now.Format("15:04"),
	}
	if _, err := s.gateway.Call(ctx, sheet.ActionCreateAttendance, payload); err != nil {
		// The punch already happened from the worker's point of view; keep
		// the local record and let the caller surface the sync failure.
		s.log.Warn().Err(err).Str("user_id", actor.UserID).Str("type", string(punch)).Msg("attendance sync failed")
		return nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues("attendance").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:     "attendance",
		Action:   sheet.ActionCreateAttendance,
		UserID:   actor.UserID,
		UserName: actor.Name,
		Payload:  payload,
	})

	s.log.Info().Str("user_id", actor.UserID).Str("type", string(punch)).Msg("attendance recorded")
	return status, nil
}

// Status returns the current day's state, newest entry last.
func (s *AttendanceService) Status(_ context.Context, actor ports.Actor) (*domain.AttendanceStatus, error) {
	today := s.now().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[actor.UserID]
	if !ok || day.date != today {
		return &domain.AttendanceStatus{Entries: []domain.PunchEntry{}}, nil
	}
	return statusOf(day), nil
}

// statusOf derives the day summary. Caller holds mu.
func statusOf(day *dayLog) *domain.AttendanceStatus {
	status := &domain.AttendanceStatus{
		Entries: append([]domain.PunchEntry(nil), day.entries...),
	}
	for _, e := range day.entries {
		switch e.Type {
		case domain.PunchIn:
			status.ClockedIn = true
		case domain.PunchOut:
			status.ClockedIn = false
			status.OnBreak = false
		case domain.PunchBreakStart:
			status.OnBreak = true
		case domain.PunchBreakEnd:
			status.OnBreak = false
		}
	}
	return status
}

func orStart(p domain.PunchType) string {
	if p == "" {
		return "start of day"
	}
	return string(p)
}
