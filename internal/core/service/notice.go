package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/liststate"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// NoticeService posts and lists company-wide announcements. Creation is
// admin-only; reading is open to everyone.
type NoticeService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	log     zerolog.Logger

	mu    sync.Mutex
	lists map[string]*liststate.List[domain.Notice]
}

func NewNoticeService(gateway sheet.Gateway, journal *queue.JournalDispatcher, log zerolog.Logger) *NoticeService {
	return &NoticeService{
		gateway: gateway,
		journal: journal,
		log:     log,
		lists:   make(map[string]*liststate.List[domain.Notice]),
	}
}

func (s *NoticeService) list(userID string) *liststate.List[domain.Notice] {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[userID]
	if !ok {
		l = liststate.New(func(n domain.Notice) string { return n.ID })
		s.lists[userID] = l
	}
	return l
}

func (s *NoticeService) Create(ctx context.Context, actor ports.Actor, in ports.CreateNoticeInput) (*domain.Notice, error) {
	if !actor.Admin() {
		return nil, domain.ErrForbidden
	}

	payload := map[string]any{
		"title":     in.Title,
		"body":      in.Body,
		"category":  in.Category,
		"is_pinned": in.Pinned,
	}

	res, err := s.gateway.Call(ctx, sheet.ActionCreateNotice, payload)
	if err != nil {
		return nil, err
	}

	notice := &domain.Notice{
		ID:       strField(res.Data, "id"),
		Title:    in.Title,
		Body:     in.Body,
		Category: in.Category,
		Pinned:   in.Pinned,
	}
	if notice.ID == "" {
		notice.ID = "local-" + uuid.NewString()
	}

	s.list(actor.UserID).Append(*notice)

	// Best effort: a posted notice also goes out as a push notification. A
	// delivery failure never undoes the notice itself.
	if _, err := s.gateway.Call(ctx, sheet.ActionSendNotification, map[string]any{
		"title": in.Title,
		"body":  in.Body,
	}); err != nil {
		s.log.Warn().Err(err).Str("title", in.Title).Msg("notice notification delivery failed")
	}

	metrics.SubmissionsTotal.WithLabelValues("notice").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:     "notice",
		Action:   sheet.ActionCreateNotice,
		UserID:   actor.UserID,
		UserName: actor.Name,
		Payload:  payload,
		Mock:     res.Mock,
	})

	s.log.Info().Str("user_id", actor.UserID).Str("title", in.Title).Msg("notice posted")
	return notice, nil
}

func (s *NoticeService) List(ctx context.Context, actor ports.Actor, limit int) ([]domain.Notice, error) {
	l := s.list(actor.UserID)
	err := l.Load(ctx, func(ctx context.Context) ([]domain.Notice, error) {
		params := map[string]string{}
		if limit > 0 {
			params["limit"] = strconv.Itoa(limit)
		}
		res, err := s.gateway.Query(ctx, sheet.ActionGetNotices, params)
		if err != nil {
			return nil, err
		}
		recs := rows(res.Data, "notices")
		out := make([]domain.Notice, 0, len(recs))
		for _, r := range recs {
			out = append(out, domain.Notice{
				ID:        strField(r, "id"),
				Title:     strField(r, "title"),
				Body:      strField(r, "body"),
				Category:  strField(r, "category"),
				Pinned:    boolField(r, "is_pinned"),
				CreatedAt: strField(r, "created_at"),
			})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	notices := l.Snapshot()
	if limit > 0 && len(notices) > limit {
		notices = notices[:limit]
	}
	return notices, nil
}
