package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/capture"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	redisinfra "github.com/lapin-reform/siteops/internal/infrastructure/db/redis"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/liststate"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// generalExpenseLabel is the display name for expenses not tied to a project.
const generalExpenseLabel = "共通経費"

// ExpenseService submits expenses and maintains the per-user optimistic list.
type ExpenseService struct {
	gateway sheet.Gateway
	journal *queue.JournalDispatcher
	guard   *redisinfra.SubmitGuard // nil when Redis is not deployed
	log     zerolog.Logger

	mu    sync.Mutex
	lists map[string]*liststate.List[domain.Expense]
}

func NewExpenseService(gateway sheet.Gateway, journal *queue.JournalDispatcher, guard *redisinfra.SubmitGuard, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{
		gateway: gateway,
		journal: journal,
		guard:   guard,
		log:     log,
		lists:   make(map[string]*liststate.List[domain.Expense]),
	}
}

func (s *ExpenseService) list(userID string) *liststate.List[domain.Expense] {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lists[userID]
	if !ok {
		l = liststate.New(func(e domain.Expense) string { return e.ID })
		s.lists[userID] = l
	}
	return l
}

// Submit validates nothing itself (the transport layer has already enforced
// required fields), assembles the flat payload, calls the endpoint, and
// prepends the echoed or synthesized entry to the user's list.
func (s *ExpenseService) Submit(ctx context.Context, actor ports.Actor, in ports.CreateExpenseInput) (*domain.Expense, error) {
	if in.Date == "" {
		in.Date = todayStr()
	}
	memo := in.Memo
	if memo == "" {
		memo = "未設定"
	}

	images := make([]string, 0, len(in.Receipts))
	for _, raw := range in.Receipts {
		uri, err := capture.InlineImage(raw)
		if err != nil {
			return nil, err
		}
		images = append(images, uri)
	}

	payload := map[string]any{
		"date":        in.Date,
		"amount":      in.Amount,
		"category":    in.Category,
		"description": memo,
		"project_id":  in.ProjectID,
		"notes":       "",
	}
	if len(images) > 0 {
		payload["images"] = images
	}

	if dup, err := s.seen(ctx, actor.UserID, "expense", payload); err == nil && dup {
		return nil, domain.ErrDuplicateSubmission
	}

	res, err := s.gateway.Call(ctx, sheet.ActionCreateExpense, payload)
	if err != nil {
		return nil, err
	}

	entry := domain.Expense{
		ID:          strField(res.Data, "id"),
		ProjectID:   in.ProjectID,
		ProjectName: strField(res.Data, "project_name"),
		Amount:      in.Amount,
		Category:    in.Category,
		Memo:        memo,
		Date:        in.Date,
		UserName:    actor.Name,
		ImageURLs:   []string{},
	}
	if entry.ID == "" {
		entry.ID = "local-" + uuid.NewString()
	}
	if entry.ProjectName == "" && in.ProjectID == "" {
		entry.ProjectName = generalExpenseLabel
	}

	s.list(actor.UserID).Append(entry)
	s.mark(ctx, actor.UserID, "expense", payload)

	metrics.SubmissionsTotal.WithLabelValues("expense").Inc()
	s.journal.Enqueue(&domain.SubmissionRecord{
		Kind:      "expense",
		Action:    sheet.ActionCreateExpense,
		UserID:    actor.UserID,
		UserName:  actor.Name,
		ProjectID: in.ProjectID,
		Payload:   payload,
		Mock:      res.Mock,
	})

	s.log.Info().Str("user_id", actor.UserID).Int("amount", in.Amount).Str("category", in.Category).Msg("expense submitted")
	return &entry, nil
}

// List refreshes the user's collection from the endpoint and returns a
// snapshot, newest first. An unconfigured endpoint leaves the collection
// as-is (typically whatever has been optimistically appended).
func (s *ExpenseService) List(ctx context.Context, actor ports.Actor, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	l := s.list(actor.UserID)
	err := l.Load(ctx, func(ctx context.Context) ([]domain.Expense, error) {
		params := map[string]string{}
		if filter.ProjectID != "" {
			params["project_id"] = filter.ProjectID
		}
		res, err := s.gateway.Query(ctx, sheet.ActionGetExpenses, params)
		if err != nil {
			return nil, err
		}
		recs := rows(res.Data, "expenses")
		out := make([]domain.Expense, 0, len(recs))
		for _, r := range recs {
			out = append(out, normalizeExpense(r))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return l.Snapshot(), nil
}

// Summary aggregates the currently held collection; it loads once when the
// collection has never been populated.
func (s *ExpenseService) Summary(ctx context.Context, actor ports.Actor, filter ports.SummaryFilter) (*ports.ExpenseSummary, error) {
	l := s.list(actor.UserID)
	if !l.Loaded() {
		if _, err := s.List(ctx, actor, ports.ExpenseFilter{}); err != nil {
			return nil, err
		}
	}
	return summarizeExpenses(l.Snapshot(), filter), nil
}

func (s *ExpenseService) seen(ctx context.Context, userID, kind string, payload map[string]any) (bool, error) {
	if s.guard == nil {
		return false, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return false, err
	}
	return s.guard.Seen(ctx, userID, kind, b)
}

func (s *ExpenseService) mark(ctx context.Context, userID, kind string, payload map[string]any) {
	if s.guard == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.guard.Mark(ctx, userID, kind, b); err != nil {
		s.log.Warn().Err(err).Msg("submit guard mark failed")
	}
}

func normalizeExpense(r map[string]any) domain.Expense {
	name := strField(r, "project_name")
	project := strField(r, "project_id")
	if project == "" {
		project = strField(r, "project")
	}
	if name == "" && project == "" {
		name = generalExpenseLabel
	}
	return domain.Expense{
		ID:          strField(r, "id"),
		ProjectID:   project,
		ProjectName: name,
		Amount:      intField(r, "amount"),
		Category:    strField(r, "category"),
		Memo:        strField(r, "description"),
		Date:        strField(r, "date"),
		UserName:    strField(r, "user_name"),
		ImageURLs:   []string{},
	}
}
