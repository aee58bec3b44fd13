package ports

import "github.com/lapin-reform/siteops/internal/core/domain"

// Actor is the authenticated user on whose behalf an operation runs,
// resolved once at login and carried on every request.
type Actor struct {
	UserID  string
	Name    string
	Role    string
	Retired bool
}

// Admin reports whether the actor may use the admin-only registration forms.
func (a Actor) Admin() bool { return a.Role == domain.RoleAdmin }

// LoginInput carries the platform credentials presented by the in-app browser.
type LoginInput struct {
	IDToken     string
	UserID      string
	DisplayName string
}

// LoginResult is the issued local session plus the resolved identity.
type LoginResult struct {
	Token string
	Actor Actor
}

// CreateExpenseInput carries one expense submission.
type CreateExpenseInput struct {
	Date      string
	Amount    int
	Category  string
	Memo      string
	ProjectID string // "" means a general (non-project) expense
	Receipts  [][]byte
}

// ExpenseFilter narrows a list load.
type ExpenseFilter struct {
	ProjectID string
}

// SummaryFilter narrows the aggregation views. Zero values mean "all".
type SummaryFilter struct {
	Year      int
	Month     int
	ProjectID string
	Category  string
}

// CategoryTotal is one row of the per-category aggregation.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

// ProjectTotal is one row of the per-project aggregation, sorted by amount
// descending.
type ProjectTotal struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Amount    int    `json:"amount"`
}

// ExpenseSummary is the derived view over the currently held collection.
type ExpenseSummary struct {
	Count      int             `json:"count"`
	Total      int             `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByProject  []ProjectTotal  `json:"by_project"`
}

// CostRatioRow compares a project's actual spend against its planned cost.
type CostRatioRow struct {
	ProjectID       string  `json:"project_id"`
	Name            string  `json:"name"`
	OrderAmount     int     `json:"order_amount"`
	PlannedCostRate float64 `json:"planned_cost_rate"`
	PlannedCost     int     `json:"planned_cost"`
	ActualCost      int     `json:"actual_cost"`
	// Ratio is actual over planned; 0 when no planned cost exists.
	Ratio float64 `json:"ratio"`
}

// DashboardView combines the remote KPI payload with locally derived
// aggregations.
type DashboardView struct {
	KPI        map[string]any  `json:"kpi,omitempty"`
	Expenses   *ExpenseSummary `json:"expenses"`
	CostRatios []CostRatioRow  `json:"cost_ratios"`
}

// CreateReportInput carries one daily report.
type CreateReportInput struct {
	ReportDate string
	Content    string
	ProjectID  string
	Photos     [][]byte
}

// UploadPhotosInput carries a batch of site photos for one project and date.
type UploadPhotosInput struct {
	ProjectID   string
	Category    string
	PhotoDate   string
	Description string
	Images      [][]byte
}

// CreateMeetingInput carries one meeting record.
type CreateMeetingInput struct {
	ProjectID   string
	MeetingDate string
	MeetingType string
	Attendees   string
	Content     string
	NextAction  string
}

// CreateProjectInput carries a project registration from either the staff
// intake form or the admin form (which adds kana and assignment).
type CreateProjectInput struct {
	CustomerName     string
	CustomerNameKana string
	PostalCode       string
	Address          string
	Phone            string
	Email            string
	WorkDescription  string
	WorkTypes        []string
	EstimatedAmount  int
	AcquisitionRoute string
	InquiryDate      string
	AssignedTo       string
	Notes            string
}

// CreateNoticeInput carries one admin announcement.
type CreateNoticeInput struct {
	Title    string
	Body     string
	Category string
	Pinned   bool
}
