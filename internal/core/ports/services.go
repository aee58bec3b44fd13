package ports

import (
	"context"

	"github.com/lapin-reform/siteops/internal/core/domain"
)

// AuthService resolves platform logins into local sessions.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Elevate re-issues the actor's session with the admin role after a
	// successful passcode check.
	Elevate(ctx context.Context, actor Actor, passcode string) (*LoginResult, error)
}

// ExpenseService covers expense submission and the derived list/summary views.
type ExpenseService interface {
	Submit(ctx context.Context, actor Actor, in CreateExpenseInput) (*domain.Expense, error)
	List(ctx context.Context, actor Actor, filter ExpenseFilter) ([]domain.Expense, error)
	Summary(ctx context.Context, actor Actor, filter SummaryFilter) (*ExpenseSummary, error)
}

// AttendanceService records clock events and reports the current day state.
type AttendanceService interface {
	Punch(ctx context.Context, actor Actor, punch domain.PunchType) (*domain.AttendanceStatus, error)
	Status(ctx context.Context, actor Actor) (*domain.AttendanceStatus, error)
}

// ReportService submits daily reports.
type ReportService interface {
	Submit(ctx context.Context, actor Actor, in CreateReportInput) (*domain.Report, error)
}

// PhotoService uploads site-photo metadata with inlined images.
type PhotoService interface {
	Upload(ctx context.Context, actor Actor, in UploadPhotosInput) ([]domain.SitePhoto, error)
}

// MeetingService covers meeting records and remote text reformatting.
type MeetingService interface {
	Create(ctx context.Context, actor Actor, in CreateMeetingInput) (*domain.Meeting, error)
	List(ctx context.Context, actor Actor, projectID string) ([]domain.Meeting, error)
	Format(ctx context.Context, raw, formatType string) (string, error)
}

// ProjectService covers project registration and the picker/master data.
type ProjectService interface {
	Create(ctx context.Context, actor Actor, in CreateProjectInput) (*domain.Project, error)
	Options(ctx context.Context, actor Actor) ([]domain.ProjectOption, error)
	Employees(ctx context.Context, actor Actor) ([]domain.Employee, error)
	CompanySettings(ctx context.Context, actor Actor) (map[string]any, error)
}

// NoticeService covers admin announcements.
type NoticeService interface {
	Create(ctx context.Context, actor Actor, in CreateNoticeInput) (*domain.Notice, error)
	List(ctx context.Context, actor Actor, limit int) ([]domain.Notice, error)
}

// DashboardService combines remote KPIs with local aggregation.
type DashboardService interface {
	Overview(ctx context.Context, actor Actor, filter SummaryFilter) (*DashboardView, error)
}

// SubmissionJournal records accepted submissions for local audit.
type SubmissionJournal interface {
	Record(ctx context.Context, rec *domain.SubmissionRecord) error
	Recent(ctx context.Context, kind string, limit int64) ([]domain.SubmissionRecord, error)
}
