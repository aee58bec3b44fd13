package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Expense is a single submitted cost record, normalized from the server
// shape into the view-model the list screens render.
type Expense struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project"`
	ProjectName string   `json:"project_name"`
	Amount      int      `json:"amount"`
	Category    string   `json:"category"`
	Memo        string   `json:"memo"`
	Date        string   `json:"date"`
	UserName    string   `json:"user_name"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// Meeting is a customer-meeting record tied to a project.
type Meeting struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	MeetingDate string `json:"meeting_date"`
	MeetingType string `json:"meeting_type"`
	Attendees   string `json:"attendees"`
	Content     string `json:"content"`
	NextAction  string `json:"next_action"`
	UserName    string `json:"user_name,omitempty"`
}

// Notice is a company-wide announcement posted by an admin.
type Notice struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	Pinned    bool   `json:"is_pinned"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SitePhoto is the metadata record for one uploaded site photograph. The
// image itself travels inlined as a data URI; the server stores it and
// returns a drive URL later.
type SitePhoto struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Category    string `json:"type"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	PhotoDate   string `json:"photo_date"`
	DriveURL    string `json:"drive_url"`
}

// Report is a daily work report.
type Report struct {
	ID         string   `json:"id"`
	ReportDate string   `json:"report_date"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ProjectID  string   `json:"project_id,omitempty"`
	UserName   string   `json:"user_name,omitempty"`
	Photos     []string `json:"photos,omitempty"`
}

// Project is a renovation job as registered from the intake forms.
type Project struct {
	ID               string `json:"id"`
	CustomerName     string `json:"customer_name"`
	CustomerNameKana string `json:"customer_name_kana,omitempty"`
	PostalCode       string `json:"postal_code"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email,omitempty"`
	WorkDescription  string `json:"work_description"`
	WorkTypes        string `json:"work_type"`
	EstimatedAmount  int    `json:"estimated_amount"`
	AcquisitionRoute string `json:"acquisition_route"`
	InquiryDate      string `json:"inquiry_date"`
	AssignedTo       string `json:"assigned_to,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// ProjectOption is the lightweight entry used to populate project pickers.
type ProjectOption struct {
	Value     string   `json:"value"`
	Label     string   `json:"label"`
	WorkTypes []string `json:"work_types,omitempty"`
}

// ProjectMaster carries the financial planning figures for a project, used
// by the cost-ratio view.
type ProjectMaster struct {
	ProjectID       string  `json:"project_id"`
	Name            string  `json:"name"`
	OrderAmount     int     `json:"order_amount"`
	PlannedCostRate float64 `json:"planned_cost_rate"`
}

// Employee is a staff member as known to the server.
type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Retired reports whether the employee has left the company.
func (e Employee) Retired() bool { return e.Status == "retired" }

// SubmissionRecord is the journal entry written for every accepted business
// submission. It exists for local audit and troubleshooting; the sheet
// endpoint remains the system of record.
type SubmissionRecord struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Kind      string         `json:"kind" bson:"kind"`
	Action    string         `json:"action" bson:"action"`
	UserID    string         `json:"user_id" bson:"user_id"`
	UserName  string         `json:"user_name" bson:"user_name"`
	ProjectID string         `json:"project_id,omitempty" bson:"project_id,omitempty"`
	Payload   map[string]any `json:"payload" bson:"payload"`
	Mock      bool           `json:"mock,omitempty" bson:"mock,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}
