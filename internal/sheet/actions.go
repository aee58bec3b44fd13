package sheet

// Action names understood by the remote spreadsheet endpoint. The server owns
// this vocabulary; the client never validates an action beyond picking one of
// these constants at the call site.
const (
	ActionCreateSession    = "createSession"
	ActionRegisterUser     = "registerUser"
	ActionGetUserInfo      = "getUserInfo"
	ActionCreateExpense    = "createExpense"
	ActionCreateAttendance = "createAttendance"
	ActionCreateReport     = "createReport"
	ActionUploadPhoto      = "uploadPhoto"
	ActionCreateMeeting    = "createMeeting"
	ActionCreateProject    = "createProject"
	ActionCreateNotice     = "createNotice"
	ActionFormatText       = "formatText"
	ActionSendNotification = "sendNotification"

	ActionGetExpenses        = "getExpenses"
	ActionGetMeetings        = "getMeetings"
	ActionGetNotices         = "getNotices"
	ActionGetEmployees       = "getEmployees"
	ActionGetProjects        = "getProjects"
	ActionGetCompanySettings = "getCompanySettings"
	ActionGetDashboard       = "getDashboard"
)
