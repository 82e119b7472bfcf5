package dashboard

// LiveEntry is one user's current-day status as shown on the admin
// dashboard, enriched with lifetime attendance totals.
type LiveEntry struct {
	UserID        string `json:"user_id"`
	UniqueNumber  string `json:"unique_number"`
	Username      string `json:"username"`
	CompanyBranch string `json:"company_branch"`

	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	AbsentReason string  `json:"absent_reason,omitempty"`
	WorkMinutes  int     `json:"work_minutes"`

	TotalCheckInCount           int `json:"total_check_in_count"`
	TotalAbsenceCount           int `json:"total_absence_count"`
	TotalAbsenceWithReasonCount int `json:"total_absence_with_reason_count"`
}

// LiveStatusResponse is the full dashboard projection for today.
type LiveStatusResponse struct {
	Date    string      `json:"date"`
	Entries []LiveEntry `json:"entries"`
}
