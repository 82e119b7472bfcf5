package attendance

import (
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	UserID   string    `json:"-"`
	Location *Location `json:"location"`

	// A check-in may carry an up-front absence reason or an excused
	// flag, mirroring a user who announces lateness while arriving.
	AbsentReason string `json:"absent_reason"`
	WorkMeeting  bool   `json:"work_meeting"`
	WillBeLate   bool   `json:"will_be_late"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	UserID   string    `json:"-"`
	Location *Location `json:"location"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Location == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkAbsenceRequest struct {
	UserID       string    `json:"-"`
	Location     *Location `json:"location"`
	AbsentReason string    `json:"absent_reason"`
	WorkMeeting  bool      `json:"work_meeting"`
	WillBeLate   bool      `json:"will_be_late"`
}

func (r *MarkAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.WorkMeeting && !r.WillBeLate && validator.IsEmpty(r.AbsentReason) {
		errs = append(errs, validator.ValidationError{
			Field:   "absent_reason",
			Message: "absent_reason is required unless the absence is excused",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordResponse mirrors the stored record for the mutation endpoints.
type RecordResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             string    `json:"date"`
	CheckIn          *string   `json:"check_in"`
	CheckOut         *string   `json:"check_out"`
	CheckInLocation  *Location `json:"check_in_location,omitempty"`
	CheckOutLocation *Location `json:"check_out_location,omitempty"`
	AbsentLocation   *Location `json:"absent_location,omitempty"`
	IsAbsent         bool      `json:"is_absent"`
	AbsentReason     string    `json:"absent_reason,omitempty"`
	AbsentTime       *string   `json:"absent_time,omitempty"`
	WorkMeeting      bool      `json:"work_meeting"`
	WillBeLate       bool      `json:"will_be_late"`
	State            string    `json:"state"`
}
