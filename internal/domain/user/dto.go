package user

import (
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/validator"
)

type UpdateUserRequest struct {
	ID            string  `json:"-"`
	Username      *string `json:"username"`
	UniqueNumber  *string `json:"unique_number"`
	CompanyBranch *string `json:"company_branch"`
	PhoneNumber   *string `json:"phone_number"`
	Password      *string `json:"password"`

	// Set by the service after hashing, never from the request body.
	PasswordHash *string `json:"-"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Username != nil && validator.IsEmpty(*r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must not be empty",
		})
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}

	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID            string `json:"id"`
	UniqueNumber  string `json:"unique_number"`
	Username      string `json:"username"`
	PhoneNumber   string `json:"phone_number"`
	CompanyBranch string `json:"company_branch"`
	Role          string `json:"role"`
	CreatedAt     string `json:"created_at"`
}
