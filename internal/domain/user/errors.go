package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrPhoneNumberExists      = errors.New("phone number already in use")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
