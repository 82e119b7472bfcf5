package user

import "context"

type UserService interface {
	GetUser(ctx context.Context, id string) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeleteUser removes the user and pulls their rows out of every
	// daily and monthly report, atomically.
	DeleteUser(ctx context.Context, id string) error
}
