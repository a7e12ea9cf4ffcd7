package api

import "context"

// Client defines the remote operations the rest of the application depends
// on. All methods honor context cancellation.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	Users(ctx context.Context, filters UserFilters) ([]User, error)
	User(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, id int64, req CreateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
	ActivateUser(ctx context.Context, id int64) (*User, error)
	DeactivateUser(ctx context.Context, id int64) (*User, error)

	Stats(ctx context.Context) (*UserStats, error)
	ActiveUsers(ctx context.Context) ([]User, error)
	InactiveUsers(ctx context.Context) ([]User, error)
	UsersByAgeRange(ctx context.Context, minAge, maxAge int) ([]User, error)

	GenerateTokenFor(ctx context.Context, email string) (*GeneratedToken, error)
	GenerateMyToken(ctx context.Context) (*GeneratedToken, error)

	Health(ctx context.Context) (*Health, error)
}
