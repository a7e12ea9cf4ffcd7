package api

// User is the backend's user representation. Ids are issued exclusively by
// the backend; the client never invents one.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Age       int    `json:"age"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// CreateUserRequest is the body for both create and update calls.
type CreateUserRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,phone"`
	Age    int    `json:"age" validate:"gte=0,lte=120"`
	Active bool   `json:"active"`
}

// UserFilters describes an optional-field query. A nil field means "no
// constraint", which is distinct from an empty string or zero.
type UserFilters struct {
	Name   *string
	MinAge *int
	MaxAge *int
	Active *bool
}

// UserStats is the backend's aggregate snapshot.
type UserStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	ActiveUsers   int64 `json:"activeUsers"`
	InactiveUsers int64 `json:"inactiveUsers"`
}

// LoginRequest authenticates an admin session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token and the authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// GeneratedToken is the result of the token-generation endpoints.
type GeneratedToken struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// Health mirrors the backend health report.
type Health struct {
	Status      string            `json:"status"`
	Timestamp   string            `json:"timestamp"`
	Database    HealthComponent   `json:"database"`
	System      map[string]any    `json:"system"`
	Application HealthApplication `json:"application"`
}

type HealthComponent struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthApplication struct {
	Status        string `json:"status"`
	TotalUsers    int64  `json:"totalUsers"`
	ActiveUsers   int64  `json:"activeUsers"`
	InactiveUsers int64  `json:"inactiveUsers"`
	Error         string `json:"error,omitempty"`
}
