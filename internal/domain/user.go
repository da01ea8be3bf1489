package domain

import (
	"context"
	"time"
)

// Role is an application role.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleEventOwner Role = "event_owner"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleEventOwner:
		return true
	}
	return false
}

// User represents a registered user profile.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithStats is a user profile with derived attributes for admin views.
// LastLogin is the profile's updated_at, used as a proxy for last activity.
// swagger:model UserWithStats
type UserWithStats struct {
	User
	EventsCreated int       `json:"events_created"`
	LastLogin     time.Time `json:"last_login"`
}

// CreateUserInput holds the fields for administrative user creation.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Password  string
}

// UpdateUserInput holds partial fields for updating a user profile.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *Role
}

// SystemStats holds aggregate user counts for the admin dashboard.
// ActiveUsers counts profiles created in the last 7 days; account creation is
// a proxy for activity, not real sign-in tracking.
// swagger:model SystemStats
type SystemStats struct {
	TotalUsers  int `json:"total_users"`
	AdminCount  int `json:"admin_count"`
	StaffCount  int `json:"staff_count"`
	OwnerCount  int `json:"owner_count"`
	ActiveUsers int `json:"active_users"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// Identity is the set of claims carried by a session token. It is the
// fallback source for identity resolution when the profiles table is absent.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      Role
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(identity Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the embedded identity.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// UserRepository defines the interface for user profile storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ListAll returns all profiles newest-created first with their created
	// event counts, computed in a single aggregated query.
	ListAll(ctx context.Context) ([]*UserWithStats, error)
	ListByRole(ctx context.Context, role Role) ([]*UserWithStats, error)
	GetWithStats(ctx context.Context, id string) (*UserWithStats, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id string) error
	SystemStats(ctx context.Context) (*SystemStats, error)
}

// UserService defines administrative user management.
type UserService interface {
	ListUsers(ctx context.Context) ([]*UserWithStats, error)
	GetUser(ctx context.Context, id string) (*UserWithStats, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*UserWithStats, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*UserWithStats, error)
	// DeleteUser removes the identity and its profile. Events and RSVPs
	// created by the user are not deleted; they are orphaned by reference.
	DeleteUser(ctx context.Context, id string) error
	ListUsersByRole(ctx context.Context, role Role) ([]*UserWithStats, error)
	SystemStats(ctx context.Context) (*SystemStats, error)
}

// AuthService defines login, registration, and identity resolution.
type AuthService interface {
	// Login authenticates by email and password and returns a session token
	// with the resolved user.
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Register(ctx context.Context, email, password, firstName, lastName string, role Role) (token string, user *User, err error)
	// CurrentUser resolves the identity behind a verified token. The stored
	// profile is preferred; when it is unavailable the token's own claims are
	// used, with the role defaulting to event_owner.
	CurrentUser(ctx context.Context, identity *Identity) (*User, error)
}
