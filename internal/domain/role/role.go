package role

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Role names of the closed set known to the store.
const (
	User         = "User"
	StoreManager = "StoreManager"
	Owner        = "Owner"
)

type Role struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
}

func New(name string) Role {
	return Role{
		ID:             uuid.NewString(),
		Name:           name,
		NormalizedName: Normalize(name),
	}
}

// Normalize returns the case-insensitive comparison key for a role name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// All returns the normalized names of every known role.
func All() []string {
	return []string{Normalize(User), Normalize(StoreManager), Normalize(Owner)}
}

func NormalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = Normalize(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

type Repository interface {
	Count(ctx context.Context) (int64, error)

	InsertMany(ctx context.Context, roles []Role) error

	FindByNormalizedName(ctx context.Context, normalizedName string) (*Role, error)

	AssignToCustomer(ctx context.Context, customerID int64, roleID string) error
}
