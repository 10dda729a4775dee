package role_test

import (
	"testing"

	"library-store/internal/domain/role"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	r := role.New(role.StoreManager)

	assert.Equal(t, "StoreManager", r.Name)
	assert.Equal(t, "storemanager", r.NormalizedName)
	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err, "role id should be a UUID")
	assert.NotEqual(t, r.ID, role.New(role.StoreManager).ID, "every role gets a fresh id")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "owner", role.Normalize("Owner"))
	assert.Equal(t, "owner", role.Normalize("  OWNER "))
	assert.Equal(t, []string{"user", "storemanager", "owner"}, role.All())
	assert.Equal(t, []string{"user", "owner"}, role.NormalizeAll([]string{"User", " ", "Owner"}))
}
