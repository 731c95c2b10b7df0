package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ahrav/go-userflow/internal/domain"
)

// setupTestStore creates an in-memory SQLite database for testing.
// TranslateError mirrors the production Postgres config so uniqueness
// violations surface as domain.ErrDuplicateUser here too.
func setupTestStore(t *testing.T) (*UserStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")

	st := NewUserStore(db)
	require.NoError(t, st.Migrate(), "migrate")
	return st, db
}

func createTestUser(t *testing.T, st *UserStore, name, email, mobile string) *domain.User {
	t.Helper()
	u, err := st.Create(context.Background(), domain.CreateUserInput{
		Name:   name,
		Email:  email,
		Mobile: mobile,
	})
	require.NoError(t, err)
	return u
}

func TestUserStoreCreateAndGet(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")
	assert.Positive(t, created.ID)
	assert.False(t, created.CreatedOn.IsZero(), "created_on should be stamped")

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)
	assert.Equal(t, "john@x.com", got.Email)
	assert.Equal(t, "1234567890", got.Mobile)
	assert.False(t, got.SuspendStatus)
	assert.Nil(t, got.DeletedOn)
}

func TestUserStoreGetNotFound(t *testing.T) {
	st, _ := setupTestStore(t)

	_, err := st.Get(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserStoreCreateDuplicateMobile(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	first := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")

	_, err := st.Create(ctx, domain.CreateUserInput{
		Name:   "Impostor",
		Email:  "other@x.com",
		Mobile: "1234567890",
	})
	require.ErrorIs(t, err, domain.ErrDuplicateUser)

	// The winner is still findable by the natural key.
	id, err := st.FindIDByMobile(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
}

func TestUserStoreCreateDuplicateEmail(t *testing.T) {
	st, _ := setupTestStore(t)

	createTestUser(t, st, "John Doe", "john@x.com", "1234567890")

	// A uniqueness violation on email maps to the same duplicate error
	// as mobile; the store does not distinguish constraints.
	_, err := st.Create(context.Background(), domain.CreateUserInput{
		Name:   "Other",
		Email:  "john@x.com",
		Mobile: "0987654321",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestUserStoreFindIDByMobile(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := st.FindIDByMobile(ctx, "1234567890")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	created := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")
	id, err := st.FindIDByMobile(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestUserStoreUpdate(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")

	name := "John Q. Doe"
	suspend := true
	in := domain.UpdateUserInput{Name: &name, SuspendStatus: &suspend, UpdatedBy: "admin"}

	outcome, err := st.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.True(t, outcome.Updated)
	assert.Equal(t, created.ID, outcome.UserID)

	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Q. Doe", got.Name)
	assert.True(t, got.SuspendStatus)
	assert.Equal(t, "admin", got.UpdatedBy)
	assert.Equal(t, "john@x.com", got.Email, "untouched field preserved")
}

func TestUserStoreUpdateIdempotent(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")

	name := "Renamed"
	in := domain.UpdateUserInput{Name: &name}

	first, err := st.Update(ctx, created.ID, in)
	require.NoError(t, err)
	second, err := st.Update(ctx, created.ID, in)
	require.NoError(t, err)

	// Re-applying identical fields succeeds and leaves the same state.
	assert.Equal(t, first.UserID, second.UserID)
	got, err := st.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestUserStoreUpdateMissingID(t *testing.T) {
	st, _ := setupTestStore(t)

	name := "Nobody"
	outcome, err := st.Update(context.Background(), 12345, domain.UpdateUserInput{Name: &name})
	require.NoError(t, err, "zero affected rows is the contract, not an error")
	assert.False(t, outcome.Updated)
}

func TestUserStoreUpdateDuplicateMobile(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, st, "John Doe", "john@x.com", "1234567890")
	other := createTestUser(t, st, "Jane Doe", "jane@x.com", "0987654321")

	taken := "1234567890"
	_, err := st.Update(ctx, other.ID, domain.UpdateUserInput{Mobile: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateUser)
}

func TestUserStoreListPagination(t *testing.T) {
	st, _ := setupTestStore(t)
	ctx := context.Background()

	a := createTestUser(t, st, "A", "a@x.com", "1111111111")
	b := createTestUser(t, st, "B", "b@x.com", "2222222222")

	page1, err := st.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, page1, 1)

	page2, err := st.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page2, 1)

	// Two pages of one over two records: no overlap, no gap, id ascending.
	assert.Equal(t, a.ID, page1[0].ID)
	assert.Equal(t, b.ID, page2[0].ID)
	assert.Less(t, page1[0].ID, page2[0].ID)

	empty, err := st.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserStoreSoftDeleteHidesRecord(t *testing.T) {
	st, db := setupTestStore(t)
	ctx := context.Background()

	created := createTestUser(t, st, "John Doe", "john@x.com", "1234567890")

	// Stamp deleted_on directly; a non-null value marks the row as
	// logically absent from every normal query while the row persists.
	require.NoError(t, db.Model(&userModel{}).
		Where("id = ?", created.ID).
		Updates(map[string]any{"deleted_on": time.Now(), "deleted_by": "admin"}).Error)

	_, err := st.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = st.FindIDByMobile(ctx, "1234567890")
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "soft-deleted mobile no longer blocks duplicates")

	page, err := st.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page)

	// The row itself is still there.
	var count int64
	require.NoError(t, db.Unscoped().Model(&userModel{}).Where("id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
