package service

import (
	"context"

	"github.com/mkarpov/go-bucketlist/models"
)

// ─────────────────────────────────────────────
// Repository mocks
// ─────────────────────────────────────────────

// mockUserRepository implements store.UserRepository for unit tests.
// Each method field can be overridden per test case.
type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmailFn(ctx, email)
}

// mockBucketlistRepository implements store.BucketlistRepository for unit tests.
type mockBucketlistRepository struct {
	createFn                  func(ctx context.Context, userID int64, name string) (models.Bucketlist, error)
	getByIDFn                 func(ctx context.Context, userID, id int64) (models.Bucketlist, error)
	listFn                    func(ctx context.Context, userID int64, search string, limit, offset uint64) ([]models.Bucketlist, error)
	countFn                   func(ctx context.Context, userID int64, search string) (int64, error)
	renameFn                  func(ctx context.Context, userID, id int64, name string) (models.Bucketlist, error)
	deleteFn                  func(ctx context.Context, userID, id int64) error
	listItemsForBucketlistsFn func(ctx context.Context, bucketlistIDs []int64) (map[int64][]models.BucketlistItem, error)
}

func (m *mockBucketlistRepository) Create(ctx context.Context, userID int64, name string) (models.Bucketlist, error) {
	return m.createFn(ctx, userID, name)
}

func (m *mockBucketlistRepository) GetByID(ctx context.Context, userID, id int64) (models.Bucketlist, error) {
	return m.getByIDFn(ctx, userID, id)
}

func (m *mockBucketlistRepository) List(ctx context.Context, userID int64, search string, limit, offset uint64) ([]models.Bucketlist, error) {
	return m.listFn(ctx, userID, search, limit, offset)
}

func (m *mockBucketlistRepository) Count(ctx context.Context, userID int64, search string) (int64, error) {
	return m.countFn(ctx, userID, search)
}

func (m *mockBucketlistRepository) Rename(ctx context.Context, userID, id int64, name string) (models.Bucketlist, error) {
	return m.renameFn(ctx, userID, id, name)
}

func (m *mockBucketlistRepository) Delete(ctx context.Context, userID, id int64) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockBucketlistRepository) ListItemsForBucketlists(ctx context.Context, bucketlistIDs []int64) (map[int64][]models.BucketlistItem, error) {
	return m.listItemsForBucketlistsFn(ctx, bucketlistIDs)
}

// mockItemRepository implements store.ItemRepository for unit tests.
type mockItemRepository struct {
	createFn           func(ctx context.Context, bucketlistID int64, name string) (models.BucketlistItem, error)
	getByIDFn          func(ctx context.Context, bucketlistID, itemID int64) (models.BucketlistItem, error)
	listByBucketlistFn func(ctx context.Context, bucketlistID int64) ([]models.BucketlistItem, error)
	renameFn           func(ctx context.Context, bucketlistID, itemID int64, name string) (models.BucketlistItem, error)
	deleteFn           func(ctx context.Context, bucketlistID, itemID int64) error
}

func (m *mockItemRepository) Create(ctx context.Context, bucketlistID int64, name string) (models.BucketlistItem, error) {
	return m.createFn(ctx, bucketlistID, name)
}

func (m *mockItemRepository) GetByID(ctx context.Context, bucketlistID, itemID int64) (models.BucketlistItem, error) {
	return m.getByIDFn(ctx, bucketlistID, itemID)
}

func (m *mockItemRepository) ListByBucketlist(ctx context.Context, bucketlistID int64) ([]models.BucketlistItem, error) {
	return m.listByBucketlistFn(ctx, bucketlistID)
}

func (m *mockItemRepository) Rename(ctx context.Context, bucketlistID, itemID int64, name string) (models.BucketlistItem, error) {
	return m.renameFn(ctx, bucketlistID, itemID, name)
}

func (m *mockItemRepository) Delete(ctx context.Context, bucketlistID, itemID int64) error {
	return m.deleteFn(ctx, bucketlistID, itemID)
}

// ─────────────────────────────────────────────
// Shared helpers
// ─────────────────────────────────────────────

// strPtr returns a pointer to s, used to build Credentials and name payloads.
func strPtr(s string) *string {
	return &s
}
