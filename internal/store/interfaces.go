package store

import (
	"context"

	"github.com/mkarpov/go-bucketlist/models"
)

// UserRepository persists user identities and their password hashes.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// BucketlistRepository provides owner-scoped CRUD over bucketlists.
// Every lookup is filtered by the owning user id, so an id belonging to
// another owner is indistinguishable from a nonexistent one.
type BucketlistRepository interface {
	Create(ctx context.Context, userID int64, name string) (models.Bucketlist, error)
	GetByID(ctx context.Context, userID, id int64) (models.Bucketlist, error)
	List(ctx context.Context, userID int64, search string, limit, offset uint64) ([]models.Bucketlist, error)
	Count(ctx context.Context, userID int64, search string) (int64, error)
	Rename(ctx context.Context, userID, id int64, name string) (models.Bucketlist, error)
	Delete(ctx context.Context, userID, id int64) error
	ListItemsForBucketlists(ctx context.Context, bucketlistIDs []int64) (map[int64][]models.BucketlistItem, error)
}

// ItemRepository provides bucketlist-scoped CRUD over items. The caller is
// responsible for resolving the parent bucketlist within the owner's scope
// before invoking any method.
type ItemRepository interface {
	Create(ctx context.Context, bucketlistID int64, name string) (models.BucketlistItem, error)
	GetByID(ctx context.Context, bucketlistID, itemID int64) (models.BucketlistItem, error)
	ListByBucketlist(ctx context.Context, bucketlistID int64) ([]models.BucketlistItem, error)
	Rename(ctx context.Context, bucketlistID, itemID int64, name string) (models.BucketlistItem, error)
	Delete(ctx context.Context, bucketlistID, itemID int64) error
}
