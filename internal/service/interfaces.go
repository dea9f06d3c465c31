package service

import (
	"context"

	"github.com/mkarpov/go-bucketlist/models"
)

// Credentials is the flat email/password payload of the register and login
// endpoints. Pointer fields distinguish an absent key (nil) from a key
// provided with an empty value, which produce different validation messages.
type Credentials struct {
	Email    *string
	Password *string
}

// AuthService handles user registration, credential verification, and the
// bearer-token lifecycle.
type AuthService interface {
	Register(ctx context.Context, creds Credentials) (models.User, error)
	Login(ctx context.Context, creds Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ListQuery carries the raw pagination and search query parameters of a
// bucketlist listing request. Values are kept as strings because parse
// failures fall back to defaults instead of being rejected.
type ListQuery struct {
	Limit  string
	Page   string
	Search string
}

// BucketlistService provides owner-scoped bucketlist operations with name
// validation and paginated, searchable listing.
type BucketlistService interface {
	Create(ctx context.Context, userID int64, name *string) (models.Bucketlist, error)
	Get(ctx context.Context, userID, id int64) (models.Bucketlist, error)
	List(ctx context.Context, userID int64, query ListQuery) (models.BucketlistPage, error)
	Rename(ctx context.Context, userID, id int64, name *string) (models.Bucketlist, error)
	Delete(ctx context.Context, userID, id int64) error
}

// ItemService provides item operations scoped by the parent bucketlist,
// which is always resolved within the owner's scope first.
type ItemService interface {
	Create(ctx context.Context, userID, bucketlistID int64, name *string) (models.BucketlistItem, error)
	Get(ctx context.Context, userID, bucketlistID, itemID int64) (models.BucketlistItem, error)
	ListByBucketlist(ctx context.Context, userID, bucketlistID int64) ([]models.BucketlistItem, error)
	Rename(ctx context.Context, userID, bucketlistID, itemID int64, name *string) (models.BucketlistItem, error)
	Delete(ctx context.Context, userID, bucketlistID, itemID int64) error
}
