package service

import (
	"context"

	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/models"
)

// itemService is the concrete implementation of ItemService.
//
// Every operation resolves the parent bucketlist within the owner's scope
// before touching the item, so a bucketlist owned by another user fails with
// store.ErrBucketlistNotFound before any item lookup runs.
type itemService struct {
	bucketlistRepository store.BucketlistRepository
	itemRepository       store.ItemRepository

	logger *logger.Logger
}

// NewItemService constructs an ItemService wired to the given repositories.
func NewItemService(bucketlistRepository store.BucketlistRepository, itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		bucketlistRepository: bucketlistRepository,
		itemRepository:       itemRepository,
		logger:               logger,
	}
}

// Create validates the name payload and adds an item to the bucketlist.
func (s *itemService) Create(ctx context.Context, userID, bucketlistID int64, name *string) (models.BucketlistItem, error) {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, bucketlistID); err != nil {
		return models.BucketlistItem{}, err
	}

	if err := validateName(name, MsgItemNameEmpty); err != nil {
		return models.BucketlistItem{}, err
	}

	return s.itemRepository.Create(ctx, bucketlistID, *name)
}

// Get retrieves a single item after resolving its parent bucketlist within
// the owner's scope.
func (s *itemService) Get(ctx context.Context, userID, bucketlistID, itemID int64) (models.BucketlistItem, error) {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, bucketlistID); err != nil {
		return models.BucketlistItem{}, err
	}

	return s.itemRepository.GetByID(ctx, bucketlistID, itemID)
}

// ListByBucketlist returns all items of the bucketlist, unpaginated.
func (s *itemService) ListByBucketlist(ctx context.Context, userID, bucketlistID int64) ([]models.BucketlistItem, error) {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, bucketlistID); err != nil {
		return nil, err
	}

	return s.itemRepository.ListByBucketlist(ctx, bucketlistID)
}

// Rename renames the item. Both the parent bucketlist and the item are
// resolved (in that order) before the name payload is validated, so lookup
// failures yield not-found even when the payload is also invalid. The
// uniqueness check excludes the record itself, so a self-rename succeeds.
func (s *itemService) Rename(ctx context.Context, userID, bucketlistID, itemID int64, name *string) (models.BucketlistItem, error) {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, bucketlistID); err != nil {
		return models.BucketlistItem{}, err
	}

	if _, err := s.itemRepository.GetByID(ctx, bucketlistID, itemID); err != nil {
		return models.BucketlistItem{}, err
	}

	if err := validateName(name, MsgItemNameEmpty); err != nil {
		return models.BucketlistItem{}, err
	}

	return s.itemRepository.Rename(ctx, bucketlistID, itemID, *name)
}

// Delete removes a single item from the bucketlist.
func (s *itemService) Delete(ctx context.Context, userID, bucketlistID, itemID int64) error {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, bucketlistID); err != nil {
		return err
	}

	return s.itemRepository.Delete(ctx, bucketlistID, itemID)
}
