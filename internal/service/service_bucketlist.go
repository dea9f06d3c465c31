package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mkarpov/go-bucketlist/internal/config"
	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/models"
)

// Client-facing validation messages for the name payload.
const (
	MsgNameMissing         = "Parameter name missing."
	MsgBucketlistNameEmpty = "Bucketlist name should not be empty."
	MsgItemNameEmpty       = "Bucketlist item name should not be empty."
)

// bucketlistsPath is the base path used when building pagination links.
const bucketlistsPath = "/bucketlists"

// bucketlistService is the concrete implementation of BucketlistService.
// All repository calls are scoped by the acting owner's user id.
type bucketlistService struct {
	bucketlistRepository store.BucketlistRepository

	// defaultLimit is used when the client omits the limit parameter or
	// supplies one that cannot be parsed.
	defaultLimit int

	// maxLimit caps the per-page record count; larger values are silently
	// reduced, not rejected.
	maxLimit int

	logger *logger.Logger
}

// NewBucketlistService constructs a BucketlistService wired to the given
// repository with pagination settings from cfg.
func NewBucketlistService(bucketlistRepository store.BucketlistRepository, cfg config.Pagination, logger *logger.Logger) BucketlistService {
	return &bucketlistService{
		bucketlistRepository: bucketlistRepository,
		defaultLimit:         cfg.DefaultLimit,
		maxLimit:             cfg.MaxLimit,
		logger:               logger,
	}
}

// Create validates the name payload and creates a bucketlist for the owner.
//
// Returns a *ValidationError for a missing or empty name, or
// store.ErrBucketlistNameTaken when the owner already has a bucketlist with
// this name.
func (s *bucketlistService) Create(ctx context.Context, userID int64, name *string) (models.Bucketlist, error) {
	if err := validateName(name, MsgBucketlistNameEmpty); err != nil {
		return models.Bucketlist{}, err
	}

	created, err := s.bucketlistRepository.Create(ctx, userID, *name)
	if err != nil {
		return models.Bucketlist{}, err
	}

	// A fresh bucketlist has no items yet; an empty slice keeps the items key
	// a JSON array in the response.
	created.Items = make([]models.BucketlistItem, 0)

	return created, nil
}

// Get retrieves a single bucketlist within the owner's scope, with its items
// embedded.
func (s *bucketlistService) Get(ctx context.Context, userID, id int64) (models.Bucketlist, error) {
	bucketlist, err := s.bucketlistRepository.GetByID(ctx, userID, id)
	if err != nil {
		return models.Bucketlist{}, err
	}

	return s.withItems(ctx, bucketlist)
}

// List assembles one page of the owner's bucketlists with nested items and
// navigation links.
//
// Parameter handling mirrors the API contract exactly: an unparseable limit
// falls back to the default, a parsed limit above the maximum is clamped, an
// unparseable page falls back to 1, and a page or limit below 1 after
// parsing/clamping fails with ErrInvalidPageOrLimit.
func (s *bucketlistService) List(ctx context.Context, userID int64, query ListQuery) (models.BucketlistPage, error) {
	log := logger.FromContext(ctx)

	limit, err := strconv.Atoi(query.Limit)
	if err != nil {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	page, err := strconv.Atoi(query.Page)
	if err != nil {
		page = 1
	}

	if limit < 1 || page < 1 {
		return models.BucketlistPage{}, ErrInvalidPageOrLimit
	}

	total, err := s.bucketlistRepository.Count(ctx, userID, query.Search)
	if err != nil {
		log.Err(err).Msg("counting bucketlists failed")
		return models.BucketlistPage{}, fmt.Errorf("counting bucketlists failed: %w", err)
	}

	offset := uint64(page-1) * uint64(limit)
	bucketlists, err := s.bucketlistRepository.List(ctx, userID, query.Search, uint64(limit), offset)
	if err != nil {
		log.Err(err).Msg("listing bucketlists failed")
		return models.BucketlistPage{}, fmt.Errorf("listing bucketlists failed: %w", err)
	}

	ids := make([]int64, 0, len(bucketlists))
	for _, b := range bucketlists {
		ids = append(ids, b.ID)
	}

	itemsByBucketlist, err := s.bucketlistRepository.ListItemsForBucketlists(ctx, ids)
	if err != nil {
		log.Err(err).Msg("fetching nested items failed")
		return models.BucketlistPage{}, fmt.Errorf("fetching nested items failed: %w", err)
	}

	for i := range bucketlists {
		items := itemsByBucketlist[bucketlists[i].ID]
		if items == nil {
			items = make([]models.BucketlistItem, 0)
		}
		bucketlists[i].Items = items
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	// The page parameter is omitted from the previous-page link when it
	// would be 1.
	var prevPage string
	if page == 1 {
		prevPage = fmt.Sprintf("%s?limit=%d", bucketlistsPath, limit)
	} else {
		prevPage = fmt.Sprintf("%s?limit=%d&page=%d", bucketlistsPath, limit, page-1)
	}

	var nextPage *string
	if page < totalPages {
		link := fmt.Sprintf("%s?limit=%d&page=%d", bucketlistsPath, limit, page+1)
		nextPage = &link
	}

	return models.BucketlistPage{
		Page:         page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   totalPages,
		PrevPage:     prevPage,
		NextPage:     nextPage,
		Items:        bucketlists,
	}, nil
}

// Rename renames the bucketlist. The record is resolved within the owner's
// scope before the name payload is validated, so an unknown id yields
// not-found even when the payload is also invalid. The uniqueness check
// excludes the record itself, so a self-rename succeeds.
func (s *bucketlistService) Rename(ctx context.Context, userID, id int64, name *string) (models.Bucketlist, error) {
	if _, err := s.bucketlistRepository.GetByID(ctx, userID, id); err != nil {
		return models.Bucketlist{}, err
	}

	if err := validateName(name, MsgBucketlistNameEmpty); err != nil {
		return models.Bucketlist{}, err
	}

	renamed, err := s.bucketlistRepository.Rename(ctx, userID, id, *name)
	if err != nil {
		return models.Bucketlist{}, err
	}

	return s.withItems(ctx, renamed)
}

// Delete removes the bucketlist and all of its items.
func (s *bucketlistService) Delete(ctx context.Context, userID, id int64) error {
	return s.bucketlistRepository.Delete(ctx, userID, id)
}

// withItems embeds the bucketlist's items as a non-nil slice so the items key
// always serializes as a JSON array.
func (s *bucketlistService) withItems(ctx context.Context, bucketlist models.Bucketlist) (models.Bucketlist, error) {
	itemsByBucketlist, err := s.bucketlistRepository.ListItemsForBucketlists(ctx, []int64{bucketlist.ID})
	if err != nil {
		return models.Bucketlist{}, fmt.Errorf("fetching nested items failed: %w", err)
	}

	items := itemsByBucketlist[bucketlist.ID]
	if items == nil {
		items = make([]models.BucketlistItem, 0)
	}
	bucketlist.Items = items

	return bucketlist, nil
}

// validateName enforces the shared name-payload ladder: the key must be
// present (nil means missing) and the value must be non-empty.
func validateName(name *string, emptyMessage string) error {
	if name == nil {
		return newValidationError(MsgNameMissing)
	}
	if *name == "" {
		return newValidationError(emptyMessage)
	}
	return nil
}
