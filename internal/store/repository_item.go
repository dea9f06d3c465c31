package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// All operations are scoped by the parent bucketlist id; resolving that
// bucketlist within the owner's scope is the caller's responsibility.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an item into the given bucketlist after verifying that no
// sibling item carries the same name.
//
// Returns [ErrItemNameTaken] when the bucketlist already contains an item
// with this exact name.
func (r *itemRepository) Create(ctx context.Context, bucketlistID int64, name string) (models.BucketlistItem, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.Create").Msg("error beginning transaction")
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	taken, err := nameTaken(ctx, tx, itemNameExists, bucketlistID, name, 0)
	if err != nil {
		return models.BucketlistItem{}, err
	}
	if taken {
		return models.BucketlistItem{}, ErrItemNameTaken
	}

	var created models.BucketlistItem
	row := tx.QueryRowContext(ctx, createItem, name, bucketlistID)
	if err := row.Scan(&created.ID, &created.Name, &created.DateCreated, &created.DateModified, &created.Done, &created.BelongsTo); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.BucketlistItem{}, ErrItemNameTaken
		}
		log.Err(err).Str("func", "*itemRepository.Create").Msg("error: scanning error")
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := tx.Commit(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.BucketlistItem{}, ErrItemNameTaken
		}
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// GetByID retrieves a single item scoped by its parent bucketlist.
//
// Returns [ErrItemNotFound] when no item with this id exists within the
// bucketlist.
func (r *itemRepository) GetByID(ctx context.Context, bucketlistID, itemID int64) (models.BucketlistItem, error) {
	log := logger.FromContext(ctx)

	var found models.BucketlistItem
	row := r.db.QueryRowContext(ctx, getItemByID, itemID, bucketlistID)
	if err := row.Scan(&found.ID, &found.Name, &found.DateCreated, &found.DateModified, &found.Done, &found.BelongsTo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BucketlistItem{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.GetByID").Msg("error: scanning error")
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// ListByBucketlist returns all items of the given bucketlist in creation
// order. The nested item view is not paginated.
func (r *itemRepository) ListByBucketlist(ctx context.Context, bucketlistID int64) ([]models.BucketlistItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listItemsByBucketlist, bucketlistID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ListByBucketlist").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.BucketlistItem, 0)
	for rows.Next() {
		var item models.BucketlistItem
		if err := rows.Scan(&item.ID, &item.Name, &item.DateCreated, &item.DateModified, &item.Done, &item.BelongsTo); err != nil {
			log.Err(err).Str("func", "*itemRepository.ListByBucketlist").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// Rename updates an item's name and bumps its modification timestamp.
// The duplicate check excludes the record itself, so renaming an item to its
// current name succeeds.
//
// Returns [ErrItemNameTaken] on a duplicate sibling name and [ErrItemNotFound]
// when the id does not resolve within the bucketlist.
func (r *itemRepository) Rename(ctx context.Context, bucketlistID, itemID int64, name string) (models.BucketlistItem, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.Rename").Msg("error beginning transaction")
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	taken, err := nameTaken(ctx, tx, itemNameExists, bucketlistID, name, itemID)
	if err != nil {
		return models.BucketlistItem{}, err
	}
	if taken {
		return models.BucketlistItem{}, ErrItemNameTaken
	}

	var renamed models.BucketlistItem
	row := tx.QueryRowContext(ctx, renameItem, name, itemID, bucketlistID)
	if err := row.Scan(&renamed.ID, &renamed.Name, &renamed.DateCreated, &renamed.DateModified, &renamed.Done, &renamed.BelongsTo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BucketlistItem{}, ErrItemNotFound
		}
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.BucketlistItem{}, ErrItemNameTaken
		}
		log.Err(err).Str("func", "*itemRepository.Rename").Msg("error: scanning error")
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := tx.Commit(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.BucketlistItem{}, ErrItemNameTaken
		}
		return models.BucketlistItem{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return renamed, nil
}

// Delete removes a single item from its bucketlist. No cascade exists below
// items.
//
// Returns [ErrItemNotFound] when the id does not resolve within the
// bucketlist.
func (r *itemRepository) Delete(ctx context.Context, bucketlistID, itemID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteItem, itemID, bucketlistID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.Delete").Msg("error deleting item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
