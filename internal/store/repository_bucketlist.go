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

// bucketlistRepository is the PostgreSQL-backed implementation of
// [BucketlistRepository].
//
// Mutations that depend on a uniqueness check (create, rename) run the check
// and the write inside a single transaction; a partial unique index on
// (created_by, name) backstops concurrent writers, so a race surfaces as a
// unique violation and is mapped to [ErrBucketlistNameTaken].
type bucketlistRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBucketlistRepository constructs a [BucketlistRepository] backed by the
// provided database connection and logger.
func NewBucketlistRepository(db *DB, logger *logger.Logger) BucketlistRepository {
	logger.Debug().Msg("creating bucketlist repository")
	return &bucketlistRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a bucketlist for the given owner after verifying that no
// sibling carries the same name.
//
// Returns [ErrBucketlistNameTaken] when the owner already has a bucketlist
// with this exact name.
func (r *bucketlistRepository) Create(ctx context.Context, userID int64, name string) (models.Bucketlist, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Create").Msg("error beginning transaction")
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	taken, err := nameTaken(ctx, tx, bucketlistNameExists, userID, name, 0)
	if err != nil {
		return models.Bucketlist{}, err
	}
	if taken {
		return models.Bucketlist{}, ErrBucketlistNameTaken
	}

	var created models.Bucketlist
	row := tx.QueryRowContext(ctx, createBucketlist, name, userID)
	if err := row.Scan(&created.ID, &created.Name, &created.DateCreated, &created.DateModified, &created.CreatedBy); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Bucketlist{}, ErrBucketlistNameTaken
		}
		log.Err(err).Str("func", "*bucketlistRepository.Create").Msg("error: scanning error")
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := tx.Commit(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Bucketlist{}, ErrBucketlistNameTaken
		}
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// GetByID retrieves a single bucketlist scoped by its owner.
//
// Returns [ErrBucketlistNotFound] when no record with this id exists within
// the owner's scope; an id owned by another user yields the same error.
func (r *bucketlistRepository) GetByID(ctx context.Context, userID, id int64) (models.Bucketlist, error) {
	log := logger.FromContext(ctx)

	var found models.Bucketlist
	row := r.db.QueryRowContext(ctx, getBucketlistByID, id, userID)
	if err := row.Scan(&found.ID, &found.Name, &found.DateCreated, &found.DateModified, &found.CreatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bucketlist{}, ErrBucketlistNotFound
		}
		log.Err(err).Str("func", "*bucketlistRepository.GetByID").Msg("error: scanning error")
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// List returns one page of the owner's bucketlists in creation order,
// optionally restricted to names containing search as a substring.
func (r *bucketlistRepository) List(ctx context.Context, userID int64, search string, limit, offset uint64) ([]models.Bucketlist, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildBucketlistListQuery(userID, search, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.List").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.List").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bucketlists := make([]models.Bucketlist, 0)
	for rows.Next() {
		var b models.Bucketlist
		if err := rows.Scan(&b.ID, &b.Name, &b.DateCreated, &b.DateModified, &b.CreatedBy); err != nil {
			log.Err(err).Str("func", "*bucketlistRepository.List").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		bucketlists = append(bucketlists, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bucketlists, nil
}

// Count returns the total number of the owner's bucketlists matching the
// search filter, before any pagination window is applied.
func (r *bucketlistRepository) Count(ctx context.Context, userID int64, search string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildBucketlistCountQuery(userID, search)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Count").Msg("error building count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Count").Msg("error: scanning error")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return total, nil
}

// Rename updates a bucketlist's name and bumps its modification timestamp.
// The duplicate check excludes the record itself, so renaming a bucketlist to
// its current name succeeds.
//
// Returns [ErrBucketlistNameTaken] on a duplicate sibling name and
// [ErrBucketlistNotFound] when the id does not resolve within the owner's
// scope.
func (r *bucketlistRepository) Rename(ctx context.Context, userID, id int64, name string) (models.Bucketlist, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Rename").Msg("error beginning transaction")
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	taken, err := nameTaken(ctx, tx, bucketlistNameExists, userID, name, id)
	if err != nil {
		return models.Bucketlist{}, err
	}
	if taken {
		return models.Bucketlist{}, ErrBucketlistNameTaken
	}

	var renamed models.Bucketlist
	row := tx.QueryRowContext(ctx, renameBucketlist, name, id, userID)
	if err := row.Scan(&renamed.ID, &renamed.Name, &renamed.DateCreated, &renamed.DateModified, &renamed.CreatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Bucketlist{}, ErrBucketlistNotFound
		}
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Bucketlist{}, ErrBucketlistNameTaken
		}
		log.Err(err).Str("func", "*bucketlistRepository.Rename").Msg("error: scanning error")
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := tx.Commit(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Bucketlist{}, ErrBucketlistNameTaken
		}
		return models.Bucketlist{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return renamed, nil
}

// Delete removes a bucketlist and all of its items in a single transaction.
// Items are deleted before the parent so the foreign key never blocks the
// removal; the parent row is locked first to pin the ownership check.
//
// Returns [ErrBucketlistNotFound] when the id does not resolve within the
// owner's scope.
func (r *bucketlistRepository) Delete(ctx context.Context, userID, id int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Delete").Msg("error beginning transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var lockedID int64
	if err := tx.QueryRowContext(ctx, lockBucketlistByID, id, userID).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBucketlistNotFound
		}
		log.Err(err).Str("func", "*bucketlistRepository.Delete").Msg("error locking bucketlist row")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deleteBucketlistItems, id); err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Delete").Msg("error deleting bucketlist items")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deleteBucketlist, id, userID); err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.Delete").Msg("error deleting bucketlist")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ListItemsForBucketlists batch-fetches the items of all given bucketlists
// and groups them by parent id. Used to embed the nested items collection
// into paginated list responses without one query per bucketlist.
func (r *bucketlistRepository) ListItemsForBucketlists(ctx context.Context, bucketlistIDs []int64) (map[int64][]models.BucketlistItem, error) {
	log := logger.FromContext(ctx)

	grouped := make(map[int64][]models.BucketlistItem, len(bucketlistIDs))
	if len(bucketlistIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.db.QueryContext(ctx, listItemsByBucketlists, bucketlistIDs)
	if err != nil {
		log.Err(err).Str("func", "*bucketlistRepository.ListItemsForBucketlists").Msg("error executing items query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.BucketlistItem
		if err := rows.Scan(&item.ID, &item.Name, &item.DateCreated, &item.DateModified, &item.Done, &item.BelongsTo); err != nil {
			log.Err(err).Str("func", "*bucketlistRepository.ListItemsForBucketlists").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		grouped[item.BelongsTo] = append(grouped[item.BelongsTo], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return grouped, nil
}

// nameTaken runs one of the *NameExists queries inside the given transaction.
// excludeID disables the self-exclusion when 0 (no real record has id 0).
func nameTaken(ctx context.Context, tx *sql.Tx, query string, scopeID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, query, scopeID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}
