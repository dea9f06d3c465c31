package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	createBucketlist = `INSERT INTO bucketlists (name, created_by)
    VALUES ($1, $2)
    RETURNING id, name, date_created, date_modified, created_by;`

	getBucketlistByID = `SELECT id, name, date_created, date_modified, created_by
    FROM bucketlists
    WHERE id = $1 AND created_by = $2;`

	lockBucketlistByID = `SELECT id
    FROM bucketlists
    WHERE id = $1 AND created_by = $2
    FOR UPDATE;`

	// The id <> $3 clause excludes the record being renamed from the
	// duplicate check; create passes 0, which never matches a real id.
	bucketlistNameExists = `SELECT EXISTS (
        SELECT 1 FROM bucketlists
        WHERE created_by = $1 AND name = $2 AND id <> $3
    );`

	renameBucketlist = `UPDATE bucketlists
    SET name = $1, date_modified = NOW()
    WHERE id = $2 AND created_by = $3
    RETURNING id, name, date_created, date_modified, created_by;`

	deleteBucketlist = `DELETE FROM bucketlists
    WHERE id = $1 AND created_by = $2;`

	deleteBucketlistItems = `DELETE FROM bucketlist_items
    WHERE bucketlist_id = $1;`

	createItem = `INSERT INTO bucketlist_items (name, bucketlist_id)
    VALUES ($1, $2)
    RETURNING id, name, date_created, date_modified, done, bucketlist_id;`

	getItemByID = `SELECT id, name, date_created, date_modified, done, bucketlist_id
    FROM bucketlist_items
    WHERE id = $1 AND bucketlist_id = $2;`

	listItemsByBucketlist = `SELECT id, name, date_created, date_modified, done, bucketlist_id
    FROM bucketlist_items
    WHERE bucketlist_id = $1
    ORDER BY id;`

	listItemsByBucketlists = `SELECT id, name, date_created, date_modified, done, bucketlist_id
    FROM bucketlist_items
    WHERE bucketlist_id = ANY($1)
    ORDER BY id;`

	// Same exclusion convention as bucketlistNameExists.
	itemNameExists = `SELECT EXISTS (
        SELECT 1 FROM bucketlist_items
        WHERE bucketlist_id = $1 AND name = $2 AND id <> $3
    );`

	renameItem = `UPDATE bucketlist_items
    SET name = $1, date_modified = NOW()
    WHERE id = $2 AND bucketlist_id = $3
    RETURNING id, name, date_created, date_modified, done, bucketlist_id;`

	deleteItem = `DELETE FROM bucketlist_items
    WHERE id = $1 AND bucketlist_id = $2;`
)

// buildBucketlistListQuery builds the windowed, optionally search-filtered
// SELECT over an owner's bucketlists. Records are ordered by id, which is
// creation order for a serial primary key.
func buildBucketlistListQuery(userID int64, search string, limit, offset uint64) (string, []any, error) {
	builder := sq.Select("id", "name", "date_created", "date_modified", "created_by").
		From("bucketlists").
		Where(sq.Eq{"created_by": userID}).
		PlaceholderFormat(sq.Dollar)

	if search != "" {
		builder = builder.Where(sq.Like{"name": "%" + search + "%"})
	}

	return builder.OrderBy("id").Limit(limit).Offset(offset).ToSql()
}

// buildBucketlistCountQuery builds the pre-windowing total count for the same
// owner scope and search filter as buildBucketlistListQuery.
func buildBucketlistCountQuery(userID int64, search string) (string, []any, error) {
	builder := sq.Select("COUNT(*)").
		From("bucketlists").
		Where(sq.Eq{"created_by": userID}).
		PlaceholderFormat(sq.Dollar)

	if search != "" {
		builder = builder.Where(sq.Like{"name": "%" + search + "%"})
	}

	return builder.ToSql()
}
