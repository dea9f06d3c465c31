package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("no user was found")

	// ErrBucketlistNotFound is returned when a bucketlist lookup scoped by
	// owner matches no record. An id that exists but belongs to another owner
	// produces the same error as a nonexistent id.
	ErrBucketlistNotFound = errors.New("bucketlist was not found")

	// ErrItemNotFound is returned when an item lookup scoped by its parent
	// bucketlist matches no record.
	ErrItemNotFound = errors.New("bucketlist item was not found")

	// ErrBucketlistNameTaken is returned when creating or renaming a
	// bucketlist would duplicate a name among the same owner's bucketlists.
	ErrBucketlistNameTaken = errors.New("bucketlist name already taken")

	// ErrItemNameTaken is returned when creating or renaming an item would
	// duplicate a name within the same bucketlist.
	ErrItemNameTaken = errors.New("bucketlist item name already taken")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
