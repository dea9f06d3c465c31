package models

import "time"

// Bucketlist is a named collection of items owned by exactly one user.
// Name is unique among the owner's bucketlists; CreatedBy is immutable after
// creation.
type Bucketlist struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	CreatedBy    int64     `json:"created_by"`

	// Items holds the nested items collection. Response assembly always fills
	// it with a non-nil slice so it serializes as a JSON array, never null.
	Items []BucketlistItem `json:"items"`
}

// TableName returns the name of the database table
// associated with the Bucketlist model.
func (b Bucketlist) TableName() string {
	return "bucketlists"
}

// BucketlistItem is a named entry belonging to exactly one bucketlist, with a
// completion flag. Name is unique within its bucketlist; BelongsTo is
// immutable after creation.
type BucketlistItem struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	Done         bool      `json:"done"`
	BelongsTo    int64     `json:"belongs_to"`
}

// TableName returns the name of the database table
// associated with the BucketlistItem model.
func (i BucketlistItem) TableName() string {
	return "bucketlist_items"
}
