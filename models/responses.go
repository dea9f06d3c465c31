package models

// Message is the JSON envelope used for every response that carries only a
// human-readable status or error description.
type Message struct {
	Message string `json:"message"`
}

// LoginResponse is returned on successful login and carries the freshly
// issued bearer token alongside the success message.
type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// BucketlistPage is the paginated listing response for bucketlists.
//
// TotalItems counts all matches after search filtering and before windowing;
// TotalPages is ceil(TotalItems/ItemsPerPage). PrevPage always carries a
// navigation link (the page parameter is omitted when it would be 1);
// NextPage is null when the current page is the last one.
type BucketlistPage struct {
	Page         int          `json:"page"`
	ItemsPerPage int          `json:"items_per_page"`
	TotalItems   int64        `json:"total_items"`
	TotalPages   int          `json:"total_pages"`
	PrevPage     string       `json:"prev_page"`
	NextPage     *string      `json:"next_page"`
	Items        []Bucketlist `json:"items"`
}
