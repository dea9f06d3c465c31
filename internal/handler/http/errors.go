package http

// Client-facing messages produced by the transport layer. The authentication
// gate messages and their ordering are part of the API contract.
const (
	msgAuthHeaderMissing = "Header with key Authorization missing."
	msgTokenNotProvided  = "Token not provided in the header with key Authorization."
	msgInvalidTokenFmt   = "Invalid token format."
	msgEmptyTokenString  = "Empty token string"
	msgTokenExpired      = "Expired token. Please login to get a new token"
	msgTokenInvalid      = "Invalid token. Please register or login"

	msgInvalidPayload = "Invalid payload was passed."

	msgUserAlreadyExists = "User already exists. Please login."
	msgRegistered        = "You registered successfully. Please log in."
	msgLoggedIn          = "You logged in successfully."
	msgWrongCredentials  = "Invalid email or password, Please try again"

	msgBucketlistNameTakenCreate = "Bucketlist with this name already exists. Edit it or choose another name."
	msgBucketlistNameTakenUpdate = "Bucketlist with this name already exists. Choose another name."
	msgItemNameTaken             = "Bucketlist item with this name already exists in this bucketlist. Choose another name."

	msgBucketlistNotFound = "Bucketlist not found."
	msgItemNotFound       = "Bucketlist item not found."

	msgInvalidPageOrLimit = "Page or Limit must be greater than 1"
)
