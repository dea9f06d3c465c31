package store

import (
	"github.com/mkarpov/go-bucketlist/internal/logger"
)

// Repositories bundles all persistence-layer implementations behind their
// interfaces for injection into the service layer.
type Repositories struct {
	UserRepository       UserRepository
	BucketlistRepository BucketlistRepository
	ItemRepository       ItemRepository
}

// NewRepositories wires every repository to the shared database connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db, logger),
		BucketlistRepository: NewBucketlistRepository(db, logger),
		ItemRepository:       NewItemRepository(db, logger),
	}
}
