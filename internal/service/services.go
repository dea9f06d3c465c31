package service

import (
	"github.com/mkarpov/go-bucketlist/internal/config"
	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/store"
)

// Services bundles all business-logic implementations behind their
// interfaces for injection into the transport layer.
type Services struct {
	AuthService       AuthService
	BucketlistService BucketlistService
	ItemService       ItemService
}

// NewServices wires every service to the repositories and configuration.
func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(repositories.UserRepository, cfg.Auth, logger),
		BucketlistService: NewBucketlistService(repositories.BucketlistRepository, cfg.Pagination, logger),
		ItemService:       NewItemService(repositories.BucketlistRepository, repositories.ItemRepository, logger),
	}
}
