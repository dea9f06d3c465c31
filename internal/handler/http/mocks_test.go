package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn    func(ctx context.Context, creds service.Credentials) (models.User, error)
	loginFn       func(ctx context.Context, creds service.Credentials) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, creds service.Credentials) (models.User, error) {
	return m.registerFn(ctx, creds)
}

func (m *mockAuthService) Login(ctx context.Context, creds service.Credentials) (models.User, error) {
	return m.loginFn(ctx, creds)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockBucketlistService implements service.BucketlistService for unit tests.
type mockBucketlistService struct {
	createFn func(ctx context.Context, userID int64, name *string) (models.Bucketlist, error)
	getFn    func(ctx context.Context, userID, id int64) (models.Bucketlist, error)
	listFn   func(ctx context.Context, userID int64, query service.ListQuery) (models.BucketlistPage, error)
	renameFn func(ctx context.Context, userID, id int64, name *string) (models.Bucketlist, error)
	deleteFn func(ctx context.Context, userID, id int64) error
}

func (m *mockBucketlistService) Create(ctx context.Context, userID int64, name *string) (models.Bucketlist, error) {
	return m.createFn(ctx, userID, name)
}

func (m *mockBucketlistService) Get(ctx context.Context, userID, id int64) (models.Bucketlist, error) {
	return m.getFn(ctx, userID, id)
}

func (m *mockBucketlistService) List(ctx context.Context, userID int64, query service.ListQuery) (models.BucketlistPage, error) {
	return m.listFn(ctx, userID, query)
}

func (m *mockBucketlistService) Rename(ctx context.Context, userID, id int64, name *string) (models.Bucketlist, error) {
	return m.renameFn(ctx, userID, id, name)
}

func (m *mockBucketlistService) Delete(ctx context.Context, userID, id int64) error {
	return m.deleteFn(ctx, userID, id)
}

// mockItemService implements service.ItemService for unit tests.
type mockItemService struct {
	createFn           func(ctx context.Context, userID, bucketlistID int64, name *string) (models.BucketlistItem, error)
	getFn              func(ctx context.Context, userID, bucketlistID, itemID int64) (models.BucketlistItem, error)
	listByBucketlistFn func(ctx context.Context, userID, bucketlistID int64) ([]models.BucketlistItem, error)
	renameFn           func(ctx context.Context, userID, bucketlistID, itemID int64, name *string) (models.BucketlistItem, error)
	deleteFn           func(ctx context.Context, userID, bucketlistID, itemID int64) error
}

func (m *mockItemService) Create(ctx context.Context, userID, bucketlistID int64, name *string) (models.BucketlistItem, error) {
	return m.createFn(ctx, userID, bucketlistID, name)
}

func (m *mockItemService) Get(ctx context.Context, userID, bucketlistID, itemID int64) (models.BucketlistItem, error) {
	return m.getFn(ctx, userID, bucketlistID, itemID)
}

func (m *mockItemService) ListByBucketlist(ctx context.Context, userID, bucketlistID int64) ([]models.BucketlistItem, error) {
	return m.listByBucketlistFn(ctx, userID, bucketlistID)
}

func (m *mockItemService) Rename(ctx context.Context, userID, bucketlistID, itemID int64, name *string) (models.BucketlistItem, error) {
	return m.renameFn(ctx, userID, bucketlistID, itemID, name)
}

func (m *mockItemService) Delete(ctx context.Context, userID, bucketlistID, itemID int64) error {
	return m.deleteFn(ctx, userID, bucketlistID, itemID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(svcs *service.Services) *Handler {
	return NewHandler(svcs, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context so that handlers
// calling logger.FromRequest stay quiet.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// decodeMessage unmarshals a {"message": ...} response body.
func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) models.Message {
	t.Helper()

	var msg models.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	return msg
}
