package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedUserID is the user id attached by the stub token parser in router
// tests.
const authedUserID int64 = 42

// serveAuthed routes the request through the full router with a stub
// AuthService that accepts any bearer token as the authed test user.
func serveAuthed(t *testing.T, svcs *service.Services, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{UserID: authedUserID}, nil
			},
		}
	}

	router := newTestHandler(svcs).Init()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Authorization", "Bearer test-token")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ─────────────────────────────────────────────
// create
// ─────────────────────────────────────────────

func TestCreateBucketlist_Success(t *testing.T) {
	bucketlists := &mockBucketlistService{
		createFn: func(_ context.Context, userID int64, name *string) (models.Bucketlist, error) {
			assert.Equal(t, authedUserID, userID)
			require.NotNil(t, name)
			return models.Bucketlist{ID: 1, Name: *name, CreatedBy: userID, Items: []models.BucketlistItem{}}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPost, "/bucketlists/", `{"name":"travel"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Bucketlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "travel", created.Name)
	assert.Equal(t, authedUserID, created.CreatedBy)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestCreateBucketlist_MissingName(t *testing.T) {
	bucketlists := &mockBucketlistService{
		createFn: func(_ context.Context, _ int64, name *string) (models.Bucketlist, error) {
			assert.Nil(t, name)
			return models.Bucketlist{}, &service.ValidationError{Message: service.MsgNameMissing}
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPost, "/bucketlists/", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgNameMissing, decodeMessage(t, rec).Message)
}

func TestCreateBucketlist_NameTaken(t *testing.T) {
	bucketlists := &mockBucketlistService{
		createFn: func(_ context.Context, _ int64, _ *string) (models.Bucketlist, error) {
			return models.Bucketlist{}, store.ErrBucketlistNameTaken
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPost, "/bucketlists/", `{"name":"travel"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgBucketlistNameTakenCreate, decodeMessage(t, rec).Message)
}

func TestCreateBucketlist_WithoutToken_Unauthorized(t *testing.T) {
	router := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				t.Fatal("ParseToken should not be called without a header")
				return models.Token{}, nil
			},
		},
	}).Init()

	req := httptest.NewRequest(http.MethodPost, "/bucketlists/", strings.NewReader(`{"name":"travel"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgAuthHeaderMissing, decodeMessage(t, rec).Message)
}

// ─────────────────────────────────────────────
// list
// ─────────────────────────────────────────────

func TestListBucketlists_QueryParamsArePassedThrough(t *testing.T) {
	var gotQuery service.ListQuery
	bucketlists := &mockBucketlistService{
		listFn: func(_ context.Context, userID int64, query service.ListQuery) (models.BucketlistPage, error) {
			assert.Equal(t, authedUserID, userID)
			gotQuery = query
			return models.BucketlistPage{Page: 2, ItemsPerPage: 5, Items: []models.Bucketlist{}}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/?limit=5&page=2&q=trav", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ListQuery{Limit: "5", Page: "2", Search: "trav"}, gotQuery)
}

func TestListBucketlists_PageBody(t *testing.T) {
	next := "/bucketlists?limit=20&page=2"
	bucketlists := &mockBucketlistService{
		listFn: func(_ context.Context, _ int64, _ service.ListQuery) (models.BucketlistPage, error) {
			return models.BucketlistPage{
				Page:         1,
				ItemsPerPage: 20,
				TotalItems:   25,
				TotalPages:   2,
				PrevPage:     "/bucketlists?limit=20",
				NextPage:     &next,
				Items:        []models.Bucketlist{{ID: 1, Name: "travel", Items: []models.BucketlistItem{}}},
			}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var page map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	for _, key := range []string{"page", "items_per_page", "total_items", "total_pages", "prev_page", "next_page", "items"} {
		assert.Contains(t, page, key)
	}
	assert.Equal(t, next, page["next_page"])
}

func TestListBucketlists_NullNextPageOnLastPage(t *testing.T) {
	bucketlists := &mockBucketlistService{
		listFn: func(_ context.Context, _ int64, _ service.ListQuery) (models.BucketlistPage, error) {
			return models.BucketlistPage{Page: 1, TotalPages: 1, Items: []models.Bucketlist{}}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next_page":null`)
}

func TestListBucketlists_InvalidRange(t *testing.T) {
	bucketlists := &mockBucketlistService{
		listFn: func(_ context.Context, _ int64, _ service.ListQuery) (models.BucketlistPage, error) {
			return models.BucketlistPage{}, service.ErrInvalidPageOrLimit
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/?limit=0", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgInvalidPageOrLimit, decodeMessage(t, rec).Message)
}

// ─────────────────────────────────────────────
// get
// ─────────────────────────────────────────────

func TestGetBucketlist_Success(t *testing.T) {
	bucketlists := &mockBucketlistService{
		getFn: func(_ context.Context, userID, id int64) (models.Bucketlist, error) {
			assert.Equal(t, authedUserID, userID)
			assert.Equal(t, int64(3), id)
			return models.Bucketlist{ID: id, Name: "travel", Items: []models.BucketlistItem{}}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/3", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var found models.Bucketlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Equal(t, int64(3), found.ID)
}

func TestGetBucketlist_NotFound(t *testing.T) {
	bucketlists := &mockBucketlistService{
		getFn: func(_ context.Context, _, _ int64) (models.Bucketlist, error) {
			return models.Bucketlist{}, store.ErrBucketlistNotFound
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/99", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgBucketlistNotFound, decodeMessage(t, rec).Message)
}

func TestGetBucketlist_NonNumericID(t *testing.T) {
	bucketlists := &mockBucketlistService{
		getFn: func(_ context.Context, _, _ int64) (models.Bucketlist, error) {
			t.Fatal("Get should not be called for an unparseable id")
			return models.Bucketlist{}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodGet, "/bucketlists/abc", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgBucketlistNotFound, decodeMessage(t, rec).Message)
}

// ─────────────────────────────────────────────
// rename
// ─────────────────────────────────────────────

func TestRenameBucketlist_Success(t *testing.T) {
	bucketlists := &mockBucketlistService{
		renameFn: func(_ context.Context, _, id int64, name *string) (models.Bucketlist, error) {
			require.NotNil(t, name)
			return models.Bucketlist{ID: id, Name: *name, Items: []models.BucketlistItem{}}, nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPut, "/bucketlists/3", `{"name":"reading"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var renamed models.Bucketlist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &renamed))
	assert.Equal(t, "reading", renamed.Name)
}

func TestRenameBucketlist_NameTaken_UpdateMessage(t *testing.T) {
	bucketlists := &mockBucketlistService{
		renameFn: func(_ context.Context, _, _ int64, _ *string) (models.Bucketlist, error) {
			return models.Bucketlist{}, store.ErrBucketlistNameTaken
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPut, "/bucketlists/3", `{"name":"travel"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgBucketlistNameTakenUpdate, decodeMessage(t, rec).Message)
}

func TestRenameBucketlist_NotFound(t *testing.T) {
	bucketlists := &mockBucketlistService{
		renameFn: func(_ context.Context, _, _ int64, _ *string) (models.Bucketlist, error) {
			return models.Bucketlist{}, store.ErrBucketlistNotFound
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodPut, "/bucketlists/99", `{"name":"travel"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgBucketlistNotFound, decodeMessage(t, rec).Message)
}

// ─────────────────────────────────────────────
// delete
// ─────────────────────────────────────────────

func TestDeleteBucketlist_Success(t *testing.T) {
	var gotID int64
	bucketlists := &mockBucketlistService{
		deleteFn: func(_ context.Context, userID, id int64) error {
			assert.Equal(t, authedUserID, userID)
			gotID = id
			return nil
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodDelete, "/bucketlists/3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), gotID)
	assert.Equal(t, "bucketlist 3 deleted", decodeMessage(t, rec).Message)
}

func TestDeleteBucketlist_NotFound(t *testing.T) {
	bucketlists := &mockBucketlistService{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return store.ErrBucketlistNotFound
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodDelete, "/bucketlists/99", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgBucketlistNotFound, decodeMessage(t, rec).Message)
}

func TestDeleteBucketlist_UnexpectedFailure(t *testing.T) {
	bucketlists := &mockBucketlistService{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return errors.New("connection reset")
		},
	}

	rec := serveAuthed(t, &service.Services{BucketlistService: bucketlists},
		http.MethodDelete, "/bucketlists/3", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
