package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return injectNopLogger(req)
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, creds service.Credentials) (models.User, error) {
			require.NotNil(t, creds.Email)
			require.NotNil(t, creds.Password)
			return models.User{UserID: 1, Email: *creds.Email}, nil
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.register(rec, newJSONRequest(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, msgRegistered, decodeMessage(t, rec).Message)
}

func TestRegister_AcceptsFormPayload(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, creds service.Credentials) (models.User, error) {
			require.NotNil(t, creds.Email)
			assert.Equal(t, "alice@example.com", *creds.Email)
			return models.User{UserID: 1}, nil
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})

	form := url.Values{"email": {"alice@example.com"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = injectNopLogger(req)
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_MalformedJSON(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{}})
	rec := httptest.NewRecorder()

	h.register(rec, newJSONRequest(http.MethodPost, "/auth/register", "{invalid json}"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidPayload, decodeMessage(t, rec).Message)
}

func TestRegister_ValidationError(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, creds service.Credentials) (models.User, error) {
			assert.Nil(t, creds.Email, "absent key must arrive as nil")
			return models.User{}, &service.ValidationError{Message: service.MsgEmailMissing}
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.register(rec, newJSONRequest(http.MethodPost, "/auth/register", `{"password":"secret"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgEmailMissing, decodeMessage(t, rec).Message)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.register(rec, newJSONRequest(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret"}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, msgUserAlreadyExists, decodeMessage(t, rec).Message)
}

func TestRegister_UnexpectedFailure(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{}, errors.New("connection reset")
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.register(rec, newJSONRequest(http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"secret"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	const signedToken = "signed.jwt.token"

	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{UserID: 1}, nil
		},
		createTokenFn: func(_ context.Context, user models.User) (models.Token, error) {
			assert.Equal(t, int64(1), user.UserID)
			return models.Token{SignedString: signedToken}, nil
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.login(rec, newJSONRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgLoggedIn, resp.Message)
	assert.Equal(t, signedToken, resp.AccessToken)
}

func TestLogin_WrongCredentials(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{}, service.ErrWrongCredentials
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.login(rec, newJSONRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgWrongCredentials, decodeMessage(t, rec).Message)
}

func TestLogin_ValidationError(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{}, &service.ValidationError{Message: service.MsgEmailAndPasswordMissing}
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.login(rec, newJSONRequest(http.MethodPost, "/auth/login", `{}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.MsgEmailAndPasswordMissing, decodeMessage(t, rec).Message)
}

func TestLogin_TokenCreationFailure(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, _ service.Credentials) (models.User, error) {
			return models.User{UserID: 1}, nil
		},
		createTokenFn: func(_ context.Context, _ models.User) (models.Token, error) {
			return models.Token{}, service.ErrTokenCreationFailed
		},
	}

	h := newTestHandler(&service.Services{AuthService: auth})
	rec := httptest.NewRecorder()

	h.login(rec, newJSONRequest(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
