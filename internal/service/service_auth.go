package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mkarpov/go-bucketlist/internal/config"
	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/internal/utils"
	"github.com/mkarpov/go-bucketlist/models"
	"golang.org/x/crypto/bcrypt"
)

// Client-facing validation messages for the credentials ladder. The ladder
// order is part of the API contract: presence checks precede emptiness
// checks, which precede format checks.
const (
	MsgEmailAndPasswordMissing = "Email address and password not provided."
	MsgEmailMissing            = "Email address not provided."
	MsgPasswordMissing         = "Password not provided."
	MsgEmailAndPasswordEmpty   = "Email address and password is empty."
	MsgEmailEmpty              = "Email address is empty."
	MsgPasswordEmpty           = "Password is empty."
	MsgEmailAndPasswordInvalid = "Invalid email address and short password."
	MsgEmailInvalid            = "Invalid email address."
	MsgPasswordTooShort        = "Password too short."
)

// minPasswordLength is the minimum accepted password length at registration.
const minPasswordLength = 5

// emailPattern requires exactly one "@" with at least one "." after it.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// The same key must be used for issuance and validation within a
	// deployment.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the bcrypt work factor applied when hashing passwords.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It walks the full credentials validation ladder (presence, emptiness, email
// format, password length), hashes the password with bcrypt, and delegates
// persistence to the UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A *ValidationError carrying the exact ladder message.
//   - store.ErrEmailAlreadyExists when the email is taken.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Register(ctx context.Context, creds Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentialsPresence(creds); err != nil {
		return models.User{}, err
	}

	email, password := *creds.Email, *creds.Password
	emailValid := emailPattern.MatchString(email)
	passwordValid := len(password) >= minPasswordLength

	switch {
	case !emailValid && !passwordValid:
		return models.User{}, newValidationError(MsgEmailAndPasswordInvalid)
	case !emailValid:
		return models.User{}, newValidationError(MsgEmailInvalid)
	case !passwordValid:
		return models.User{}, newValidationError(MsgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Error().Str("email", email).Msg("email already registered")
			return models.User{}, err
		}
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It walks the presence/emptiness part of the validation ladder only (login
// does not validate email format or password length), looks up the account by
// email, and compares the stored bcrypt hash against the supplied password.
//
// Returns the authenticated user record or:
//   - A *ValidationError carrying the exact ladder message.
//   - ErrWrongCredentials when the user does not exist or the password does
//     not match.
func (a *authService) Login(ctx context.Context, creds Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentialsPresence(creds); err != nil {
		return models.User{}, err
	}

	email, password := *creds.Email, *creds.Password

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Error().Str("email", email).Msg("no user with this email")
			return models.User{}, ErrWrongCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().Int64("id", foundUser.UserID).Str("email", email).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim, and normalises the outcome to exactly two failure kinds:
//   - ErrTokenExpired when current time is past the encoded expiry.
//   - ErrTokenInvalid for every other failure (bad signature, malformed
//     structure, wrong issuer).
//
// Returns the decoded token (carrying the subject user id) on success.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenInvalid
	}

	return token, nil
}

// validateCredentialsPresence runs the shared head of the validation ladder:
// key presence first, then value emptiness, combined cases before single ones.
func validateCredentialsPresence(creds Credentials) error {
	switch {
	case creds.Email == nil && creds.Password == nil:
		return newValidationError(MsgEmailAndPasswordMissing)
	case creds.Email == nil:
		return newValidationError(MsgEmailMissing)
	case creds.Password == nil:
		return newValidationError(MsgPasswordMissing)
	case *creds.Email == "" && *creds.Password == "":
		return newValidationError(MsgEmailAndPasswordEmpty)
	case *creds.Email == "":
		return newValidationError(MsgEmailEmpty)
	case *creds.Password == "":
		return newValidationError(MsgPasswordEmpty)
	}

	return nil
}
