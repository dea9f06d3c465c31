package http

import (
	"errors"
	"net/http"

	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/internal/utils"
	"github.com/mkarpov/go-bucketlist/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := parsePayload(r)
	if err != nil {
		log.Err(err).Msg("invalid payload was passed")
		utils.WriteJSON(w, models.Message{Message: msgInvalidPayload}, http.StatusBadRequest)
		return
	}

	creds := service.Credentials{
		Email:    body.get("email"),
		Password: body.get("password"),
	}

	_, err = h.services.AuthService.Register(ctx, creds)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Error().Str("reason", validationErr.Message).Msg("registration rejected")
			utils.WriteJSON(w, models.Message{Message: validationErr.Message}, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Error().Msg("email already registered")
			utils.WriteJSON(w, models.Message{Message: msgUserAlreadyExists}, http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.Message{Message: msgRegistered}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	body, err := parsePayload(r)
	if err != nil {
		log.Err(err).Msg("invalid payload was passed")
		utils.WriteJSON(w, models.Message{Message: msgInvalidPayload}, http.StatusBadRequest)
		return
	}

	creds := service.Credentials{
		Email:    body.get("email"),
		Password: body.get("password"),
	}

	foundUser, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			log.Error().Str("reason", validationErr.Message).Msg("login rejected")
			utils.WriteJSON(w, models.Message{Message: validationErr.Message}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongCredentials):
			log.Error().Msg("wrong email or password")
			utils.WriteJSON(w, models.Message{Message: msgWrongCredentials}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		Message:     msgLoggedIn,
		AccessToken: token.SignedString,
	}, http.StatusOK)
}
