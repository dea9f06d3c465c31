package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/internal/utils"
	"github.com/mkarpov/go-bucketlist/models"
)

// actingUserID resolves the authenticated owner stored in the context by the
// auth middleware. A missing value means the middleware did not run; the
// request is rejected as unauthorized.
func actingUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		utils.WriteJSON(w, models.Message{Message: msgTokenInvalid}, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID parses the named chi URL parameter as a positive int64.
func pathID(r *http.Request, param string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, param), 10, 64)
}

func (h *Handler) createBucketlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	body, err := parsePayload(r)
	if err != nil {
		log.Err(err).Msg("invalid payload was passed")
		utils.WriteJSON(w, models.Message{Message: msgInvalidPayload}, http.StatusBadRequest)
		return
	}

	created, err := h.services.BucketlistService.Create(ctx, userID, body.get("name"))
	if err != nil {
		h.writeBucketlistError(w, r, err, msgBucketlistNameTakenCreate)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listBucketlists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	query := service.ListQuery{
		Limit:  r.URL.Query().Get("limit"),
		Page:   r.URL.Query().Get("page"),
		Search: r.URL.Query().Get("q"),
	}

	page, err := h.services.BucketlistService.List(ctx, userID, query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPageOrLimit) {
			// 404 for a non-positive page or limit is part of the API
			// contract, even though 400 would be the natural choice.
			utils.WriteJSON(w, models.Message{Message: msgInvalidPageOrLimit}, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("listing bucketlists failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getBucketlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	found, err := h.services.BucketlistService.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrBucketlistNotFound) {
			utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("fetching bucketlist failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, found, http.StatusOK)
}

func (h *Handler) renameBucketlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	body, err := parsePayload(r)
	if err != nil {
		log.Err(err).Msg("invalid payload was passed")
		utils.WriteJSON(w, models.Message{Message: msgInvalidPayload}, http.StatusBadRequest)
		return
	}

	renamed, err := h.services.BucketlistService.Rename(ctx, userID, id, body.get("name"))
	if err != nil {
		h.writeBucketlistError(w, r, err, msgBucketlistNameTakenUpdate)
		return
	}

	utils.WriteJSON(w, renamed, http.StatusOK)
}

func (h *Handler) deleteBucketlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	if err := h.services.BucketlistService.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrBucketlistNotFound) {
			utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("deleting bucketlist failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.Message{Message: fmt.Sprintf("bucketlist %d deleted", id)}, http.StatusOK)
}

// writeBucketlistError maps service/store failures of bucketlist mutations to
// their HTTP responses. The duplicate-name message differs between create and
// update, so the caller supplies it.
func (h *Handler) writeBucketlistError(w http.ResponseWriter, r *http.Request, err error, nameTakenMessage string) {
	log := logger.FromRequest(r)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.WriteJSON(w, models.Message{Message: validationErr.Message}, http.StatusBadRequest)
	case errors.Is(err, store.ErrBucketlistNameTaken):
		utils.WriteJSON(w, models.Message{Message: nameTakenMessage}, http.StatusConflict)
	case errors.Is(err, store.ErrBucketlistNotFound):
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
	default:
		log.Err(err).Msg("bucketlist operation failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
	}
}
