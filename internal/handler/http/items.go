package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mkarpov/go-bucketlist/internal/logger"
	"github.com/mkarpov/go-bucketlist/internal/service"
	"github.com/mkarpov/go-bucketlist/internal/store"
	"github.com/mkarpov/go-bucketlist/internal/utils"
	"github.com/mkarpov/go-bucketlist/models"
)

// itemView is the single-item response body. Unlike the nested item records
// inside a bucketlist, it does not carry the parent reference.
type itemView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	Done         bool      `json:"done"`
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	bucketlistID, err := pathID(r, "id")
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

	created, err := h.services.ItemService.Create(ctx, userID, bucketlistID, body.get("name"))
	if err != nil {
		h.writeItemError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	bucketlistID, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	items, err := h.services.ItemService.ListByBucketlist(ctx, userID, bucketlistID)
	if err != nil {
		if errors.Is(err, store.ErrBucketlistNotFound) {
			utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("listing bucketlist items failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	bucketlistID, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgItemNotFound}, http.StatusNotFound)
		return
	}

	found, err := h.services.ItemService.Get(ctx, userID, bucketlistID, itemID)
	if err != nil {
		h.writeItemError(w, r, err)
		return
	}

	utils.WriteJSON(w, itemView{
		ID:           found.ID,
		Name:         found.Name,
		DateCreated:  found.DateCreated,
		DateModified: found.DateModified,
		Done:         found.Done,
	}, http.StatusOK)
}

func (h *Handler) renameItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	bucketlistID, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgItemNotFound}, http.StatusNotFound)
		return
	}

	body, err := parsePayload(r)
	if err != nil {
		log.Err(err).Msg("invalid payload was passed")
		utils.WriteJSON(w, models.Message{Message: msgInvalidPayload}, http.StatusBadRequest)
		return
	}

	renamed, err := h.services.ItemService.Rename(ctx, userID, bucketlistID, itemID, body.get("name"))
	if err != nil {
		h.writeItemError(w, r, err)
		return
	}

	utils.WriteJSON(w, renamed, http.StatusOK)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := actingUserID(w, r)
	if !ok {
		return
	}

	bucketlistID, err := pathID(r, "id")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
		return
	}

	itemID, err := pathID(r, "itemID")
	if err != nil {
		utils.WriteJSON(w, models.Message{Message: msgItemNotFound}, http.StatusNotFound)
		return
	}

	if err := h.services.ItemService.Delete(ctx, userID, bucketlistID, itemID); err != nil {
		h.writeItemError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Message{Message: fmt.Sprintf("bucketlist item %d deleted", itemID)}, http.StatusOK)
}

// writeItemError maps service/store failures of item operations to their HTTP
// responses. Parent-bucketlist lookup failures surface before item failures.
func (h *Handler) writeItemError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.WriteJSON(w, models.Message{Message: validationErr.Message}, http.StatusBadRequest)
	case errors.Is(err, store.ErrItemNameTaken):
		utils.WriteJSON(w, models.Message{Message: msgItemNameTaken}, http.StatusConflict)
	case errors.Is(err, store.ErrBucketlistNotFound):
		utils.WriteJSON(w, models.Message{Message: msgBucketlistNotFound}, http.StatusNotFound)
	case errors.Is(err, store.ErrItemNotFound):
		utils.WriteJSON(w, models.Message{Message: msgItemNotFound}, http.StatusNotFound)
	default:
		log.Err(err).Msg("bucketlist item operation failed")
		utils.WriteJSON(w, models.Message{Message: http.StatusText(http.StatusInternalServerError)}, http.StatusInternalServerError)
	}
}
