package post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/auth"
	"github.com/devlinkhq/devlink-api/internal/httputil"
	"github.com/devlinkhq/devlink-api/internal/logging"
)

// Handler contains HTTP handlers for post endpoints. All of them sit
// behind the auth gate.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreateRequest is the post/comment creation body.
type CreateRequest struct {
	Text string `json:"text"`
}

func (req *CreateRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if strings.TrimSpace(req.Text) == "" {
		errs = append(errs, httputil.FieldError{Msg: "text is required", Param: "text"})
	}
	return errs
}

// noopResponse is the post state returned when a like or unlike changed
// nothing, with an informational message alongside.
type noopResponse struct {
	*Post
	Msg string `json:"msg"`
}

// Mine lists the caller's posts
// @Summary      Own posts
// @Tags         posts
// @Produce      json
// @Success      200 {array} Post
// @Router       /api/posts [get]
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	posts, err := h.service.ListByAuthor(r.Context(), userID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, posts, http.StatusOK)
}

// All lists every post
// @Summary      All posts
// @Tags         posts
// @Produce      json
// @Success      200 {array} Post
// @Router       /api/posts/all [get]
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, posts, http.StatusOK)
}

// ByID returns a single post
// @Summary      Post by id
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post id"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse "Not found or malformed id"
// @Router       /api/posts/{id} [get]
func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.service.ByID(r.Context(), postID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Create stores a new post
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Post text"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse "Validation error"
// @Router       /api/posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.Create(r.Context(), userID, req.Text)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Like adds the caller to the like set
// @Summary      Like post
// @Description  Idempotent: liking twice returns the unchanged post with a message
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post id"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse "Not found"
// @Router       /api/posts/{id}/like [put]
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	postID, ok := h.postID(w, r, "id")
	if !ok {
		return
	}

	p, changed, err := h.service.Like(r.Context(), userID, postID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	if !changed {
		httputil.RespondJSON(w, noopResponse{Post: p, Msg: "post has already been liked"}, http.StatusOK)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Unlike removes the caller from the like set
// @Summary      Unlike post
// @Description  Unliking a post that was not liked is a no-op
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post id"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse "Not found"
// @Router       /api/posts/{id}/unlike [put]
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	postID, ok := h.postID(w, r, "id")
	if !ok {
		return
	}

	p, changed, err := h.service.Unlike(r.Context(), userID, postID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	if !changed {
		httputil.RespondJSON(w, noopResponse{Post: p, Msg: "post has not been liked"}, http.StatusOK)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Comment appends a comment
// @Summary      Comment on post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post id"
// @Param        request body CreateRequest true "Comment text"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/posts/{id}/comment [post]
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	postID, ok := h.postID(w, r, "id")
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.AddComment(r.Context(), userID, postID, req.Text)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// DeleteComment removes a comment by id
// @Summary      Delete comment
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post id"
// @Param        commentId path string true "Comment id"
// @Success      200 {object} Post
// @Failure      400 {object} httputil.ErrorsResponse "Not found or already deleted"
// @Router       /api/posts/{postId}/comment/{commentId} [delete]
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := h.postID(w, r, "postID")
	if !ok {
		return
	}

	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		httputil.RespondError(w, "comment already deleted", http.StatusBadRequest)
		return
	}

	p, err := h.service.RemoveComment(r.Context(), postID, commentID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Delete removes a post, author only
// @Summary      Delete post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post id"
// @Success      200 {object} auth.MessageResponse
// @Failure      400 {object} httputil.ErrorsResponse "Not found"
// @Failure      403 {object} httputil.ErrorsResponse "Not the author"
// @Router       /api/posts/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	postID, ok := h.postID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		h.respondErr(w, r, err)
		return
	}

	logger.Info("post deleted", "post_id", postID, "user_id", userID)

	httputil.RespondJSON(w, auth.MessageResponse{Msg: "post deleted"}, http.StatusOK)
}

// postID parses the post id path param. A malformed id reads as "no
// such post", same contract as a valid-but-unknown id.
func (h *Handler) postID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httputil.RespondError(w, "post not found", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// respondErr maps domain errors to the envelope. Absent posts are 400
// by API convention; only the ownership rule produces 403.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondError(w, "post not found", http.StatusBadRequest)
	case errors.Is(err, ErrNotOwner):
		httputil.RespondError(w, "post cannot be deleted", http.StatusForbidden)
	case errors.Is(err, ErrCommentNotFound):
		httputil.RespondError(w, "comment already deleted", http.StatusBadRequest)
	default:
		logger.Error("post request failed", "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
	}
}
