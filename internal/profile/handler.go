package profile

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/devlinkhq/devlink-api/internal/auth"
	"github.com/devlinkhq/devlink-api/internal/httputil"
	"github.com/devlinkhq/devlink-api/internal/logging"
)

// Handler contains HTTP handlers for profile endpoints.
type Handler struct {
	service *Service
	github  *GitHubClient
	logger  *logging.Logger
}

func NewHandler(service *Service, github *GitHubClient, logger *logging.Logger) *Handler {
	return &Handler{service: service, github: github, logger: logger}
}

// UpsertRequest is the profile create/update request body.
type UpsertRequest struct {
	Company        string      `json:"company"`
	Website        string      `json:"website"`
	Location       string      `json:"location"`
	Status         string      `json:"status"`
	Skills         []string    `json:"skills"`
	Bio            string      `json:"bio"`
	GithubUsername string      `json:"github_username"`
	Social         SocialLinks `json:"social"`
}

func (req *UpsertRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if strings.TrimSpace(req.Status) == "" {
		errs = append(errs, httputil.FieldError{Msg: "status is required", Param: "status"})
	}
	if len(req.Skills) == 0 {
		errs = append(errs, httputil.FieldError{Msg: "skills are required", Param: "skills"})
	}
	return errs
}

// ExperienceRequest is an experience entry request body.
type ExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

func (req *ExperienceRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, httputil.FieldError{Msg: "title is required", Param: "title"})
	}
	if strings.TrimSpace(req.Company) == "" {
		errs = append(errs, httputil.FieldError{Msg: "company is required", Param: "company"})
	}
	if req.From.IsZero() {
		errs = append(errs, httputil.FieldError{Msg: "from date is required", Param: "from"})
	}
	return errs
}

func (req *ExperienceRequest) entry() Experience {
	return Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
}

// EducationRequest is an education entry request body.
type EducationRequest struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

func (req *EducationRequest) validate() []httputil.FieldError {
	var errs []httputil.FieldError
	if strings.TrimSpace(req.School) == "" {
		errs = append(errs, httputil.FieldError{Msg: "school is required", Param: "school"})
	}
	if strings.TrimSpace(req.Degree) == "" {
		errs = append(errs, httputil.FieldError{Msg: "degree is required", Param: "degree"})
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		errs = append(errs, httputil.FieldError{Msg: "field of study is required", Param: "field_of_study"})
	}
	if req.From.IsZero() {
		errs = append(errs, httputil.FieldError{Msg: "from date is required", Param: "from"})
	}
	return errs
}

func (req *EducationRequest) entry() Education {
	return Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
}

// Me returns the caller's profile
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse "No profile"
// @Router       /api/profile/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	p, err := h.service.Mine(r.Context(), userID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// All lists every profile
// @Summary      List profiles
// @Tags         profile
// @Produce      json
// @Success      200 {array} Profile
// @Router       /api/profile [get]
func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.All(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, profiles, http.StatusOK)
}

// ByUser returns the profile owned by a user
// @Summary      Profile by user id
// @Tags         profile
// @Produce      json
// @Param        user_id path string true "User id"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse "Not found or malformed id"
// @Router       /api/profile/user/{user_id} [get]
func (h *Handler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		// Malformed ids read as "no such profile", same contract as a
		// valid-but-unknown id.
		httputil.RespondError(w, "the profile does not exist", http.StatusBadRequest)
		return
	}

	p, err := h.service.ByUserID(r.Context(), userID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// Github proxies a user's repository list
// @Summary      GitHub repos
// @Tags         profile
// @Produce      json
// @Param        username path string true "GitHub username"
// @Success      200 {array} Repo
// @Failure      404 {object} httputil.ErrorsResponse "No GitHub profile"
// @Router       /api/profile/github/{username} [get]
func (h *Handler) Github(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	username := chi.URLParam(r, "username")

	repos, err := h.github.ListRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrGitHubNotFound) {
			httputil.RespondError(w, "no github profile found", http.StatusNotFound)
			return
		}
		logger.Error("github proxy failed", "username", username, "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, repos, http.StatusOK)
}

// Upsert creates or replaces the caller's profile
// @Summary      Create or update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body UpsertRequest true "Profile fields"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse "Validation error"
// @Router       /api/profile [post]
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.Upsert(r.Context(), userID, Fields{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Skills:         req.Skills,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Social:         req.Social,
	})
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// AddExperience appends a work-history entry
// @Summary      Add experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body ExperienceRequest true "Entry"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/experience [post]
func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.AddExperience(r.Context(), userID, req.entry())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// UpdateExperience replaces a work-history entry by id
// @Summary      Update experience
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry id"
// @Param        request body ExperienceRequest true "Entry"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/experience/{id} [put]
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "entry not found", http.StatusBadRequest)
		return
	}

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.UpdateExperience(r.Context(), userID, entryID, req.entry())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// RemoveExperience deletes a work-history entry by id
// @Summary      Remove experience
// @Tags         profile
// @Produce      json
// @Param        id path string true "Entry id"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/experience/{id} [delete]
func (h *Handler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "entry not found", http.StatusBadRequest)
		return
	}

	p, err := h.service.RemoveExperience(r.Context(), userID, entryID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// AddEducation appends an education entry
// @Summary      Add education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body EducationRequest true "Entry"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/education [post]
func (h *Handler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.AddEducation(r.Context(), userID, req.entry())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// UpdateEducation replaces an education entry by id
// @Summary      Update education
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        id path string true "Entry id"
// @Param        request body EducationRequest true "Entry"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/education/{id} [put]
func (h *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "entry not found", http.StatusBadRequest)
		return
	}

	var req EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		httputil.RespondFieldErrors(w, errs, http.StatusBadRequest)
		return
	}

	p, err := h.service.UpdateEducation(r.Context(), userID, entryID, req.entry())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// RemoveEducation deletes an education entry by id
// @Summary      Remove education
// @Tags         profile
// @Produce      json
// @Param        id path string true "Entry id"
// @Success      200 {object} Profile
// @Failure      400 {object} httputil.ErrorsResponse
// @Router       /api/profile/education/{id} [delete]
func (h *Handler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.GetUserIDFromContext(r.Context())

	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondError(w, "entry not found", http.StatusBadRequest)
		return
	}

	p, err := h.service.RemoveEducation(r.Context(), userID, entryID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	httputil.RespondJSON(w, p, http.StatusOK)
}

// DeleteAccount removes the caller's profile and identity
// @Summary      Delete account
// @Description  Deletes the profile and the identity. Authored posts remain.
// @Tags         profile
// @Produce      json
// @Success      200 {object} auth.MessageResponse
// @Failure      500 {object} httputil.ErrorsResponse
// @Router       /api/profile [delete]
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	userID, _ := auth.GetUserIDFromContext(r.Context())

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		logger.Error("account deletion failed", "user_id", userID, "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	logger.Info("account deleted", "user_id", userID)

	httputil.RespondJSON(w, auth.MessageResponse{Msg: "user deleted"}, http.StatusOK)
}

// respondErr maps domain errors to the envelope. Absent resources are
// 400 by API convention, not 404.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondError(w, "the profile does not exist", http.StatusBadRequest)
	case errors.Is(err, ErrEntryNotFound):
		httputil.RespondError(w, "entry not found", http.StatusBadRequest)
	default:
		logger.Error("profile request failed", "error", err.Error())
		httputil.RespondError(w, "internal server error", http.StatusInternalServerError)
	}
}
