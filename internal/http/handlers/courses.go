package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appcourses "github.com/AlexanderWinters/the-score-card/internal/app/courses"
	"github.com/AlexanderWinters/the-score-card/internal/domain"
	"github.com/AlexanderWinters/the-score-card/internal/domain/courses"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

// CourseHandler serves the course catalog.
type CourseHandler struct {
	svc    *appcourses.Service
	logger *slog.Logger
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(svc *appcourses.Service, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, logger: logger}
}

// List returns course summaries. Inactive courses are included with ?include_inactive=true.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if raw := r.URL.Query().Get("include_inactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "include_inactive must be a boolean", h.logger)
			return
		}
		includeInactive = v
	}
	list, err := h.svc.List(r.Context(), includeInactive)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if list == nil {
		list = []courses.Summary{}
	}
	writeJSON(w, http.StatusOK, list, h.logger)
}

// Get returns one course with its tee boxes and holes.
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid course id", h.logger)
		return
	}
	course, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Course not found", h.logger)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, course, h.logger)
}

// Create stores a new course.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in courses.CourseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	course, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "course created", logging.FieldCourseID, course.ID)
	writeJSON(w, http.StatusCreated, course, h.logger)
}

// Update replaces a course's fields and tee boxes.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid course id", h.logger)
		return
	}
	var in courses.CourseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	course, err := h.svc.Update(r.Context(), id, in)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Course not found", h.logger)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, course, h.logger)
}

// ToggleActive flips whether a course is listed.
func (h *CourseHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid course id", h.logger)
		return
	}
	active, err := h.svc.ToggleActive(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Course not found", h.logger)
		return
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "active": active}, h.logger)
}
