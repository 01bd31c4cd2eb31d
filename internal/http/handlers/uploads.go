package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/AlexanderWinters/the-score-card/internal/importer"
	"github.com/AlexanderWinters/the-score-card/internal/logging"
)

const maxUploadBytes = 10 << 20

// uploadRule lists the extensions accepted by an upload endpoint and the
// message returned for anything else.
type uploadRule struct {
	exts    []string
	message string
}

var uploadRules = map[string]uploadRule{
	importer.FormatJSON: {exts: []string{".json"}, message: "File must be a JSON file"},
	importer.FormatCSV:  {exts: []string{".csv"}, message: "File must be a CSV file"},
	importer.FormatXLSX: {exts: []string{".xlsx"}, message: "File must be an Excel file (.xlsx)"},
	importer.FormatYAML: {exts: []string{".yaml", ".yml"}, message: "File must be a YAML file"},
}

// Upload returns a handler importing courses from a multipart "file" field in format.
func (h *CourseHandler) Upload(format string) http.HandlerFunc {
	rule, known := uploadRules[format]
	return func(w http.ResponseWriter, r *http.Request) {
		if !known {
			writeError(w, r, http.StatusNotFound, "not found", h.logger)
			return
		}
		logger := loggerFromContext(r, h.logger)

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, http.StatusRequestEntityTooLarge, "File is too large", h.logger)
				return
			}
			writeError(w, r, http.StatusBadRequest, "multipart field \"file\" is required", h.logger)
			return
		}
		defer file.Close()

		if !hasExt(header.Filename, rule.exts) {
			writeError(w, r, http.StatusBadRequest, rule.message, h.logger)
			return
		}
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "could not read uploaded file", h.logger)
			return
		}

		result, err := h.svc.Import(r.Context(), format, data)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		if len(result.CourseIDs) == 0 {
			body := errorBody(r, "No valid courses found in file")
			body["skipped"] = result.Skipped
			writeJSON(w, http.StatusBadRequest, body, h.logger)
			return
		}

		logging.Info(logger, "course upload stored",
			logging.FieldFile, header.Filename,
			logging.FieldFormat, format,
			logging.FieldCount, len(result.CourseIDs),
		)
		resp := map[string]any{
			"message":    fmt.Sprintf("Successfully added %d courses", len(result.CourseIDs)),
			"course_ids": result.CourseIDs,
		}
		if len(result.Skipped) > 0 {
			resp["skipped"] = result.Skipped
		}
		writeJSON(w, http.StatusCreated, resp, h.logger)
	}
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
