package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/turmadocricas/cricas/internal/grade"
	"github.com/turmadocricas/cricas/internal/handler/views"
	"github.com/turmadocricas/cricas/internal/model"
)

// maxAPIBody bounds the JSON request body of the grade API.
const maxAPIBody = 4 << 10

func parseGradeForm(r *http.Request) model.GradeInput {
	field := func(s model.Subject) model.OptionalGrade {
		return grade.ParseOptional(r.FormValue(views.FieldName(s)), formBool(r, views.UnknownFieldName(s)))
	}
	return model.GradeInput{
		NP1: field(model.SubjectNP1),
		NP2: field(model.SubjectNP2),
		PIM: field(model.SubjectPIM),
	}
}

func (h *Handler) calculate(in model.GradeInput) model.GradeResult {
	res := grade.Calculate(in)
	if h.metrics != nil {
		h.metrics.GradeVerdicts.WithLabelValues(string(res.Kind)).Inc()
	}
	return res
}

// handleCalculator answers the calculator form. htmx gets the verdict alone;
// a plain form post gets the full page with the calculator open.
func (h *Handler) handleCalculator(w http.ResponseWriter, r *http.Request) {
	res := h.calculate(parseGradeForm(r))
	if isHTMXRequest(r) {
		render(w, r, views.Verdict(res))
		return
	}
	p := h.load(r)
	p.OpenOverlay(model.OverlayCalculator)
	h.renderFull(w, r, p, &res)
}

func (h *Handler) handleAPIGrade(w http.ResponseWriter, r *http.Request) {
	var in model.GradeInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res := h.calculate(in)
	writeJSON(w, http.StatusOK, model.GradeReport{
		Input:   in,
		Result:  res,
		Message: views.VerdictText(r.Context(), res),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
