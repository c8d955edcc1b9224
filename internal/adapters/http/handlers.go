package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"svw.info/watersort/internal/domain"
	"svw.info/watersort/internal/game"
	"svw.info/watersort/internal/generator"
	"svw.info/watersort/internal/infrastructure/storage"
	"svw.info/watersort/internal/ports"
	"svw.info/watersort/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/batch", h.handleBatch)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/stats", h.handleStats)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/pour", h.handlePour)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResp{Error: msg})
}

// decode reads a JSON body for method, writing the error response itself.
func decode(w http.ResponseWriter, r *http.Request, method string, v any) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// generationStatus maps generator request errors to 400 and the rest to 500.
func generationStatus(err error) int {
	switch {
	case errors.Is(err, generator.ErrInvalidLevel),
		errors.Is(err, generator.ErrInvalidColors),
		errors.Is(err, generator.ErrInvalidEmptyTubes),
		errors.Is(err, usecase.ErrMaxBatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ---- Generate ----

type generateResp struct {
	domain.Generation
	DurationMs int64 `json:"durationMs"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req ports.LevelRequest
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	gen, st, err := h.UC.Generate(r.Context(), req)
	if err != nil {
		writeError(w, generationStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generateResp{Generation: gen, DurationMs: st.Duration.Milliseconds()})
}

// ---- Batch ----

type batchReq struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

type batchResp struct {
	Levels []domain.Generation `json:"levels"`
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	levels, err := h.UC.GenerateBatch(r.Context(), req.Start, req.Count)
	if err != nil {
		writeError(w, generationStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, batchResp{Levels: levels})
}

// ---- Validate / Stats ----

type levelReq struct {
	Level domain.LevelConfig `json:"level"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req levelReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	res, err := h.UC.Validate(r.Context(), &req.Level)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	var req levelReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.UC.Stats(&req.Level))
}

// ---- Hint / Pour ----

type boardReq struct {
	Tubes []domain.TestTube `json:"tubes"`
	Move  *domain.Move      `json:"move,omitempty"`
}

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), req.Tubes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePour(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	if req.Move == nil {
		writeError(w, http.StatusBadRequest, "missing move")
		return
	}
	res, err := h.UC.Pour(req.Tubes, *req.Move)
	if errors.Is(err, game.ErrIllegalPour) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ---- Save / Load / List ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var l domain.SavedLevel
	if !decode(w, r, http.MethodPost, &l) {
		return
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &l); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrMissingID) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: l.ID})
}

type loadReq struct {
	ID string `json:"id"`
}

type loadResp struct {
	Level *domain.SavedLevel `json:"level"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "missing id")
		return
	}
	l, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrMissingID) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Level: l})
}

type listResp struct {
	Levels []domain.SavedLevelMeta `json:"levels"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ls, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listResp{Levels: ls})
}
