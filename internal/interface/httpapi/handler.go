package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"railledger-service/internal/domain/entity"
	"railledger-service/internal/domain/repository"
	"railledger-service/internal/usecase"
	"railledger-service/pkg/logger"
	"railledger-service/pkg/validation"
)

// Handler exposes the reconciliation engine over HTTP. Routing stays on the
// standard mux; the engine is the product, not the web layer.
type Handler struct {
	reconciler *usecase.Reconciler
	resolver   *usecase.ProfileResolver
	ticketRepo repository.TicketRepository
	logger     logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	reconciler *usecase.Reconciler,
	resolver *usecase.ProfileResolver,
	ticketRepo repository.TicketRepository,
	log logger.Logger,
) *Handler {
	return &Handler{
		reconciler: reconciler,
		resolver:   resolver,
		ticketRepo: ticketRepo,
		logger:     log,
	}
}

// Register attaches the API routes to a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tickets/import", h.importTicket)
	mux.HandleFunc("POST /api/tickets/validate", h.validateTicket)
	mux.HandleFunc("GET /api/tickets/{pnr}", h.getTicket)
	mux.HandleFunc("GET /api/profiles/duplicates", h.listDuplicateProfiles)
	mux.HandleFunc("POST /api/profiles/merge", h.mergeProfiles)
}

type importResponse struct {
	Result *entity.ImportResult `json:"result"`
	Report *validation.Report   `json:"report,omitempty"`
}

func (h *Handler) importTicket(w http.ResponseWriter, r *http.Request) {
	var ext entity.TicketExtraction
	if err := json.NewDecoder(r.Body).Decode(&ext); err != nil {
		writeError(w, http.StatusBadRequest, "invalid extraction payload: "+err.Error())
		return
	}
	sourceFile := r.URL.Query().Get("source")

	res, report, err := h.reconciler.Process(r.Context(), &ext, sourceFile)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidStructure) {
			writeJSON(w, http.StatusUnprocessableEntity, importResponse{Result: res, Report: report})
			return
		}
		h.logger.Error("Import failed", "pnr", ext.PNR, "error", err)
		writeJSON(w, http.StatusInternalServerError, importResponse{Result: res, Report: report})
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Result: res, Report: report})
}

func (h *Handler) validateTicket(w http.ResponseWriter, r *http.Request) {
	var ext entity.TicketExtraction
	if err := json.NewDecoder(r.Body).Decode(&ext); err != nil {
		writeError(w, http.StatusBadRequest, "invalid extraction payload: "+err.Error())
		return
	}
	ext.PNR = strings.ToUpper(strings.TrimSpace(ext.PNR))
	writeJSON(w, http.StatusOK, validation.BuildReport(&ext))
}

type ticketResponse struct {
	Ticket     *entity.StoredTicket `json:"ticket"`
	Passengers []entity.Passenger   `json:"passengers"`
	Journeys   []entity.Journey     `json:"journeys"`
}

func (h *Handler) getTicket(w http.ResponseWriter, r *http.Request) {
	pnr := strings.ToUpper(r.PathValue("pnr"))
	ticket, err := h.ticketRepo.FindByPNR(r.Context(), pnr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no ticket with PNR "+pnr)
			return
		}
		h.logger.Error("Ticket lookup failed", "pnr", pnr, "error", err)
		writeError(w, http.StatusInternalServerError, "ticket lookup failed")
		return
	}
	passengers, err := h.ticketRepo.ListPassengers(r.Context(), ticket.ID)
	if err != nil {
		h.logger.Error("Passenger lookup failed", "pnr", pnr, "error", err)
		writeError(w, http.StatusInternalServerError, "passenger lookup failed")
		return
	}
	journeys, err := h.ticketRepo.ListJourneys(r.Context(), ticket.ID)
	if err != nil {
		h.logger.Error("Journey lookup failed", "pnr", pnr, "error", err)
		writeError(w, http.StatusInternalServerError, "journey lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, ticketResponse{Ticket: ticket, Passengers: passengers, Journeys: journeys})
}

func (h *Handler) listDuplicateProfiles(w http.ResponseWriter, r *http.Request) {
	groups, err := h.resolver.FindMergeCandidates(r.Context())
	if err != nil {
		h.logger.Error("Duplicate profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "duplicate profile lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

type mergeRequest struct {
	PrimaryID    uint   `json:"primary_id"`
	DuplicateIDs []uint `json:"duplicate_ids"`
}

func (h *Handler) mergeProfiles(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid merge payload: "+err.Error())
		return
	}
	if req.PrimaryID == 0 {
		writeError(w, http.StatusBadRequest, "primary_id is required")
		return
	}
	if err := h.resolver.Merge(r.Context(), req.PrimaryID, req.DuplicateIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Profile merge failed", "primary", req.PrimaryID, "error", err)
		writeError(w, http.StatusInternalServerError, "profile merge failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"merged": len(req.DuplicateIDs)})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
