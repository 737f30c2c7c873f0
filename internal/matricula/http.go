package matricula

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Handler orquestra rotas de matrículas.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/matriculas", func(r chi.Router) {
		r.Post("/", h.handleMatricular)
		r.Get("/{id}", h.handleBuscar)
		r.Post("/{id}/trancamento", h.handleTrancar)
		r.Post("/{id}/cancelamento", h.handleCancelar)
		r.Put("/{id}/nota", h.handleLancarNota)
		r.Put("/{id}/frequencia", h.handleLancarFrequencia)
		r.Post("/{id}/resultado", h.handleCalcularResultado)
	})
	r.Get("/ofertas/{id}/matriculas", h.handleListarPorOferta)
	r.Post("/ofertas/{id}/resultados", h.handleCalcularResultadosOferta)
	r.Get("/discentes/{id}/matriculas", h.handleListarPorDiscente)
}

type matricularRequest struct {
	OfertaID   uuid.UUID `json:"oferta_id" validate:"required"`
	DiscenteID uuid.UUID `json:"discente_id" validate:"required"`
}

func (h *Handler) handleMatricular(w http.ResponseWriter, r *http.Request) {
	var req matricularRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.Matricular(r.Context(), req.OfertaID, req.DiscenteID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	m, err := h.service.BuscarPorID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleTrancar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	m, err := h.service.Trancar(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleCancelar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	m, err := h.service.Cancelar(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

type notaRequest struct {
	Nota float64 `json:"nota" validate:"gte=0,lte=10"`
}

func (h *Handler) handleLancarNota(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req notaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.LancarNota(r.Context(), id, req.Nota)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

type frequenciaRequest struct {
	Frequencia float64 `json:"frequencia" validate:"gte=0,lte=100"`
}

func (h *Handler) handleLancarFrequencia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req frequenciaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.LancarFrequencia(r.Context(), id, req.Frequencia)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleCalcularResultado(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	m, err := h.service.CalcularResultado(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleListarPorOferta(w http.ResponseWriter, r *http.Request) {
	ofertaID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "oferta inválida", nil)
		return
	}

	matriculas, err := h.service.ListarPorOferta(r.Context(), ofertaID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, matriculas)
}

func (h *Handler) handleCalcularResultadosOferta(w http.ResponseWriter, r *http.Request) {
	ofertaID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "oferta inválida", nil)
		return
	}

	resumo, err := h.service.CalcularResultadosOferta(r.Context(), ofertaID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, resumo)
}

func (h *Handler) handleListarPorDiscente(w http.ResponseWriter, r *http.Request) {
	discenteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "discente inválido", nil)
		return
	}

	matriculas, err := h.service.ListarPorDiscente(r.Context(), discenteID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, matriculas)
}
