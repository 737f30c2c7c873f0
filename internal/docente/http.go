package docente

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Handler orquestra rotas de docentes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/docentes", func(r chi.Router) {
		r.Post("/", h.handleCriar)
		r.Get("/{id}", h.handleBuscar)
		r.Put("/{id}/status", h.handleAtualizarStatus)
		r.Post("/{id}/orientacoes", h.handleVincularOrientacao)
		r.Post("/{id}/orientacoes/concluir", h.handleConcluirOrientacao)
	})
	r.Get("/programas/{programaId}/docentes", h.handleListarPorPrograma)
}

type criarDocenteRequest struct {
	ProgramaID uuid.UUID `json:"programa_id" validate:"required"`
	Nome       string    `json:"nome" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Vinculo    string    `json:"vinculo" validate:"required"`
}

func (h *Handler) handleCriar(w http.ResponseWriter, r *http.Request) {
	var req criarDocenteRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.Criar(r.Context(), Docente{
		ProgramaID: req.ProgramaID,
		Nome:       req.Nome,
		Email:      req.Email,
		Vinculo:    TipoVinculo(req.Vinculo),
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	d, err := h.service.BuscarPorID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListarPorPrograma(w http.ResponseWriter, r *http.Request) {
	programaID, err := uuid.Parse(chi.URLParam(r, "programaId"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "programa inválido", nil)
		return
	}

	docentes, err := h.service.ListarPorPrograma(r.Context(), programaID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"docentes": docentes})
}

type statusDocenteRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) handleAtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req statusDocenteRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	if err := h.service.AtualizarStatus(r.Context(), id, StatusDocente(req.Status)); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

type orientacaoRequest struct {
	Tipo string `json:"tipo" validate:"required"`
}

func (h *Handler) handleVincularOrientacao(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req orientacaoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.VincularOrientacao(r.Context(), id, TipoOrientacao(req.Tipo))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleConcluirOrientacao(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req orientacaoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.ConcluirOrientacao(r.Context(), id, TipoOrientacao(req.Tipo))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}
