package discente

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Handler orquestra rotas de discentes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/discentes", func(r chi.Router) {
		r.Post("/", h.handleMatricular)
		r.Get("/{id}", h.handleBuscar)
		r.Delete("/{id}", h.handleDeletar)
		r.Post("/{id}/qualificacao", h.handleQualificacao)
		r.Post("/{id}/defesa", h.handleDefesa)
		r.Post("/{id}/prorrogacoes", h.handleProrrogar)
		r.Post("/{id}/trancamento", h.handleTrancar)
		r.Post("/{id}/desligamento", h.handleDesligar)
		r.Post("/{id}/titulacao", h.handleTitular)
	})
	r.Get("/programas/{programaId}/discentes", h.handleListarPorPrograma)
}

type matricularRequest struct {
	ProgramaID   uuid.UUID `json:"programa_id" validate:"required"`
	OrientadorID uuid.UUID `json:"orientador_id" validate:"required"`
	Nome         string    `json:"nome" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	TipoCurso    string    `json:"tipo_curso" validate:"required"`
	DataIngresso time.Time `json:"data_ingresso"`
}

func (h *Handler) handleMatricular(w http.ResponseWriter, r *http.Request) {
	var req matricularRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.Matricular(r.Context(), Discente{
		ProgramaID:   req.ProgramaID,
		OrientadorID: req.OrientadorID,
		Nome:         req.Nome,
		Email:        req.Email,
		TipoCurso:    TipoCurso(req.TipoCurso),
		DataIngresso: req.DataIngresso,
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

	discentes, err := h.service.ListarPorPrograma(r.Context(), programaID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, discentes)
}

type qualificacaoRequest struct {
	Data      time.Time `json:"data" validate:"required"`
	Resultado string    `json:"resultado" validate:"required"`
}

func (h *Handler) handleQualificacao(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req qualificacaoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.RegistrarQualificacao(r.Context(), id, req.Data, req.Resultado)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

type defesaRequest struct {
	Data      time.Time `json:"data" validate:"required"`
	Resultado string    `json:"resultado" validate:"required"`
	Nota      *float64  `json:"nota" validate:"omitempty,gte=0,lte=10"`
}

func (h *Handler) handleDefesa(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req defesaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.RegistrarDefesa(r.Context(), id, req.Data, req.Resultado, req.Nota)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

type prorrogacaoRequest struct {
	Meses  int    `json:"meses" validate:"required,min=1,max=12"`
	Motivo string `json:"motivo" validate:"required"`
}

func (h *Handler) handleProrrogar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req prorrogacaoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.Prorrogar(r.Context(), id, req.Meses, req.Motivo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

type motivoRequest struct {
	Motivo string `json:"motivo" validate:"required"`
}

func (h *Handler) handleTrancar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req motivoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.Trancar(r.Context(), id, req.Motivo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDesligar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req motivoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.Desligar(r.Context(), id, req.Motivo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleTitular(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	d, err := h.service.Titular(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDeletar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.service.Deletar(r.Context(), id); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, nil)
}
