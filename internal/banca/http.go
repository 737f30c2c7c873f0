package banca

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Handler orquestra rotas de bancas examinadoras.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/bancas", func(r chi.Router) {
		r.Post("/", h.handleAgendar)
		r.Get("/{id}", h.handleBuscar)
		r.Post("/{id}/membros", h.handleAdicionarMembro)
		r.Delete("/{id}/membros/{membroId}", h.handleRemoverMembro)
		r.Put("/{id}/membros/{membroId}/presidente", h.handleDefinirPresidente)
		r.Post("/{id}/membros/{membroId}/confirmacao", h.handleConfirmarPresenca)
		r.Put("/{id}/membros/{membroId}/presenca", h.handleRegistrarPresenca)
		r.Put("/{id}/membros/{membroId}/nota", h.handleAtribuirNota)
		r.Post("/{id}/inicio", h.handleIniciar)
		r.Post("/{id}/finalizacao", h.handleFinalizar)
		r.Post("/{id}/cancelamento", h.handleCancelar)
		r.Post("/{id}/adiamento", h.handleAdiar)
		r.Post("/{id}/reagendamento", h.handleReagendar)
	})
	r.Get("/trabalhos/{id}/bancas", h.handleListarPorTrabalho)
}

type agendarRequest struct {
	TrabalhoID   uuid.UUID  `json:"trabalho_id" validate:"required"`
	SecretarioID *uuid.UUID `json:"secretario_id"`
	Tipo         string     `json:"tipo" validate:"required"`
	Modalidade   string     `json:"modalidade" validate:"required"`
	DataAgendada time.Time  `json:"data_agendada" validate:"required"`
	Local        string     `json:"local"`
	LinkVideo    string     `json:"link_video"`
}

func (h *Handler) handleAgendar(w http.ResponseWriter, r *http.Request) {
	var req agendarRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	b, err := h.service.Agendar(r.Context(), Banca{
		TrabalhoID:   req.TrabalhoID,
		SecretarioID: req.SecretarioID,
		Tipo:         TipoBanca(req.Tipo),
		Modalidade:   Modalidade(req.Modalidade),
		DataAgendada: req.DataAgendada,
		Local:        req.Local,
		LinkVideo:    req.LinkVideo,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	b, err := h.service.BuscarPorID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleListarPorTrabalho(w http.ResponseWriter, r *http.Request) {
	trabalhoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "trabalho inválido", nil)
		return
	}

	bancas, err := h.service.ListarPorTrabalho(r.Context(), trabalhoID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, bancas)
}

type membroRequest struct {
	DocenteID   *uuid.UUID `json:"docente_id"`
	Nome        string     `json:"nome"`
	Instituicao string     `json:"instituicao"`
	Funcao      string     `json:"funcao" validate:"required"`
	Tipo        string     `json:"tipo" validate:"required"`
}

func (h *Handler) handleAdicionarMembro(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req membroRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.AdicionarMembro(r.Context(), id, MembroBanca{
		DocenteID:   req.DocenteID,
		Nome:        req.Nome,
		Instituicao: req.Instituicao,
		Funcao:      FuncaoMembro(req.Funcao),
		Tipo:        TipoMembro(req.Tipo),
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

func parseBancaMembro(r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	bancaID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	membroID, err := uuid.Parse(chi.URLParam(r, "membroId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return bancaID, membroID, true
}

func (h *Handler) handleRemoverMembro(w http.ResponseWriter, r *http.Request) {
	bancaID, membroID, ok := parseBancaMembro(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.service.RemoverMembro(r.Context(), bancaID, membroID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, nil)
}

func (h *Handler) handleDefinirPresidente(w http.ResponseWriter, r *http.Request) {
	bancaID, membroID, ok := parseBancaMembro(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	b, err := h.service.DefinirPresidente(r.Context(), bancaID, membroID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleConfirmarPresenca(w http.ResponseWriter, r *http.Request) {
	bancaID, membroID, ok := parseBancaMembro(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	m, err := h.service.ConfirmarPresenca(r.Context(), bancaID, membroID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

type presencaRequest struct {
	Presente      bool   `json:"presente"`
	Justificativa string `json:"justificativa"`
}

func (h *Handler) handleRegistrarPresenca(w http.ResponseWriter, r *http.Request) {
	bancaID, membroID, ok := parseBancaMembro(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req presencaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.RegistrarPresenca(r.Context(), bancaID, membroID, req.Presente, req.Justificativa)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

type notaMembroRequest struct {
	Nota    float64 `json:"nota" validate:"gte=0,lte=10"`
	Parecer string  `json:"parecer"`
}

func (h *Handler) handleAtribuirNota(w http.ResponseWriter, r *http.Request) {
	bancaID, membroID, ok := parseBancaMembro(r)
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req notaMembroRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	m, err := h.service.AtribuirNota(r.Context(), bancaID, membroID, req.Nota, req.Parecer)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleIniciar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	b, err := h.service.Iniciar(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

type finalizarRequest struct {
	Resultado         string     `json:"resultado" validate:"required"`
	Ata               string     `json:"ata"`
	CorrecoesExigidas string     `json:"correcoes_exigidas"`
	PrazoCorrecoes    *time.Time `json:"prazo_correcoes"`
}

func (h *Handler) handleFinalizar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req finalizarRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	b, err := h.service.Finalizar(r.Context(), id, FinalizarInput{
		Resultado:         ResultadoBanca(req.Resultado),
		Ata:               req.Ata,
		CorrecoesExigidas: req.CorrecoesExigidas,
		PrazoCorrecoes:    req.PrazoCorrecoes,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

type motivoRequest struct {
	Motivo string `json:"motivo" validate:"required"`
}

func (h *Handler) handleCancelar(w http.ResponseWriter, r *http.Request) {
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

	b, err := h.service.Cancelar(r.Context(), id, req.Motivo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleAdiar(w http.ResponseWriter, r *http.Request) {
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

	b, err := h.service.Adiar(r.Context(), id, req.Motivo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}

type reagendarRequest struct {
	DataAgendada time.Time `json:"data_agendada" validate:"required"`
	Local        string    `json:"local"`
	LinkVideo    string    `json:"link_video"`
}

func (h *Handler) handleReagendar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req reagendarRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	b, err := h.service.Reagendar(r.Context(), id, req.DataAgendada, req.Local, req.LinkVideo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, b)
}
