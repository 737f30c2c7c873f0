package catalogo

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Handler orquestra rotas de disciplinas e ofertas.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/disciplinas", func(r chi.Router) {
		r.Post("/", h.handleCriarDisciplina)
		r.Get("/{id}", h.handleBuscarDisciplina)
		r.Put("/{id}", h.handleAtualizarDisciplina)
	})
	r.Get("/programas/{programaId}/disciplinas", h.handleListarDisciplinas)

	r.Route("/ofertas", func(r chi.Router) {
		r.Post("/", h.handleCriarOferta)
		r.Get("/{id}", h.handleBuscarOferta)
		r.Put("/{id}", h.handleAtualizarOferta)
		r.Post("/{id}/abrir", h.handleTransicao(h.service.AbrirOferta))
		r.Post("/{id}/fechar", h.handleTransicao(h.service.FecharOferta))
		r.Post("/{id}/iniciar", h.handleTransicao(h.service.IniciarOferta))
		r.Post("/{id}/concluir", h.handleTransicao(h.service.ConcluirOferta))
		r.Post("/{id}/cancelar", h.handleTransicao(h.service.CancelarOferta))
	})
	r.Get("/periodos/{periodo}/ofertas", h.handleListarOfertas)
	r.Get("/periodos/{periodo}/ofertas/vagas", h.handleListarOfertasComVagas)
}

type criarDisciplinaRequest struct {
	ProgramaID          uuid.UUID `json:"programa_id" validate:"required"`
	Codigo              string    `json:"codigo" validate:"required"`
	Nome                string    `json:"nome" validate:"required"`
	Ementa              string    `json:"ementa"`
	CargaHorariaTeoria  int       `json:"carga_horaria_teoria" validate:"min=0"`
	CargaHorariaPratica int       `json:"carga_horaria_pratica" validate:"min=0"`
	Tipo                string    `json:"tipo" validate:"required"`
}

func (h *Handler) handleCriarDisciplina(w http.ResponseWriter, r *http.Request) {
	var req criarDisciplinaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.CriarDisciplina(r.Context(), Disciplina{
		ProgramaID:          req.ProgramaID,
		Codigo:              req.Codigo,
		Nome:                req.Nome,
		Ementa:              req.Ementa,
		CargaHorariaTeoria:  req.CargaHorariaTeoria,
		CargaHorariaPratica: req.CargaHorariaPratica,
		Tipo:                TipoDisciplina(req.Tipo),
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleBuscarDisciplina(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	d, err := h.service.BuscarDisciplina(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

type atualizarDisciplinaRequest struct {
	Nome                string `json:"nome" validate:"required"`
	Ementa              string `json:"ementa"`
	CargaHorariaTeoria  int    `json:"carga_horaria_teoria" validate:"min=0"`
	CargaHorariaPratica int    `json:"carga_horaria_pratica" validate:"min=0"`
	Tipo                string `json:"tipo" validate:"required"`
	Status              string `json:"status" validate:"required"`
}

func (h *Handler) handleAtualizarDisciplina(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req atualizarDisciplinaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	d, err := h.service.AtualizarDisciplina(r.Context(), Disciplina{
		ID:                  id,
		Nome:                req.Nome,
		Ementa:              req.Ementa,
		CargaHorariaTeoria:  req.CargaHorariaTeoria,
		CargaHorariaPratica: req.CargaHorariaPratica,
		Tipo:                TipoDisciplina(req.Tipo),
		Status:              StatusDisciplina(req.Status),
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListarDisciplinas(w http.ResponseWriter, r *http.Request) {
	programaID, err := uuid.Parse(chi.URLParam(r, "programaId"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "programa inválido", nil)
		return
	}

	disciplinas, err := h.service.ListarDisciplinas(r.Context(), programaID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, disciplinas)
}

type criarOfertaRequest struct {
	DisciplinaID uuid.UUID `json:"disciplina_id" validate:"required"`
	DocenteID    uuid.UUID `json:"docente_id" validate:"required"`
	Periodo      string    `json:"periodo" validate:"required"`
	Vagas        int       `json:"vagas" validate:"required,min=1"`
	Horario      string    `json:"horario"`
	Sala         string    `json:"sala"`
}

func (h *Handler) handleCriarOferta(w http.ResponseWriter, r *http.Request) {
	var req criarOfertaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	o, err := h.service.CriarOferta(r.Context(), Oferta{
		DisciplinaID: req.DisciplinaID,
		DocenteID:    req.DocenteID,
		Periodo:      req.Periodo,
		Vagas:        req.Vagas,
		Horario:      req.Horario,
		Sala:         req.Sala,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) handleBuscarOferta(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	o, err := h.service.BuscarOferta(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, o)
}

type atualizarOfertaRequest struct {
	DocenteID uuid.UUID `json:"docente_id" validate:"required"`
	Vagas     int       `json:"vagas" validate:"required,min=1"`
	Horario   string    `json:"horario"`
	Sala      string    `json:"sala"`
}

func (h *Handler) handleAtualizarOferta(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req atualizarOfertaRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	o, err := h.service.AtualizarOferta(r.Context(), Oferta{
		ID:        id,
		DocenteID: req.DocenteID,
		Vagas:     req.Vagas,
		Horario:   req.Horario,
		Sala:      req.Sala,
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) handleTransicao(fn func(ctx context.Context, id uuid.UUID) (Oferta, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
			return
		}

		o, err := fn(r.Context(), id)
		if err != nil {
			respond.WriteDomainError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, o)
	}
}

func (h *Handler) handleListarOfertas(w http.ResponseWriter, r *http.Request) {
	ofertas, err := h.service.ListarOfertasPorPeriodo(r.Context(), chi.URLParam(r, "periodo"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ofertas)
}

func (h *Handler) handleListarOfertasComVagas(w http.ResponseWriter, r *http.Request) {
	ofertas, err := h.service.ListarOfertasComVagas(r.Context(), chi.URLParam(r, "periodo"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, ofertas)
}
