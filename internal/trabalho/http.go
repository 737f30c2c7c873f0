package trabalho

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/util"
)

// Limite de upload do documento do trabalho.
const maxArquivoBytes = 25 << 20

// Handler orquestra rotas de trabalhos de conclusão.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trabalhos", func(r chi.Router) {
		r.Post("/", h.handleCriar)
		r.Get("/painel", h.handlePainel)
		r.Get("/{id}", h.handleBuscar)
		r.Put("/{id}", h.handleAtualizar)
		r.Post("/{id}/submissao", h.handleSubmeter)
		r.Post("/{id}/arquivo", h.handleAnexarArquivo)
		r.Post("/{id}/publicacao", h.handlePublicar)
	})
	r.Get("/discentes/{id}/trabalho", h.handleBuscarPorDiscente)
	r.Get("/docentes/{id}/trabalhos", h.handleListarPorOrientador)
}

type criarTrabalhoRequest struct {
	DiscenteID    uuid.UUID `json:"discente_id" validate:"required"`
	OrientadorID  uuid.UUID `json:"orientador_id"`
	Titulo        string    `json:"titulo" validate:"required"`
	Resumo        string    `json:"resumo"`
	PalavrasChave []string  `json:"palavras_chave"`
	Tipo          string    `json:"tipo" validate:"required"`
}

func (h *Handler) handleCriar(w http.ResponseWriter, r *http.Request) {
	var req criarTrabalhoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	t, err := h.service.Criar(r.Context(), TrabalhoConclusao{
		DiscenteID:    req.DiscenteID,
		OrientadorID:  req.OrientadorID,
		Titulo:        req.Titulo,
		Resumo:        req.Resumo,
		PalavrasChave: req.PalavrasChave,
		Tipo:          TipoTrabalho(req.Tipo),
	})
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) handleBuscar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	t, err := h.service.BuscarPorID(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

type atualizarTrabalhoRequest struct {
	Titulo        string   `json:"titulo" validate:"required"`
	Resumo        string   `json:"resumo"`
	PalavrasChave []string `json:"palavras_chave"`
}

func (h *Handler) handleAtualizar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req atualizarTrabalhoRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	t, err := h.service.Atualizar(r.Context(), id, req.Titulo, req.Resumo, req.PalavrasChave)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleSubmeter(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	t, err := h.service.Submeter(r.Context(), id)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleAnexarArquivo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := r.ParseMultipartForm(maxArquivoBytes); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "multipart inválido", nil)
		return
	}
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "campo arquivo ausente", nil)
		return
	}
	defer file.Close()

	corpo, err := io.ReadAll(io.LimitReader(file, maxArquivoBytes))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "falha ao ler arquivo", nil)
		return
	}

	t, err := h.service.AnexarArquivo(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), corpo)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

type publicarRequest struct {
	LocalPublicacao string `json:"local_publicacao" validate:"required"`
}

func (h *Handler) handlePublicar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req publicarRequest
	if err := util.DecodeValid(r, &req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
		return
	}

	t, err := h.service.Publicar(r.Context(), id, req.LocalPublicacao)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleBuscarPorDiscente(w http.ResponseWriter, r *http.Request) {
	discenteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "discente inválido", nil)
		return
	}

	t, err := h.service.BuscarPorDiscente(r.Context(), discenteID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) handleListarPorOrientador(w http.ResponseWriter, r *http.Request) {
	docenteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION", "docente inválido", nil)
		return
	}

	trabalhos, err := h.service.ListarPorOrientador(r.Context(), docenteID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, trabalhos)
}

func (h *Handler) handlePainel(w http.ResponseWriter, r *http.Request) {
	painel, err := h.service.Painel(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, painel)
}
