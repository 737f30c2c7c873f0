package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ppghub/academico/internal/banca"
	"github.com/ppghub/academico/internal/catalogo"
	"github.com/ppghub/academico/internal/clock"
	"github.com/ppghub/academico/internal/config"
	"github.com/ppghub/academico/internal/discente"
	"github.com/ppghub/academico/internal/docente"
	httpmiddleware "github.com/ppghub/academico/internal/http/middleware"
	"github.com/ppghub/academico/internal/http/respond"
	"github.com/ppghub/academico/internal/matricula"
	"github.com/ppghub/academico/internal/storage"
	"github.com/ppghub/academico/internal/trabalho"
)

// Handler agrega as dependências compartilhadas do roteador.
type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	publicLimiter *httpmiddleware.RateLimiter
}

// NewRouter monta os serviços do programa e devolve o roteador configurado.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client) (http.Handler, error) {
	clk := clock.System{}
	uploader := storage.NewMemoriaUploader("")

	docenteRepo := docente.NewRepository(pool)
	docenteService := docente.NewService(docenteRepo)
	docenteHandler := docente.NewHandler(docenteService)

	discenteRepo := discente.NewRepository(pool)
	discenteService := discente.NewService(discenteRepo, docenteService, clk)
	discenteHandler := discente.NewHandler(discenteService)

	catalogoRepo := catalogo.NewRepository(pool)
	catalogoService := catalogo.NewService(catalogoRepo, redisClient)
	catalogoHandler := catalogo.NewHandler(catalogoService)

	matriculaRepo := matricula.NewRepository(pool, cfg.LockTimeout)
	matriculaService := matricula.NewService(matriculaRepo, clk)
	matriculaHandler := matricula.NewHandler(matriculaService)

	trabalhoRepo := trabalho.NewRepository(pool)
	trabalhoService := trabalho.NewService(trabalhoRepo, discenteService, uploader, clk)
	trabalhoHandler := trabalho.NewHandler(trabalhoService)

	bancaRepo := banca.NewRepository(pool)
	bancaService := banca.NewService(bancaRepo, trabalhoService, docenteService, clk)
	bancaHandler := banca.NewHandler(bancaService)

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)
	})

	r.Route("/v1", func(api chi.Router) {
		api.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		docenteHandler.RegisterRoutes(api)
		discenteHandler.RegisterRoutes(api)
		catalogoHandler.RegisterRoutes(api)
		matriculaHandler.RegisterRoutes(api)
		trabalhoHandler.RegisterRoutes(api)
		bancaHandler.RegisterRoutes(api)
	})

	return r, nil
}

// Health responde vivacidade do processo.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready confere as dependências antes de aceitar tráfego.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(ctx); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "banco indisponível", nil)
		return
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			respond.WriteError(w, http.StatusServiceUnavailable, "REDIS_UNAVAILABLE", "redis indisponível", nil)
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
