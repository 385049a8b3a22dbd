// http собирает операторский HTTP API сервиса: маршруты, middleware
// и формат ошибок. Служебные эндпойнты (/livez, /healthz, /metrics)
// регистрируются отдельно в main и под операторский ключ не попадают.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/edm-sync/internal/service"
	"github.com/pribylovaa/edm-sync/internal/transport/http/handlers"
	"github.com/pribylovaa/edm-sync/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// APIKey — операторский ключ для X-Api-Key; закрывает все маршруты роутера.
	APIKey   string
	BasePath string // например, "/admin"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}
	root.Use(middleware.APIKey(opts.APIKey)) // весь роутер — операторский

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// учётные данные
	r.Post("/credentials", h.CreateCredential)
	r.Get("/credentials", h.ListCredentials)
	r.Get("/credentials/{id}", h.GetCredential)
	r.Delete("/credentials/{id}", h.RevokeCredential)

	// массовые обходы
	r.Post("/sweep", h.SweepAll)
	r.Post("/sweep/due", h.SweepDue)

	// проверка выдачи токена
	r.Post("/token/check", h.CheckToken)
}
