package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/house-services-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/house-services-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// JWTService is nil when authentication is disabled.
	JWTService jwt.Service
}

func NewRouter(opts RouterOptions, employeeHandler EmployeeHandler, invoiceHandler InvoiceHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.ListEmployees)
		r.Get("/{id}", employeeHandler.GetEmployee)
	})

	r.Route("/house-services", func(r chi.Router) {
		r.Get("/", invoiceHandler.ListInvoices)
		r.Get("/{id}", invoiceHandler.GetInvoice)

		// Writes require authentication when a signing key is configured
		r.Group(func(r chi.Router) {
			if opts.JWTService != nil {
				r.Use(jwtauth.Verifier(opts.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired)
			}

			r.Post("/", invoiceHandler.CreateInvoice)
			r.Post("/calculate", invoiceHandler.CalculateInvoice)
			r.Patch("/{id}", invoiceHandler.UpdateInvoice)
		})
	})

	return r
}

// NewLogger builds the JSON slog logger shared by the request logger and the services.
func NewLogger(appName, env string, level slog.Level, w io.Writer) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", appName),
		slog.String("env", env),
	)
}
