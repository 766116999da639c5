// Package server exposes descriptor parsing, formatting and validation over HTTP.
package server

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/argus-labs/godesc/pkg/statsd"
	"github.com/argus-labs/godesc/pkg/validate"
)

const (
	shutdownTimeout = 5 * time.Second

	HeaderRequestID = "X-Request-ID"
)

type Server struct {
	app       *fiber.App
	validator *validate.Validator
	logger    zerolog.Logger
	tracer    trace.Tracer
	port      string
}

// New returns an HTTP server backed by v. Environment configuration is read first and opts are
// merged over it.
func New(v *validate.Validator, logger zerolog.Logger, opts Options) (*Server, error) {
	if v == nil {
		return nil, eris.New("server requires a non-nil validator")
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	options := newDefaultOptions()
	cfg.applyToOptions(&options)
	options.apply(opts)

	app := fiber.New(fiber.Config{
		Network:               "tcp", // Enable server listening on both ipv4 & ipv6 (default: ipv4 only)
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		BodyLimit:             options.BodyLimitKB * bytesPerKb,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	if *options.CORS {
		app.Use(cors.New())
	}

	s := &Server{
		app:       app,
		validator: v,
		logger:    logger,
		tracer:    otel.Tracer("github.com/argus-labs/godesc/pkg/server"),
		port:      options.Port,
	}
	app.Use(s.requestMiddleware)
	s.setupRoutes()

	return s, nil
}

// App returns the underlying fiber app, mostly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves the application, blocking until ctx is canceled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info().Msgf("Starting HTTP server at port %s", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			serverErr <- eris.Wrap(err, "error starting http server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "server encountered an error")
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down server")
		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return eris.Wrap(err, "error shutting down server")
		}
		s.logger.Info().Msg("Successfully shut down server")
	}

	return nil
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", GetHealth(s.validator))
	s.app.Get("/schema", GetSchema())

	s.app.Post("/parse", PostParse())
	s.app.Post("/validate", PostValidate(s.validator))
	s.app.Post("/format", PostFormat())
	s.app.Post("/references", PostReferences())
}

// requestMiddleware tags each request with a request id and a span, and logs it once done.
func (s *Server) requestMiddleware(c *fiber.Ctx) error {
	start := time.Now()

	requestID := c.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(HeaderRequestID, requestID)

	ctx, span := s.tracer.Start(c.UserContext(), c.Method()+" "+c.Path(),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("request.id", requestID)))
	defer span.End()
	c.SetUserContext(ctx)

	err := c.Next()
	if err != nil {
		// Render now so the logged status is the one the client sees.
		if herr := ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	status := c.Response().StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))
	statsd.EmitDuration("http.request", start, "path:"+c.Route().Path)
	s.logger.Debug().
		Str("request_id", requestID).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("took", time.Since(start)).
		Msg("handled request")
	return nil
}
