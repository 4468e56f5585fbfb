package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cardcopy/internal/config"
	"github.com/jonathan/cardcopy/internal/generation"
	"github.com/jonathan/cardcopy/internal/server/middleware"
	"github.com/jonathan/cardcopy/internal/server/ratelimit"
	"github.com/jonathan/cardcopy/internal/types"
)

const (
	serviceName     = "card-copy-generator"
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 30 * time.Second
)

// CopyGenerator produces card copy for the generate endpoint.
// *generation.Generator satisfies it.
type CopyGenerator interface {
	Generate(ctx context.Context, fields types.FieldSet, style types.Style) generation.Result
	Model() string
	HasClient() bool
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	generator   CopyGenerator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      zerolog.Logger
}

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Generator    CopyGenerator
	// JWT enables bearer authentication on the generate endpoint; nil disables it
	JWT *config.JWTConfig
	// RateLimit configures per-client limits; nil disables limiting
	RateLimit      *ratelimit.Config
	AllowedOrigins []string
	Logger         zerolog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}

	s := &Server{
		generator: cfg.Generator,
		logger:    cfg.Logger,
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withCORS(cfg.AllowedOrigins, s.withLogging(s.withRateLimit(s.routes()))),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes registers the API endpoints.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	var generate http.Handler = http.HandlerFunc(s.handleGenerate)
	if s.jwtService != nil {
		generate = middleware.AuthMiddleware(s.jwtService.AsTokenValidator(), s.writeAuthError)(generate)
	}
	mux.Handle("POST /api/generate", generate)

	return mux
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info().Msg("server stopped")
	return err
}

// withCORS adds CORS headers and answers preflight requests
func (s *Server) withCORS(origins []string, next http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{
			requestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
		},
		MaxAge: 300,
	})
	return c.Handler(next)
}

type requestIDKey struct{}

// RequestID returns the request ID assigned by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging assigns a request ID and attaches a request-scoped logger
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		logger := s.logger.With().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ctx := context.WithValue(logger.WithContext(r.Context()), requestIDKey{}, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Info().
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request completed")
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID extracts the client identifier from the request.
// Only RemoteAddr is trusted; forwarding headers are ignored.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := int(info.RetryAfter.Round(time.Second).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	response := map[string]any{
		"success":     false,
		"error":       "rate_limit_exceeded",
		"message":     "Rate limit exceeded. Please try again later.",
		"limit":       info.Limit,
		"remaining":   info.Remaining,
		"reset_at":    info.ResetTime.UTC().Format(time.RFC3339),
		"retry_after": retryAfter,
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	zerolog.Ctx(r.Context()).Warn().
		Int("limit", info.Limit).
		Int("retry_after", retryAfter).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes the error envelope for err
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	s.jsonResponse(w, status, types.GenerateResponse{
		Success: false,
		Error:   publicMessage(err),
	})
}

// writeAuthError is the ErrorWriter for the authentication middleware.
func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Info().Err(err).Msg("authentication failed")
	s.errorResponse(w, r, authError(err))
}

// publicMessage returns the text of err that is safe to show callers.
func publicMessage(err error) string {
	var validationErr *ErrValidation
	var unauthorizedErr *ErrUnauthorized
	var forbiddenErr *ErrForbidden

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &unauthorizedErr):
		return unauthorizedErr.Message
	case errors.As(err, &forbiddenErr):
		return forbiddenErr.Message
	default:
		return "Internal server error"
	}
}
