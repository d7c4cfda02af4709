package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/admission"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/auditlog"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/config"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/notifier"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/pipeline"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/roster"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/spam"
	"github.com/achrafbenamrane/Student-Reclamation-Portal/internal/validation"
)

// Server is the HTTP server for the submission gateway.
type Server struct {
	cfg     config.Config
	logger  *zap.Logger
	limiter *admission.Limiter
	guard   *admission.DuplicateGuard
	handler *pipeline.Handler
	server  *http.Server
}

// NewServer assembles the full pipeline behind an HTTP server.
func NewServer(cfg config.Config, r *roster.Roster, audit *auditlog.Store, logger *zap.Logger) *Server {
	limiter := admission.NewLimiter(logger, admission.LimiterOptions{
		Interval:    cfg.RateLimitInterval,
		MaxRequests: cfg.RateLimitMax,
	})
	guard := admission.NewDuplicateGuard(logger, admission.GuardOptions{
		History:  cfg.DuplicateHistory,
		Debounce: cfg.DuplicateDebounce,
	})
	sender := notifier.NewTelegramSender(logger, notifier.TelegramConfig{
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
		Timeout:  cfg.NotifierTimeout,
	})

	var auditor pipeline.Auditor
	if audit != nil {
		auditor = audit
	}

	p := pipeline.New(logger,
		pipeline.Options{
			AllowedOrigins:      cfg.AllowedOrigins,
			GlobalRatePerSecond: cfg.GlobalRatePerSecond,
		},
		limiter, guard,
		validation.New(r),
		spam.NewDetector(logger, nil),
		notifier.NewMessageBuilder(),
		sender, auditor,
	)

	return &Server{
		cfg:     cfg,
		logger:  logger.Named("server"),
		limiter: limiter,
		guard:   guard,
		handler: pipeline.NewHandler(p, logger),
	}
}

// Start runs the background sweeps and the HTTP server, blocking until the
// context is cancelled or the server fails.
func (s *Server) Start(ctx context.Context) error {
	go s.limiter.Run(ctx)
	go s.guard.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/submissions", s.handler.HandleSubmit)
	mux.HandleFunc("/api/status", s.handler.HandleStatus)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	s.server = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", s.cfg.Addr))

		var err error
		if s.cfg.TLSCertFile != "" && s.cfg.TLSKeyFile != "" {
			err = s.server.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			err = s.server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleHealth handles the /healthz endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady handles the /readyz endpoint.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
