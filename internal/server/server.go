package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"bank-ledger/internal/config"
	"bank-ledger/internal/handler"
	"bank-ledger/internal/repository"
	"bank-ledger/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	store  *repository.Store
	logger *slog.Logger
	port   string
}

// NewServer wires an empty in-memory ledger behind the HTTP routes
func NewServer(logger *slog.Logger) *Server {
	store := repository.NewStore(logger)

	// Initialize services
	transactionService := service.NewTransactionService(store, logger)
	accountService := service.NewAccountService(store, transactionService, logger)
	customerService := service.NewCustomerService(store, logger)

	// Initialize handlers
	customerHandler := handler.NewCustomerHandler(customerService, accountService)
	accountHandler := handler.NewAccountHandler(accountService, transactionService)
	transactionHandler := handler.NewTransactionHandler(accountService, transactionService)

	router := mux.NewRouter()
	router.Use(loggingMiddleware(logger))

	// Customer routes
	router.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")
	router.HandleFunc("/customers/{customer_id}", customerHandler.GetCustomer).Methods("GET")
	router.HandleFunc("/customers/{customer_id}/accounts", customerHandler.GetCustomerAccounts).Methods("GET")
	router.HandleFunc("/customers/{customer_id}/activate", customerHandler.ActivateCustomer).Methods("POST")
	router.HandleFunc("/customers/{customer_id}/deactivate", customerHandler.DeactivateCustomer).Methods("POST")

	// Account routes
	router.HandleFunc("/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts", accountHandler.ListAccounts).Methods("GET")
	router.HandleFunc("/accounts/{account_id}", accountHandler.GetAccount).Methods("GET")
	router.HandleFunc("/accounts/{account_id}/transactions", accountHandler.GetAccountTransactions).Methods("GET")
	router.HandleFunc("/accounts/{account_id}/deposits", accountHandler.Deposit).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/withdrawals", accountHandler.Withdraw).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/fees", accountHandler.ChargeFee).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/interest", accountHandler.ApplyInterest).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/activate", accountHandler.ActivateAccount).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/deactivate", accountHandler.DeactivateAccount).Methods("POST")

	// Transaction routes
	router.HandleFunc("/transfers", transactionHandler.Transfer).Methods("POST")
	router.HandleFunc("/transactions", transactionHandler.ListTransactions).Methods("GET")
	router.HandleFunc("/transactions/{transaction_id}", transactionHandler.GetTransaction).Methods("GET")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"accounts":  store.Account().Count(),
			"customers": store.Customer().Count(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	return &Server{
		router: router,
		store:  store,
		logger: logger,
	}
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start listens on port ("0" picks a free one) and serves in the background
func (s *Server) Start(port string) (string, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server", "port", s.port)

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Server failed", "error", err)
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		// Test environment - use discard logger
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = cfg.NewLogger(os.Stdout)
	}

	server := NewServer(logger)

	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
