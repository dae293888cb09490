package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stockguard-io/stockguard/pkg/engine"
	"github.com/stockguard-io/stockguard/pkg/inventory"
	"github.com/stockguard-io/stockguard/pkg/model"
	"github.com/stockguard-io/stockguard/pkg/storage"
)

// Server exposes the catalog, contacts, thresholds and alerts over HTTP.
type Server struct {
	svc    *inventory.Service
	mux    *http.ServeMux
	logger *slog.Logger
}

// NewServer creates an API server.
func NewServer(svc *inventory.Service, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		mux:    http.NewServeMux(),
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /api/v1/products", s.handleListProducts)
	s.mux.HandleFunc("POST /api/v1/products", s.handleCreateProduct)
	s.mux.HandleFunc("GET /api/v1/products/{id}", s.handleGetProduct)
	s.mux.HandleFunc("PUT /api/v1/products/{id}", s.handleUpdateProduct)
	s.mux.HandleFunc("DELETE /api/v1/products/{id}", s.handleDeleteProduct)

	s.mux.HandleFunc("GET /api/v1/contacts", s.handleListContacts)
	s.mux.HandleFunc("POST /api/v1/contacts", s.handleCreateContact)
	s.mux.HandleFunc("PUT /api/v1/contacts/{id}", s.handleUpdateContact)
	s.mux.HandleFunc("DELETE /api/v1/contacts/{id}", s.handleDeleteContact)

	s.mux.HandleFunc("GET /api/v1/config", s.handleGetThresholds)
	s.mux.HandleFunc("PUT /api/v1/config", s.handleUpdateThresholds)

	s.mux.HandleFunc("GET /api/v1/alerts", s.handleAlerts)
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	products, err := s.svc.PresentProducts(ctx, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, "list products", err)
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if err := s.svc.CreateProduct(ctx, &p); err != nil {
		s.writeError(w, "create product", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	p, err := s.svc.GetProduct(ctx, r.PathValue("id"))
	if err != nil {
		s.writeError(w, "get product", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	p.ID = r.PathValue("id")

	if err := s.svc.UpdateProduct(ctx, &p); err != nil {
		s.writeError(w, "update product", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := s.svc.DeleteProduct(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, "delete product", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	contacts, err := s.svc.ListContacts(ctx, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, "list contacts", err)
		return
	}
	s.writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var c model.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	if err := s.svc.CreateContact(ctx, &c); err != nil {
		s.writeError(w, "create contact", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var c model.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	c.ID = r.PathValue("id")

	if err := s.svc.UpdateContact(ctx, &c); err != nil {
		s.writeError(w, "update contact", err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	if err := s.svc.DeleteContact(ctx, r.PathValue("id")); err != nil {
		s.writeError(w, "delete contact", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "contact deleted"})
}

func (s *Server) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cfg, err := s.svc.Thresholds(ctx)
	if err != nil {
		s.writeError(w, "get thresholds", err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var cfg model.ThresholdConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	updated, err := s.svc.UpdateThresholds(ctx, cfg)
	if err != nil {
		s.writeError(w, "update thresholds", err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	set, err := s.svc.Alerts(ctx)
	if err != nil {
		s.writeError(w, "build alerts", err)
		return
	}
	s.writeJSON(w, http.StatusOK, set)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.logger.Error(op, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}
