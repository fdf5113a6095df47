package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"carbarn/internal/catalog"
	"carbarn/internal/config"
	"carbarn/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/account", s.handleGetAccount)
		r.Post("/account", s.handleEnsureAccount)
		r.Delete("/account", s.handleDeleteAccount)
		r.Post("/account/reset", s.handleResetAccount)
		r.Put("/account/profile", s.handleUpdateProfile)
		r.Put("/account/background", s.handleSetBackground)

		r.Get("/catalog/cars", s.handleCatalogCars)
		r.Get("/catalog/warehouses", s.handleCatalogWarehouses)
		r.Get("/garage", s.handleGarage)

		r.Post("/cars/{id}/buy", s.handleBuyCar)
		r.Post("/cars/{id}/fix", s.handleFixCar)
		r.Post("/cars/{id}/salvage", s.handleSalvageCar)
		r.Post("/cars/{id}/sell", s.handleSellCar)
		r.Post("/parts/{id}/sell", s.handleSellPart)

		r.Post("/warehouses/{id}/buy", s.handleBuyWarehouse)
		r.Post("/warehouses/{id}/sell", s.handleSellWarehouse)

		r.Get("/offers", s.handleOffers)
		r.Post("/offers/accept", s.handleAcceptOffer)
		r.Post("/offers/{id}/decline", s.handleDeclineOffer)
	})
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.game.Account(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleEnsureAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.game.EnsureAccount(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.game.DeleteAccount(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleResetAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.game.ResetAccount(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserName     *string `json:"userName"`
		ProfileImage *string `json:"profileImage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.game.UpdateProfile(r.Context(), game.ProfileInput{
		UserName:     req.UserName,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSetBackground(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Background      *string `json:"background"`
		BackgroundImage *string `json:"backgroundImage"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.game.SetBackground(r.Context(), game.BackgroundInput{
		Background:      req.Background,
		BackgroundImage: req.BackgroundImage,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCatalogCars(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"cars": catalog.Cars()})
}

func (s *Server) handleCatalogWarehouses(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"warehouses": catalog.Warehouses()})
}

func (s *Server) handleGarage(w http.ResponseWriter, r *http.Request) {
	a, err := s.game.Account(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game.BuildGarageView(a))
}

func (s *Server) handleBuyCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req struct {
		WarehouseID int `json:"warehouseId"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	a, err := s.game.BuyCar(r.Context(), carID, req.WarehouseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleFixCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.game.FixCar(r.Context(), carID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSalvageCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, part, err := s.game.SalvageCar(r.Context(), carID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"account": a, "part": part})
}

func (s *Server) handleSellCar(w http.ResponseWriter, r *http.Request) {
	carID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.game.SellCar(r.Context(), carID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSellPart(w http.ResponseWriter, r *http.Request) {
	partID := strings.TrimSpace(chi.URLParam(r, "id"))
	if partID == "" {
		writeError(w, http.StatusBadRequest, "part id required")
		return
	}
	a, err := s.game.SellPart(r.Context(), partID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleBuyWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.game.BuyWarehouse(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleSellWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, payout, err := s.game.SellWarehouse(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"account": a, "payout": payout})
}

func (s *Server) handleOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.game.Offers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offers": offers})
}

func (s *Server) handleAcceptOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "offer id required")
		return
	}
	a, err := s.game.AcceptOffer(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDeclineOffer(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "offer id required")
		return
	}
	s.game.DeclineOffer(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func pathID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoAccount),
		errors.Is(err, game.ErrCarNotFound),
		errors.Is(err, game.ErrWarehouseNotFound),
		errors.Is(err, game.ErrPartNotFound),
		errors.Is(err, game.ErrOfferNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrNoWarehouse),
		errors.Is(err, game.ErrCarNotFixable),
		errors.Is(err, game.ErrCarNotOwned),
		errors.Is(err, game.ErrWarehouseNotOwned):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrCarAlreadyOwned),
		errors.Is(err, game.ErrWarehouseAlreadyOwned),
		errors.Is(err, game.ErrWarehouseFull),
		errors.Is(err, game.ErrTxConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
