package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

func (s *Server) storeRoutes(api *mux.Router) {
	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}/settings", s.handleUpdateSettings).Methods(http.MethodPut)

	api.HandleFunc("/stocks", s.handleListStocks).Methods(http.MethodGet)
	api.HandleFunc("/stocks", s.handleCreateStock).Methods(http.MethodPost)
	api.HandleFunc("/stocks/{id:[0-9]+}", s.handleGetStock).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{id:[0-9]+}", s.handleUpdateStock).Methods(http.MethodPut)
	api.HandleFunc("/stocks/{id:[0-9]+}/prices", s.handleListPrices).Methods(http.MethodGet)

	api.HandleFunc("/news", s.handleListNews).Methods(http.MethodGet)
	api.HandleFunc("/news", s.handleCreateNews).Methods(http.MethodPost)
	api.HandleFunc("/news/{id:[0-9]+}", s.handleGetNews).Methods(http.MethodGet)
	api.HandleFunc("/news/{id:[0-9]+}", s.handleUpdateNews).Methods(http.MethodPut)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in types.UserCreate
	if err := s.decodeBody(r, &in, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	user, err := s.repo.CreateUser(r.Context(), in)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	user, err := s.repo.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	var in types.UserUpdate
	if err := s.decodeBody(r, &in, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	user, err := s.repo.UpdateUser(r.Context(), id, in)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	settings, err := s.repo.GetSettings(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	settings := types.DefaultUserSettings(id)
	if err := s.decodeBody(r, &settings, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	settings.UserID = id

	saved, err := s.repo.UpsertSettings(r.Context(), settings)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleListStocks(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	stocks, err := s.repo.ListStocks(r.Context(), skip, limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, stocks)
}

func (s *Server) handleCreateStock(w http.ResponseWriter, r *http.Request) {
	var stock types.Stock
	if err := s.decodeBody(r, &stock, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	stock.ID = 0
	stock.Symbol = strings.ToUpper(strings.TrimSpace(stock.Symbol))

	created, err := s.repo.CreateStock(r.Context(), stock)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	stock, err := s.repo.GetStock(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, stock)
}

func (s *Server) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	var stock types.Stock
	if err := s.decodeBody(r, &stock, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	stock.ID = id
	stock.Symbol = strings.ToUpper(strings.TrimSpace(stock.Symbol))

	updated, err := s.repo.UpdateStock(r.Context(), stock)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListPrices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	skip, limit, err := pagination(r)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	// 404 for an unknown stock rather than an empty list
	if _, err := s.repo.GetStock(r.Context(), id); err != nil {
		writeError(w, s.log, err)

		return
	}

	prices, err := s.repo.ListPrices(r.Context(), id, skip, limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, prices)
}

func (s *Server) handleListNews(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := pagination(r)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	news, err := s.repo.ListNews(r.Context(), skip, limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, news)
}

func (s *Server) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	var news types.StoredNews
	if err := s.decodeBody(r, &news, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	news.ID = 0

	created, err := s.repo.CreateNews(r.Context(), news)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	news, err := s.repo.GetNews(r.Context(), id)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, news)
}

func (s *Server) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	var news types.StoredNews
	if err := s.decodeBody(r, &news, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	news.ID = id

	updated, err := s.repo.UpdateNews(r.Context(), news)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}
