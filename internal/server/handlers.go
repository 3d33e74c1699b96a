package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

func (s *Server) handleMarketSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.MarketSummary(r.Context())
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStockData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.svc.StockData(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	period, interval, err := rangeParams(r)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	series, err := s.svc.History(r.Context(), mux.Vars(r)["symbol"], period, interval)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, series)
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	period, interval, err := rangeParams(r)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	set, err := s.svc.Indicators(r.Context(), mux.Vars(r)["symbol"], period, interval)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleNewsSentiment(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultNewsLimit, 1, maxNewsLimit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	report, err := s.svc.NewsSentiment(r.Context(), mux.Vars(r)["symbol"], limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := s.decodeBody(r, &req, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	rows, err := s.svc.Compare(r.Context(), req.Symbols)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	var criteria types.ScreenerCriteria
	if err := s.decodeBody(r, &criteria, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	results, err := s.svc.Screen(r.Context(), criteria)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	req := PredictRequest{Days: nil, Fallback: ""}
	if err := s.decodeBody(r, &req, true); err != nil {
		writeError(w, s.log, err)

		return
	}

	days := defaultPredictDays
	if req.Days != nil {
		days = *req.Days
	}

	fallback, err := service.ParseFallback(req.Fallback)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	path, err := s.svc.Predict(r.Context(), mux.Vars(r)["symbol"], days, fallback)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, path)
}

func (s *Server) handleAIPredict(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.AIPredict(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAIInsights(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.AIInsights(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAISentiment(w http.ResponseWriter, r *http.Request) {
	var req SentimentRequest
	if err := s.decodeBody(r, &req, false); err != nil {
		writeError(w, s.log, err)

		return
	}

	result, err := s.svc.AISentiment(r.Context(), req.Text)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMarketNews(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultNewsLimit, 1, maxNewsLimit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	items, err := s.svc.MarketNews(r.Context(), limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCompanyNews(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", service.DefaultNewsLimit, 1, maxNewsLimit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	items, err := s.svc.CompanyNews(r.Context(), mux.Vars(r)["company"], limit)
	if err != nil {
		writeError(w, s.log, err)

		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.EconomicCalendar(r.Context()))
}
