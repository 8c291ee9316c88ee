package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"alias/internal/domain"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateGameRequest is the body for game creation. MaxPoints is
// optional; 0 disables the winning threshold.
type CreateGameRequest struct {
	TeamNames    []string `json:"teamNames"`
	RoundSeconds int      `json:"roundSeconds"`
	MaxPoints    int      `json:"maxPoints"`
}

// CreateGameResponse is the response for game creation. The operator
// token authorizes transitions over the WebSocket connection.
type CreateGameResponse struct {
	Code          string `json:"code"`
	OperatorToken string `json:"operatorToken"`
	InviteLink    string `json:"inviteLink"`
}

// GetGameResponse is the response for getting game info
type GetGameResponse struct {
	Code  string          `json:"code"`
	State domain.Snapshot `json:"state"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveGames  int `json:"activeGames"`
	TotalClients int `json:"totalClients"`
}

// handleCreateGame handles POST /api/games
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	game := s.config.Game
	if req.RoundSeconds < game.MinRoundSeconds || req.RoundSeconds > game.MaxRoundSeconds {
		s.sendError(w, http.StatusBadRequest, "INVALID_CONFIGURATION", "Round time out of range")
		return
	}
	if req.MaxPoints != 0 && (req.MaxPoints < game.MinWinThreshold || req.MaxPoints > game.MaxWinThreshold) {
		s.sendError(w, http.StatusBadRequest, "INVALID_CONFIGURATION", "Winning threshold out of range")
		return
	}

	session, err := s.hub.CreateGame(req.TeamNames, time.Duration(req.RoundSeconds)*time.Second, req.MaxPoints)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			s.sendError(w, http.StatusBadRequest, "INVALID_CONFIGURATION", err.Error())
			return
		}
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create game")
		return
	}

	s.sendSuccess(w, &CreateGameResponse{
		Code:          session.GetCode(),
		OperatorToken: session.GetOperatorToken(),
		InviteLink:    s.inviteLink(r, session.GetCode()),
	})
}

// handleGetGame handles GET /api/games/{code}
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_CODE", "Game code is required")
		return
	}

	session, err := s.hub.GetSession(strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, domain.ErrGameNotFound) {
			s.sendError(w, http.StatusNotFound, "GAME_NOT_FOUND", "Game not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return
	}

	s.sendSuccess(w, &GetGameResponse{
		Code:  session.GetCode(),
		State: session.Snapshot(),
	})
}

// handleGameQR handles GET /api/games/{code}/qr and returns a PNG QR
// code of the spectator invite link.
func (s *Server) handleGameQR(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_CODE", "Game code is required")
		return
	}

	session, err := s.hub.GetSession(strings.ToUpper(code))
	if err != nil {
		s.sendError(w, http.StatusNotFound, "GAME_NOT_FOUND", "Game not found")
		return
	}

	png, err := qrcode.Encode(s.inviteLink(r, session.GetCode()), qrcode.Medium, 256)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveGames:  s.hub.GetSessionCount(),
		TotalClients: s.hub.GetTotalClientCount(),
	})
}

// inviteLink builds the join link for a game code
func (s *Server) inviteLink(r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/join/" + code
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
