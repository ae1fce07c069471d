package controllers

import (
	"artfolio/internal/models"
	"artfolio/internal/providers"
	"artfolio/internal/services"
	"net/http"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	models.User
	Password string `json:"password"`
}

type SessionController struct {
	logger  providers.Logger
	session services.SessionServiceInterface
}

func NewSessionController(logger providers.Logger, session services.SessionServiceInterface) *SessionController {
	return &SessionController{
		logger:  logger,
		session: session,
	}
}

func (sc *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := sc.session.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (sc *SessionController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := sc.session.Register(r.Context(), req.User, req.Password)
	if err != nil {
		writeError(w, r, sc.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (sc *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	sc.session.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (sc *SessionController) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := sc.session.CurrentUser()
	if !ok {
		writeError(w, r, sc.logger, services.ErrNoSession)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
