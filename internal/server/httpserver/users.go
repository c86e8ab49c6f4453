package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/server/models"
	"github.com/dmitrijs2005/postboard/internal/server/services"
)

func toProfile(u *models.User) api.Profile {
	return api.Profile{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toAuthResponse(s *services.Session) api.AuthResponse {
	return api.AuthResponse{Profile: toProfile(s.User), Token: s.Token}
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := validateRegister(req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	session, err := h.users.SignUp(r.Context(), req.Name, req.Email, password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "Registered", "user_id", session.User.ID)
	writeJSON(w, http.StatusCreated, toAuthResponse(session))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if err := validateLogin(req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	session, err := h.users.Login(r.Context(), req.Email, password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(session))
}

func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, toProfile(user))
}
