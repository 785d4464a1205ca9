package api

import (
	"net/http"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/account"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type profileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.accounts.Register(r.Context(), account.RegisterInput{
		Username: request.Username,
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToView(record))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	token, record, err := h.accounts.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginView{Token: token, User: userToView(record)})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	records, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersToViews(records))
}

func (h *Handler) handleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	records, err := h.accounts.ListTeamMembers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usersToViews(records))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	record, err := h.accounts.GetUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToView(record))
}

func (h *Handler) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request roleRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	ctx := mutationContext(r)
	userID := r.PathValue("userID")
	if err := h.accounts.UpdateRole(ctx, actor, userID, request.Role); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.accounts.GetUser(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToView(record))
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	if err := h.accounts.DeleteUser(mutationContext(r), actor, r.PathValue("userID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	record, err := h.accounts.GetUser(r.Context(), actor.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToView(record))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := identityFrom(r.Context())
	if !ok {
		h.writeError(w, r, errs.New(errs.CodeUnauthenticated, "missing identity"))
		return
	}
	var request profileRequest
	if err := decodeJSON(r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}
	record, err := h.accounts.UpdateProfile(mutationContext(r), actor, request.Username, request.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userToView(record))
}
