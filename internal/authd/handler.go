package authd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

var (
	errEmailTaken     = errors.New("email already registered")
	errBadCredentials = errors.New("invalid email or password")
)

type profileInfo struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type currentUser struct {
	AuthUserID string `json:"authUserId"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
}

type authUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type authResponse struct {
	User  authUser `json:"user"`
	Token string   `json:"token"`
}

// Router builds the HTTP routing table. Operation paths match the names the
// client posts to.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signUpEmail", s.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signInEmail", s.handleSignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signOut", s.handleSignOut).Methods(http.MethodPost)
	api.HandleFunc("/auth/getCurrentUser", s.handleGetCurrentUser).Methods(http.MethodPost)
	api.HandleFunc("/users/list", s.handleListProfiles).Methods(http.MethodPost)
	return r
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	acc, token, err := s.createAccount(req.Name, req.Email, req.Password)
	if errors.Is(err, errEmailTaken) {
		writeError(w, http.StatusConflict, errEmailTaken.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.log.Info(r.Context(), "account created", "username", acc.name)
	writeJSON(w, http.StatusOK, authResponse{User: authUser{ID: acc.id, Name: acc.name}, Token: token})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	acc, token, err := s.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, errBadCredentials.Error())
		return
	}

	s.log.Info(r.Context(), "signed in", "username", acc.name)
	writeJSON(w, http.StatusOK, authResponse{User: authUser{ID: acc.id, Name: acc.name}, Token: token})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	s.dropSession(token)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	acc, ok := s.accountByToken(bearerToken(r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, currentUser{AuthUserID: acc.id, Username: acc.name, Email: contactEmail(acc)})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	if !s.hasSession(bearerToken(r)) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, s.profiles())
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
