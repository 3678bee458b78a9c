package sandbox

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frahmantamala/project-console/internal/auth"
	"github.com/frahmantamala/project-console/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// login accepts the OAuth2 password form (username/password) and the JSON
// variant (email/password).
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var email, password string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		email, password = body.Email, body.Password
	} else {
		if err := r.ParseForm(); err != nil {
			s.WriteError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		email, password = r.PostForm.Get("username"), r.PostForm.Get("password")
	}

	if email == "" || password == "" {
		s.WriteError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.data.accountByEmail(strings.ToLower(email))
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		s.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !acc.IsActive {
		s.WriteError(w, http.StatusBadRequest, "Inactive user")
		return
	}

	token, err := s.tokens.Issue(acc.User)
	if err != nil {
		s.WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.recordBy(acc.ID, r, "login", "user", acc.ID, acc.Name, nil)
	s.WriteJSON(w, http.StatusOK, auth.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        acc.User,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var dto auth.RegisterDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, status, msg := s.addAccount(dto.Name, dto.Email, dto.Password, user.RoleMember)
	if status != 0 {
		s.WriteError(w, status, msg)
		return
	}
	s.recordBy(u.ID, r, "create", "user", u.ID, u.Name, nil)
	s.WriteJSON(w, http.StatusCreated, u)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.tokens.Revoke(s.ExtractTokenFromHeader(r)); err != nil {
		s.WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	s.WriteJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.data.accounts.get(principal(r).UserID)
	if !ok {
		s.WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	s.WriteJSON(w, http.StatusOK, acc.User)
}

// addAccount creates a user. A non-zero status reports why it could not.
// Callers hold s.mu.
func (s *Server) addAccount(name, email, password string, role user.Role) (user.User, int, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.data.accountByEmail(email); exists {
		return user.User{}, http.StatusBadRequest, "Email already registered"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return user.User{}, http.StatusInternalServerError, "failed to hash password"
	}

	acc := &account{
		User: user.User{
			ID:        newID(),
			Name:      name,
			Email:     email,
			Role:      role,
			IsActive:  true,
			CreatedAt: s.now().UTC(),
		},
		passwordHash: hash,
	}
	s.data.accounts.put(acc.ID, acc)
	return acc.User, 0, ""
}
