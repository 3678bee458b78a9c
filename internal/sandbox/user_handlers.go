package sandbox

import (
	"net/http"

	"github.com/frahmantamala/project-console/internal/user"
	"github.com/go-chi/chi"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	active := optBool(r, "is_active")

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []user.User{}
	for _, id := range s.data.accounts.order {
		a := s.data.accounts.rows[id]
		if active != nil && a.IsActive != *active {
			continue
		}
		users = append(users, a.User)
	}
	s.WriteJSON(w, http.StatusOK, paginate(users, pageFrom(r)))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data.accounts.get(chi.URLParam(r, "userID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	s.WriteJSON(w, http.StatusOK, a.User)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var dto user.CreateUserDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}
	role := user.RoleMember
	if dto.Role != nil {
		role = *dto.Role
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, status, msg := s.addAccount(dto.Name, dto.Email, dto.Password, role)
	if status != 0 {
		s.WriteError(w, status, msg)
		return
	}
	s.record(r, "create", "user", u.ID, u.Name, nil)
	s.WriteJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var dto user.UpdateUserDTO
	if !s.DecodeJSON(w, r, &dto) || !s.validate(w, dto.Validate()) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.data.accounts.get(chi.URLParam(r, "userID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if dto.Name != nil {
		a.Name = *dto.Name
	}
	if dto.Role != nil {
		a.Role = *dto.Role
	}
	s.record(r, "update", "user", a.ID, a.Name, nil)
	s.WriteJSON(w, http.StatusOK, a.User)
}

// deleteUser deactivates rather than removes, so history stays attributable.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.data.accounts.get(chi.URLParam(r, "userID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if a.ID == principal(r).UserID {
		s.WriteError(w, http.StatusBadRequest, "Cannot deactivate yourself")
		return
	}
	a.IsActive = false
	s.record(r, "delete", "user", a.ID, a.Name, nil)
	s.WriteJSON(w, http.StatusOK, a.User)
}

func (s *Server) updateUserRole(w http.ResponseWriter, r *http.Request) {
	role := user.Role(r.URL.Query().Get("new_role"))
	if !role.Valid() {
		s.WriteError(w, http.StatusUnprocessableEntity, "new_role must be one of: admin, member")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.data.accounts.get(chi.URLParam(r, "userID"))
	if !ok {
		s.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	previous := a.Role
	a.Role = role
	s.record(r, "update", "user", a.ID, a.Name, map[string]interface{}{
		"old_role": string(previous),
		"new_role": string(role),
	})
	s.WriteJSON(w, http.StatusOK, a.User)
}
