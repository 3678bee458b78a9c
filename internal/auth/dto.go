package auth

import (
	errors "github.com/frahmantamala/project-console/internal"
	"github.com/frahmantamala/project-console/internal/core/common/validation"
	"github.com/frahmantamala/project-console/internal/user"
)

// Credentials is what the login screen collects. Username carries the email
// address.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", c.Username).Required()
	v.Field("password", c.Password).Required()
	return v.Validate()
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        user.User `json:"user"`
}

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().Email()
	v.Field("password", dto.Password).Required().Password()
	return v.Validate()
}

type jsonLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
