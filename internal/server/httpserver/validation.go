package httpserver

import (
	"errors"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
	"github.com/dmitrijs2005/postboard/internal/cryptox"
	"github.com/dmitrijs2005/postboard/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

func validateRegister(r api.RegisterRequest) error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(1, cryptox.MaxPasswordLength)),
	))
}

func validateLogin(r api.LoginRequest) error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	))
}

func validatePost(r api.PostRequest) error {
	return invalid(validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required, validation.RuneLength(1, services.MaxPostLength)),
	))
}

// invalid tags ozzo errors with common.ErrorValidation.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(common.ErrorValidation, err)
}
