// Package entity defines the request and response shapes of the web layer.
package entity

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	}
}

// Msg is the JSON envelope of the API endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// NameForm is the main registration form.
type NameForm struct {
	Name string `form:"name" json:"name" binding:"required,notblank,max=64"`
	Role string `form:"role" json:"role" binding:"required,oneof=user mod admin"`
}

func (f *NameForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Role = strings.TrimSpace(f.Role)
}

// DisciplinaForm registers a course discipline.
type DisciplinaForm struct {
	Nome     string `form:"nome" json:"nome" binding:"required,notblank,max=128"`
	Semestre string `form:"semestre" json:"semestre" binding:"required,oneof=1 2 3 4 5 6"`
}

func (f *DisciplinaForm) Normalize() {
	f.Nome = strings.TrimSpace(f.Nome)
	f.Semestre = strings.TrimSpace(f.Semestre)
}

// FormErrorKey holds errors that do not belong to a single field.
const FormErrorKey = "_form"

// FieldErrors maps a binding error to translation message IDs keyed by the
// lower-cased form field name.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out[FormErrorKey] = "validation.invalidForm"
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		switch fe.Tag() {
		case "required", "notblank":
			out[field] = "validation.required"
		case "oneof":
			out[field] = "validation.choice"
		case "max":
			out[field] = "validation.tooLong"
		default:
			out[field] = "validation.invalid"
		}
	}
	return out
}
