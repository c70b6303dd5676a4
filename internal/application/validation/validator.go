// Package validation comprueba las peticiones antes de cualquier escritura: reglas de struct
// (go-playground/validator), existencia de claves foráneas, unicidad de email e imágenes subidas.
// Todos los fallos se acumulan por campo; ninguna comprobación escribe.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// MaxImageBytes tamaño máximo de una imagen (2048 KB).
const MaxImageBytes = 2048 * 1024

var fechaLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ParseFecha interpreta una fecha en RFC 3339, "2006-01-02 15:04:05" o "2006-01-02" (UTC).
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range fechaLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}

// Validator reglas declarativas más consultas de referencia.
type Validator struct {
	v      *validator.Validate
	lookup repository.ReferenceLookup
}

// New construye el validador. lookup resuelve existencia de FKs y unicidad de email.
func New(lookup repository.ReferenceLookup) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := ParseFecha(fl.Field().String())
		return err == nil
	})
	// filled: si el campo viene, no puede ir en blanco.
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v, lookup: lookup}
}

// Check inicia la validación de una petición aplicando sus reglas de struct.
func (val *Validator) Check(ctx context.Context, req interface{}) *Check {
	c := &Check{ctx: ctx, val: val, errs: Errors{}}
	err := val.v.Struct(req)
	if err == nil {
		return c
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		c.err = fmt.Errorf("validar petición: %w", err)
		return c
	}
	for _, fe := range ves {
		c.errs.Add(fe.Field(), message(fe))
	}
	return c
}

// Check acumula errores de campo y el primer error de infraestructura.
type Check struct {
	ctx  context.Context
	val  *Validator
	errs Errors
	err  error
}

// Exists comprueba que id referencia una fila de table. Se omite si id es nil (campo ausente)
// o si el campo ya falló otra regla; un 0 explícito se consulta como cualquier otro id.
func (c *Check) Exists(field, table string, id *int64) *Check {
	if c.err != nil || id == nil || c.errs.Has(field) {
		return c
	}
	ok, err := c.val.lookup.Exists(c.ctx, table, *id)
	if err != nil {
		c.err = fmt.Errorf("comprobar %s: %w", field, err)
		return c
	}
	if !ok {
		c.errs.Add(field, fmt.Sprintf("El campo %s seleccionado no existe.", field))
	}
	return c
}

// UniqueEmail comprueba que ningún otro usuario (distinto de exceptID) use el email.
func (c *Check) UniqueEmail(field string, email *string, exceptID int64) *Check {
	if c.err != nil || email == nil || *email == "" || c.errs.Has(field) {
		return c
	}
	taken, err := c.val.lookup.EmailTaken(c.ctx, *email, exceptID)
	if err != nil {
		c.err = fmt.Errorf("comprobar %s: %w", field, err)
		return c
	}
	if taken {
		c.errs.Add(field, EmailTakenMessage)
	}
	return c
}

// EmailTakenMessage mensaje de email duplicado.
const EmailTakenMessage = "El email ya ha sido registrado."

// Image valida tamaño y tipo real (por contenido) de una imagen subida y fija su ContentType.
func (c *Check) Image(field string, img *ports.Image) *Check {
	if img == nil {
		return c
	}
	if len(img.Data) > MaxImageBytes {
		c.errs.Add(field, fmt.Sprintf("El campo %s no debe ser mayor que %d kilobytes.", field, MaxImageBytes/1024))
		return c
	}
	mt := mimetype.Detect(img.Data)
	if !strings.HasPrefix(mt.String(), "image/") {
		c.errs.Add(field, fmt.Sprintf("El campo %s debe ser una imagen.", field))
		return c
	}
	img.ContentType = mt.String()
	return c
}

// Add registra un error de campo calculado fuera del validador.
func (c *Check) Add(field, msg string) *Check {
	c.errs.Add(field, msg)
	return c
}

// Err devuelve el error de infraestructura si lo hubo; si no, los errores de campo o nil.
func (c *Check) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.errs.OrNil()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", field)
	case "max":
		if isString {
			return fmt.Sprintf("El campo %s no debe ser mayor que %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s no debe ser mayor que %s.", field, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("El campo %s debe contener al menos %s caracteres.", field, fe.Param())
		}
		return fmt.Sprintf("El campo %s debe ser al menos %s.", field, fe.Param())
	case "email":
		return fmt.Sprintf("El campo %s debe ser una dirección de correo válida.", field)
	case "oneof":
		return fmt.Sprintf("El campo %s seleccionado es inválido.", field)
	case "fecha":
		return fmt.Sprintf("El campo %s no corresponde con una fecha válida.", field)
	case "filled":
		return fmt.Sprintf("El campo %s debe tener un valor.", field)
	default:
		return fmt.Sprintf("El campo %s no es válido.", field)
	}
}
