package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Errors errores de validación por campo (nombre JSON → mensajes). Implementa error.
type Errors map[string][]string

// Error lista los campos con error en orden alfabético.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validación: " + strings.Join(fields, ", ")
}

// Add añade un mensaje al campo.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has indica si el campo ya tiene algún error.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// OrNil devuelve nil si no hay errores.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Field crea un Errors con un único mensaje.
func Field(field, msg string) Errors {
	return Errors{field: {msg}}
}

// FromUnmarshalType traduce un error de tipo del decodificador JSON a un error de campo.
func FromUnmarshalType(err *json.UnmarshalTypeError) Errors {
	field := err.Field
	if field == "" {
		field = "body"
	}
	return Field(field, fmt.Sprintf("El campo %s debe ser %s.", field, describeKind(err.Type)))
}

func describeKind(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "de otro tipo"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "un número entero"
	case reflect.Float32, reflect.Float64:
		return "un número"
	case reflect.Bool:
		return "verdadero o falso"
	case reflect.String:
		return "una cadena de texto"
	default:
		return "de otro tipo"
	}
}
