package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("Credenciales inválidas")
	ErrSamePassword       = errors.New("La nueva contraseña no puede ser igual a la actual")
	ErrHasDependents      = errors.New("No se puede eliminar: existen registros que dependen de este recurso")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUpload             = errors.New("No se pudo subir la imagen")
)

// Errores "no encontrado" por recurso; todos cumplen errors.Is(err, ErrNotFound).
var (
	ErrUserNotFound        = notFound("Usuario no encontrado")
	ErrServicioNotFound    = notFound("Servicio no encontrado")
	ErrTransaccionNotFound = notFound("Transacción no encontrada")
	ErrValoracionNotFound  = notFound("Valoración no encontrada")
	ErrMensajeNotFound     = notFound("Mensaje no encontrado")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }
