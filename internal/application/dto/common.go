package dto

// Valores de Envelope.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope cuerpo de toda respuesta correcta: {status, code, time, message, data}.
// Code coincide siempre con el status HTTP; Time es ISO-8601 en UTC.
type Envelope struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Time    string      `json:"time"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse cuerpo de error HTTP: {status:"error", code, time, message, error}.
// Error es el mapa campo → mensajes en validación o un texto ya depurado en el resto.
type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Time    string      `json:"time"`
	Message string      `json:"message"`
	Error   interface{} `json:"error"`
}
