package dto

// ErrorResponse respuesta de error estándar de la API.
// Retryable indica que el caller puede reintentar la operación completa
// (conflictos de concurrencia); los errores de negocio no lo son.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
