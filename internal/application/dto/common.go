package dto

// ErrorResponse cuerpo de error HTTP. Errors solo se llena para errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// MessageResponse confirmación simple (ej. borrado exitoso).
type MessageResponse struct {
	Message string `json:"message"`
}

// FileUpload es la imagen adjunta en un formulario multipart, ya leída en memoria.
// Filename es el nombre original del cliente; de él se deriva la clave del blob.
type FileUpload struct {
	Filename string
	Size     int64
	Data     []byte
}
