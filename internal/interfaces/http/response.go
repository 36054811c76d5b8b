package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// respondError mapea los errores del pipeline a status HTTP de forma uniforme
// para ambos tipos de entidad. Ningún error interno expone stack traces.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "error de validación",
			Errors:  verr.Fields,
		})
	}
	var serr *domain.StorageError
	if errors.As(err, &serr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "STORAGE",
			Message: serr.Error(),
		})
	}
	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "PERSISTENCE",
			Message: "la escritura fue rechazada por la base de datos",
		})
	}
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Unauthorized."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrMissingRelation):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "MISSING_RELATION", Message: "relación requerida ausente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// formUpload extrae la imagen opcional del formulario multipart y la lee en
// memoria. Sin parte "image" devuelve (nil, nil).
func formUpload(c *fiber.Ctx) (*dto.FileUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// Fiber responde con error tanto si no hay multipart como si falta la
		// parte; ambos casos cuentan como "sin archivo".
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.FileUpload{Filename: fh.Filename, Size: fh.Size, Data: data}, nil
}

// formValues arma el mapa crudo de campos para la capa de validación.
func formValues(c *fiber.Ctx, keys ...string) map[string]string {
	form := make(map[string]string, len(keys))
	for _, k := range keys {
		form[k] = c.FormValue(k)
	}
	return form
}
