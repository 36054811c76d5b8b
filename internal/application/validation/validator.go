package validation

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// Extensiones de imagen aceptadas (regla mimes:jpg,jpeg,png).
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Validator aplica las reglas de campo sobre los formularios crudos y produce
// o bien el DTO normalizado o un domain.ValidationError con el detalle por campo.
type Validator struct {
	v           *validator.Validate
	maxUploadKB int64
}

// New construye el validador. maxUploadKB limita el tamaño de la imagen adjunta.
func New(maxUploadKB int64) *Validator {
	v := validator.New()
	// Reportar errores con el nombre del campo del formulario, no el del struct Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v, maxUploadKB: maxUploadKB}
}

// Category valida el formulario crudo de una categoría y la imagen opcional.
func (va *Validator) Category(form map[string]string, file *dto.FileUpload) (*dto.CategoryInput, *domain.ValidationError) {
	in := &dto.CategoryInput{
		Name:        form["name"],
		Description: form["description"],
	}
	fields := map[string]string{}
	va.structErrors(in, fields)
	va.imageErrors(file, fields)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return in, nil
}

// Product valida el formulario crudo de un producto y la imagen opcional.
// category_id y price deben ser enteros; price se normaliza a decimal.
func (va *Validator) Product(form map[string]string, file *dto.FileUpload) (*dto.ProductInput, *domain.ValidationError) {
	in := &dto.ProductInput{
		Name:        form["name"],
		Description: form["description"],
	}
	fields := map[string]string{}

	if raw := form["category_id"]; raw != "" {
		id, ok := parseInt(raw)
		if !ok {
			fields["category_id"] = "debe ser un número entero"
		}
		in.CategoryID = id
	}

	if raw := form["price"]; raw == "" {
		fields["price"] = "es requerido"
	} else {
		d, err := decimal.NewFromString(raw)
		if err != nil || !d.IsInteger() {
			fields["price"] = "debe ser un número entero"
		} else {
			in.Price = d
		}
	}

	va.structErrors(in, fields)
	va.imageErrors(file, fields)
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return in, nil
}

// StructErrors valida cualquier DTO etiquetado y devuelve los errores por campo (nil si ok).
func (va *Validator) StructErrors(s any) map[string]string {
	fields := map[string]string{}
	va.structErrors(s, fields)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (va *Validator) structErrors(s any, fields map[string]string) {
	err := va.v.Struct(s)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = err.Error()
		return
	}
	for _, fe := range verrs {
		// No pisar un error de parseo ya registrado para el mismo campo.
		if _, exists := fields[fe.Field()]; !exists {
			fields[fe.Field()] = messageFor(fe)
		}
	}
}

func (va *Validator) imageErrors(file *dto.FileUpload, fields map[string]string) {
	if file == nil {
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		fields["image"] = "debe ser una imagen jpg, jpeg o png"
		return
	}
	if file.Size > va.maxUploadKB*1024 {
		fields["image"] = fmt.Sprintf("no debe exceder %d KB", va.maxUploadKB)
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return fmt.Sprintf("no debe exceder %s caracteres", fe.Param())
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "email":
		return "debe ser un email válido"
	default:
		return "es inválido"
	}
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
