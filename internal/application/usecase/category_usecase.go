package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/authz"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/domain/storage"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// CategoryUseCase pipeline de categorías: autorizar → validar → guardar blob →
// persistir fila → responder, con limpieza compensatoria del blob si la fila falla.
type CategoryUseCase struct {
	repo    repository.CategoryRepository
	blobs   storage.BlobStore
	policy  *authz.Policy
	val     *validation.Validator
	log     *logger.Logger
	baseURL string
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, blobs storage.BlobStore, policy *authz.Policy, val *validation.Validator, log *logger.Logger, baseURL string) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, blobs: blobs, policy: policy, val: val, log: log, baseURL: baseURL}
}

// Create crea una categoría. Sin imagen adjunta, Image queda en "".
// Si la inserción de la fila falla después de guardar el blob, el blob se borra
// para no dejar archivos huérfanos.
func (uc *CategoryUseCase) Create(role string, form map[string]string, file *dto.FileUpload) (*dto.CategoryResponse, error) {
	if !uc.policy.Can(role, authz.CapabilityCreate) {
		return nil, domain.ErrForbidden
	}
	in, verr := uc.val.Category(form, file)
	if verr != nil {
		return nil, verr
	}

	image := ""
	if file != nil {
		path, err := uc.blobs.Store(context.Background(), blobKey(categoryPhotoPrefix, file.Filename), file.Data)
		if err != nil {
			return nil, &domain.StorageError{Op: "store", Err: err}
		}
		image = path
	}

	now := time.Now()
	category := &entity.Category{
		Name:        in.Name,
		Description: in.Description,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		uc.discardBlob(image)
		return nil, err
	}
	return uc.toResponse(category), nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(id int64) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return uc.toResponse(category), nil
}

// List lista todas las categorías. Sin datos devuelve un array vacío, nunca error.
func (uc *CategoryUseCase) List() (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update reemplaza name/description y, si llega imagen nueva, la guarda ANTES de
// persistir la fila; el blob viejo se borra solo después de que la fila quedó
// escrita. Si la fila falla, se borra el blob nuevo y el viejo queda intacto.
// Sin imagen nueva se conserva la existente.
func (uc *CategoryUseCase) Update(role string, id int64, form map[string]string, file *dto.FileUpload) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.Can(role, authz.CapabilityUpdate) {
		return nil, domain.ErrForbidden
	}
	in, verr := uc.val.Category(form, file)
	if verr != nil {
		return nil, verr
	}

	oldImage := category.Image
	newImage := oldImage
	stored := ""
	if file != nil {
		path, err := uc.blobs.Store(context.Background(), blobKey(categoryPhotoPrefix, file.Filename), file.Data)
		if err != nil {
			return nil, &domain.StorageError{Op: "store", Err: err}
		}
		stored = path
		newImage = path
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Image = newImage
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		// Mismo nombre de archivo produce la misma clave: el blob nuevo YA pisó
		// al viejo y la fila sin actualizar sigue apuntando a él, no se borra.
		if stored != oldImage {
			uc.discardBlob(stored)
		}
		return nil, err
	}

	// La fila ya quedó escrita: el blob viejo es basura. Mismo nombre de archivo
	// produce la misma clave, en ese caso no hay nada que borrar.
	if stored != "" && oldImage != "" && oldImage != stored {
		uc.discardBlob(oldImage)
	}
	return uc.toResponse(category), nil
}

// Delete borra la categoría y su blob. El fallo al borrar el blob se registra
// pero no impide borrar la fila (un archivo ya desaparecido no bloquea el borrado).
func (uc *CategoryUseCase) Delete(role string, id int64) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if !uc.policy.Can(role, authz.CapabilityDelete) {
		return domain.ErrForbidden
	}
	if category.Image != "" {
		if err := uc.blobs.Delete(context.Background(), category.Image); err != nil {
			uc.log.Warn().Err(err).Str("image", category.Image).Int64("category_id", id).
				Msg("no se pudo borrar el blob de la categoría")
		}
	}
	return uc.repo.Delete(id)
}

// discardBlob borra un blob recién guardado tras un fallo de persistencia (compensación).
func (uc *CategoryUseCase) discardBlob(path string) {
	if path == "" {
		return
	}
	if err := uc.blobs.Delete(context.Background(), path); err != nil {
		uc.log.Warn().Err(err).Str("image", path).Msg("no se pudo compensar el blob guardado")
	}
}

func (uc *CategoryUseCase) toResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       publicImageURL(uc.baseURL, c.Image),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
