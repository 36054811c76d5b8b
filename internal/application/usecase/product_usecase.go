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

// ProductUseCase pipeline de productos. Igual que el de categorías más dos
// reglas propias: category_id debe referenciar una categoría viva, y la
// respuesta siempre resuelve la relación con la categoría antes de serializar.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	blobs      storage.BlobStore
	policy     *authz.Policy
	val        *validation.Validator
	log        *logger.Logger
	baseURL    string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, blobs storage.BlobStore, policy *authz.Policy, val *validation.Validator, log *logger.Logger, baseURL string) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, blobs: blobs, policy: policy, val: val, log: log, baseURL: baseURL}
}

// Create crea un producto. La existencia de la categoría se verifica antes de
// tocar el blob store; la FK en la base de datos cubre la carrera entre la
// verificación y el INSERT. Si la fila falla tras guardar el blob, el blob se borra.
func (uc *ProductUseCase) Create(role string, form map[string]string, file *dto.FileUpload) (*dto.ProductResponse, error) {
	if !uc.policy.Can(role, authz.CapabilityCreate) {
		return nil, domain.ErrForbidden
	}
	in, verr := uc.val.Product(form, file)
	if verr != nil {
		return nil, verr
	}
	ok, err := uc.categories.Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("category_id", "la categoría no existe")
	}

	image := ""
	if file != nil {
		path, err := uc.blobs.Store(context.Background(), blobKey(productPhotoPrefix, file.Filename), file.Data)
		if err != nil {
			return nil, &domain.StorageError{Op: "store", Err: err}
		}
		image = path
	}

	now := time.Now()
	product := &entity.Product{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		uc.discardBlob(image)
		return nil, err
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return uc.toResponse(product)
}

// List lista todos los productos resolviendo la categoría de cada uno.
// Sin datos devuelve un array vacío, nunca error.
func (uc *ProductUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	// Las categorías se resuelven una sola vez por ID.
	cache := map[int64]*entity.Category{}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		cat, ok := cache[p.CategoryID]
		if !ok {
			cat, err = uc.categories.GetByID(p.CategoryID)
			if err != nil {
				return nil, err
			}
			cache[p.CategoryID] = cat
		}
		if cat == nil {
			return nil, domain.ErrMissingRelation
		}
		items = append(items, *uc.buildResponse(p, cat))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Update reemplaza los campos del producto. Imagen nueva: guardar nueva →
// persistir fila → borrar vieja; si la fila falla se borra la nueva y la vieja
// queda intacta. Sin imagen nueva se conserva la existente.
func (uc *ProductUseCase) Update(role string, id int64, form map[string]string, file *dto.FileUpload) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !uc.policy.Can(role, authz.CapabilityUpdate) {
		return nil, domain.ErrForbidden
	}
	in, verr := uc.val.Product(form, file)
	if verr != nil {
		return nil, verr
	}
	ok, err := uc.categories.Exists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("category_id", "la categoría no existe")
	}

	oldImage := product.Image
	newImage := oldImage
	stored := ""
	if file != nil {
		path, err := uc.blobs.Store(context.Background(), blobKey(productPhotoPrefix, file.Filename), file.Data)
		if err != nil {
			return nil, &domain.StorageError{Op: "store", Err: err}
		}
		stored = path
		newImage = path
	}

	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Image = newImage
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		// Mismo nombre de archivo produce la misma clave: el blob nuevo YA pisó
		// al viejo y la fila sin actualizar sigue apuntando a él, no se borra.
		if stored != oldImage {
			uc.discardBlob(stored)
		}
		return nil, err
	}

	if stored != "" && oldImage != "" && oldImage != stored {
		uc.discardBlob(oldImage)
	}
	return uc.toResponse(product)
}

// Delete borra el producto y su blob. El fallo al borrar el blob se registra
// pero no impide borrar la fila.
func (uc *ProductUseCase) Delete(role string, id int64) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !uc.policy.Can(role, authz.CapabilityDelete) {
		return domain.ErrForbidden
	}
	if product.Image != "" {
		if err := uc.blobs.Delete(context.Background(), product.Image); err != nil {
			uc.log.Warn().Err(err).Str("image", product.Image).Int64("product_id", id).
				Msg("no se pudo borrar el blob del producto")
		}
	}
	return uc.repo.Delete(id)
}

func (uc *ProductUseCase) discardBlob(path string) {
	if path == "" {
		return
	}
	if err := uc.blobs.Delete(context.Background(), path); err != nil {
		uc.log.Warn().Err(err).Str("image", path).Msg("no se pudo compensar el blob guardado")
	}
}

// toResponse resuelve la categoría dueña antes de serializar. Una fila cuyo
// category_id ya no existe es un defecto del servidor (ErrMissingRelation), no
// un error del cliente.
func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	cat, err := uc.categories.GetByID(p.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrMissingRelation
	}
	return uc.buildResponse(p, cat), nil
}

func (uc *ProductUseCase) buildResponse(p *entity.Product, cat *entity.Category) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  cat.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       publicImageURL(uc.baseURL, p.Image),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
