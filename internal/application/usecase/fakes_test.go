package usecase_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Catalogo-api/internal/application/authz"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/application/validation"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos. Todos anotan sus operaciones en un journal compartido
// para poder verificar el ORDEN guardar-blob → persistir-fila → borrar-blob.
// ──────────────────────────────────────────────────────────────────────────────

const testBaseURL = "http://api.test"

type fakeBlobStore struct {
	journal    *[]string
	data       map[string][]byte // clave -> contenido guardado
	failStore  bool
	failDelete bool
}

func newFakeBlobStore(journal *[]string) *fakeBlobStore {
	return &fakeBlobStore{journal: journal, data: map[string][]byte{}}
}

func (f *fakeBlobStore) Store(_ context.Context, key string, data []byte) (string, error) {
	if f.failStore {
		return "", errors.New("disco lleno")
	}
	f.data[key] = data
	path := "storage/" + key
	*f.journal = append(*f.journal, "store:"+path)
	return path, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, path string) error {
	*f.journal = append(*f.journal, "delete:"+path)
	if f.failDelete {
		return errors.New("archivo inaccesible")
	}
	return nil
}

// storeCalls devuelve cuántos blobs se guardaron.
func (f *fakeBlobStore) storeCalls() int {
	n := 0
	for _, e := range *f.journal {
		if len(e) > 6 && e[:6] == "store:" {
			n++
		}
	}
	return n
}

// deleteCalls devuelve las rutas borradas, en orden.
func (f *fakeBlobStore) deleteCalls() []string {
	var out []string
	for _, e := range *f.journal {
		if len(e) > 7 && e[:7] == "delete:" {
			out = append(out, e[7:])
		}
	}
	return out
}

type fakeCategoryRepo struct {
	journal    *[]string
	byID       map[int64]*entity.Category
	nextID     int64
	failCreate error
	failUpdate error
}

func newFakeCategoryRepo(journal *[]string) *fakeCategoryRepo {
	return &fakeCategoryRepo{journal: journal, byID: map[int64]*entity.Category{}, nextID: 1}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.byID[c.ID] = &cp
	*f.journal = append(*f.journal, fmt.Sprintf("create:category:%d", c.ID))
	return nil
}

func (f *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for i := int64(1); i < f.nextID; i++ {
		if c, ok := f.byID[i]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	cp := *c
	f.byID[c.ID] = &cp
	*f.journal = append(*f.journal, fmt.Sprintf("update:category:%d", c.ID))
	return nil
}

func (f *fakeCategoryRepo) Delete(id int64) error {
	delete(f.byID, id)
	*f.journal = append(*f.journal, fmt.Sprintf("deleterow:category:%d", id))
	return nil
}

func (f *fakeCategoryRepo) Exists(id int64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

type fakeProductRepo struct {
	journal    *[]string
	byID       map[int64]*entity.Product
	nextID     int64
	failCreate error
	failUpdate error
}

func newFakeProductRepo(journal *[]string) *fakeProductRepo {
	return &fakeProductRepo{journal: journal, byID: map[int64]*entity.Product{}, nextID: 1}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	*f.journal = append(*f.journal, fmt.Sprintf("create:product:%d", p.ID))
	return nil
}

func (f *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List() ([]*entity.Product, error) {
	var out []*entity.Product
	for i := int64(1); i < f.nextID; i++ {
		if p, ok := f.byID[i]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	cp := *p
	f.byID[p.ID] = &cp
	*f.journal = append(*f.journal, fmt.Sprintf("update:product:%d", p.ID))
	return nil
}

func (f *fakeProductRepo) Delete(id int64) error {
	delete(f.byID, id)
	*f.journal = append(*f.journal, fmt.Sprintf("deleterow:product:%d", id))
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores de casos de uso con dependencias de test
// ──────────────────────────────────────────────────────────────────────────────

func newCategoryUC(repo *fakeCategoryRepo, blobs *fakeBlobStore) *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(repo, blobs, authz.NewPolicy(), validation.New(2048), logger.Nop(), testBaseURL)
}

func newProductUC(repo *fakeProductRepo, categories *fakeCategoryRepo, blobs *fakeBlobStore) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(repo, categories, blobs, authz.NewPolicy(), validation.New(2048), logger.Nop(), testBaseURL)
}
