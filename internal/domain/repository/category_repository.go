package repository

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las lecturas devuelven (nil, nil) cuando la fila no existe.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id int64) error
	Exists(id int64) (bool, error)
}
