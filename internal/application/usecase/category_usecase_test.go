package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func validCategoryForm() map[string]string {
	return map[string]string{"name": "Herramientas", "description": "herramientas de taller"}
}

func pngUpload(filename string, content []byte) *dto.FileUpload {
	return &dto.FileUpload{Filename: filename, Size: int64(len(content)), Data: content}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Crear sin imagen: la fila queda con image == "" y el blob store no se toca.
func TestCategoryCreate_SinImagen(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	out, err := uc.Create(entity.RoleCajero, validCategoryForm(), nil)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "", out.Image, "sin archivo la imagen debe quedar vacía")
	assert.Equal(t, 0, blobs.storeCalls(), "el blob store no debe recibir llamadas")
	assert.Equal(t, "", repo.byID[out.ID].Image)
}

// Validación fallida: corta ANTES de cualquier efecto (ni blob ni fila).
func TestCategoryCreate_ValidacionCorta(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	form := map[string]string{"name": "", "description": ""}
	_, err := uc.Create(entity.RoleAdmin, form, pngUpload("foto.png", []byte("png")))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "description")
	assert.Empty(t, journal, "la validación debe cortar antes de cualquier efecto secundario")
}

// Rol sin capability create: Forbidden antes de validar.
func TestCategoryCreate_RolProhibido(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	_, err := uc.Create("invitado", map[string]string{}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, journal)
}

// La fila falla después de guardar el blob: el blob recién guardado se borra
// para no dejar huérfanos.
func TestCategoryCreate_FalloPersistencia_CompensaBlob(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	repo.failCreate = &domain.PersistenceError{Err: assert.AnError}
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	_, err := uc.Create(entity.RoleAdmin, validCategoryForm(), pngUpload("foto.png", []byte("png")))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 1, blobs.storeCalls())
	deletes := blobs.deleteCalls()
	require.Len(t, deletes, 1)
	assert.Contains(t, journal[0], deletes[0], "debe borrarse exactamente el blob recién guardado")
}

// Fallo del blob store: StorageError y la fila nunca se escribe.
func TestCategoryCreate_FalloStorage(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	blobs.failStore = true
	uc := newCategoryUC(repo, blobs)

	_, err := uc.Create(entity.RoleAdmin, validCategoryForm(), pngUpload("foto.png", []byte("png")))

	var serr *domain.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Empty(t, repo.byID, "la fila no debe crearse si el blob falló")
}

// Dos subidas con el mismo nombre original de archivo pero distinto contenido
// comparten clave: la segunda sobreescribe el blob de la primera.
func TestCategoryCreate_MismoNombreArchivo_SobrescribeBlob(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	out1, err := uc.Create(entity.RoleAdmin, validCategoryForm(), pngUpload("logo.png", []byte("uno")))
	require.NoError(t, err)
	out2, err := uc.Create(entity.RoleAdmin, validCategoryForm(), pngUpload("logo.png", []byte("dos")))
	require.NoError(t, err)

	assert.Equal(t, out1.Image, out2.Image, "mismo nombre original debe producir la misma ruta")
	require.Len(t, blobs.data, 1, "la segunda subida sobreescribe el blob de la primera")
	for _, content := range blobs.data {
		assert.Equal(t, []byte("dos"), content)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func seedCategory(t *testing.T, repo *fakeCategoryRepo, image string) int64 {
	t.Helper()
	c := &entity.Category{Name: "Vieja", Description: "x", Image: image}
	require.NoError(t, repo.Create(c))
	return c.ID
}

// Imagen nueva: guardar-nueva → persistir-fila → borrar-vieja, en ese orden.
func TestCategoryUpdate_OrdenGuardarPersistirBorrar(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	id := seedCategory(t, repo, "storage/category-photos/old.png")
	journal = journal[:0]

	out, err := uc.Update(entity.RoleCajero, id, validCategoryForm(), pngUpload("newfile.png", []byte("nuevo")))
	require.NoError(t, err)

	require.Len(t, journal, 3)
	assert.Contains(t, journal[0], "store:storage/category-photos/")
	assert.Contains(t, journal[1], "update:category:")
	assert.Equal(t, "delete:storage/category-photos/old.png", journal[2],
		"el blob viejo se borra solo después de persistir la fila")
	assert.NotContains(t, out.Image, "old.png")
}

// La fila falla con imagen nueva ya guardada: se borra la nueva, la vieja queda
// intacta y ninguna fila queda apuntando al blob nuevo.
func TestCategoryUpdate_FalloPersistencia_BorraBlobNuevo(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	id := seedCategory(t, repo, "storage/category-photos/old.png")
	repo.failUpdate = &domain.PersistenceError{Err: assert.AnError}
	journal = journal[:0]

	_, err := uc.Update(entity.RoleAdmin, id, validCategoryForm(), pngUpload("newfile.png", []byte("nuevo")))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	deletes := blobs.deleteCalls()
	require.Len(t, deletes, 1)
	assert.NotEqual(t, "storage/category-photos/old.png", deletes[0], "la imagen vieja debe quedar intacta")
	got, _ := repo.GetByID(id)
	assert.Equal(t, "storage/category-photos/old.png", got.Image, "la fila sigue apuntando a la imagen vieja")
}

// La imagen nueva llega con el MISMO nombre original que la existente: comparten
// clave y el store ya sobreescribió el blob en sitio. Si la fila falla, la
// compensación NO debe borrar ese blob, porque la fila sin actualizar sigue
// apuntando exactamente a esa ruta.
func TestCategoryUpdate_MismoNombre_FalloPersistencia_ConservaBlob(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	// md5("foto.png") = 5a3542382582c698a4f5661bb0306897
	samePath := "storage/category-photos/5a3542382582c698a4f5661bb0306897.png"
	id := seedCategory(t, repo, samePath)
	repo.failUpdate = &domain.PersistenceError{Err: assert.AnError}
	journal = journal[:0]

	_, err := uc.Update(entity.RoleAdmin, id, validCategoryForm(), pngUpload("foto.png", []byte("nuevo")))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.NotContains(t, blobs.deleteCalls(), samePath,
		"la compensación no debe borrar el blob que la fila aún referencia")
	got, _ := repo.GetByID(id)
	assert.Equal(t, samePath, got.Image)
}

// Sin imagen nueva se conserva la existente y el blob store no se toca.
func TestCategoryUpdate_SinImagenConserva(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	id := seedCategory(t, repo, "storage/category-photos/old.png")
	journal = journal[:0]

	out, err := uc.Update(entity.RoleAdmin, id, validCategoryForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/storage/category-photos/old.png", out.Image)
	assert.Equal(t, 0, blobs.storeCalls())
	assert.Empty(t, blobs.deleteCalls())
}

// Update sobre un ID inexistente: NotFound (antes de cualquier otra cosa).
func TestCategoryUpdate_NoExiste(t *testing.T) {
	journal := []string{}
	uc := newCategoryUC(newFakeCategoryRepo(&journal), newFakeBlobStore(&journal))

	_, err := uc.Update(entity.RoleAdmin, 99, validCategoryForm(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// El blob ya no existe (borrado fuera de banda): la fila se borra igual.
func TestCategoryDelete_BlobAusenteNoBloquea(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	blobs.failDelete = true
	uc := newCategoryUC(repo, blobs)

	id := seedCategory(t, repo, "storage/category-photos/gone.png")

	err := uc.Delete(entity.RoleAdmin, id)
	require.NoError(t, err, "el fallo al borrar el blob no debe impedir borrar la fila")
	got, _ := repo.GetByID(id)
	assert.Nil(t, got, "la fila debe haberse borrado")
}

// Borrar es solo-admin: cajero recibe Forbidden y nada se toca.
func TestCategoryDelete_CajeroProhibido(t *testing.T) {
	journal := []string{}
	repo := newFakeCategoryRepo(&journal)
	blobs := newFakeBlobStore(&journal)
	uc := newCategoryUC(repo, blobs)

	id := seedCategory(t, repo, "storage/category-photos/a.png")
	journal = journal[:0]

	err := uc.Delete(entity.RoleCajero, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	got, _ := repo.GetByID(id)
	assert.NotNil(t, got)
	assert.Empty(t, blobs.deleteCalls())
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

// Lista vacía: array vacío con 200, nunca error ni nil.
func TestCategoryList_Vacia(t *testing.T) {
	journal := []string{}
	uc := newCategoryUC(newFakeCategoryRepo(&journal), newFakeBlobStore(&journal))

	out, err := uc.List()
	require.NoError(t, err)
	require.NotNil(t, out.Items)
	assert.Len(t, out.Items, 0)
}

func TestCategoryGetByID_NoExiste(t *testing.T) {
	journal := []string{}
	uc := newCategoryUC(newFakeCategoryRepo(&journal), newFakeBlobStore(&journal))

	out, err := uc.GetByID(42)
	require.NoError(t, err)
	assert.Nil(t, out)
}
