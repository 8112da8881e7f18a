// Package category implementa las mutaciones con guardas de integridad sobre categorías:
// validación, verificación de jerarquía y dependientes, ejecución en transacción y auditoría.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-core/internal/application/audit"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/ports"
	"github.com/jhoicas/inventario-core/internal/application/tenant"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
	"github.com/jhoicas/inventario-core/pkg/logger"
)

// UseCase casos de uso de categorías.
type UseCase struct {
	tx       TxRunner
	reads    repository.CategoryRepository
	recorder *audit.Recorder
	observer ports.MutationObserver
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. reads se usa para consultas fuera de transacción.
func NewUseCase(
	tx TxRunner,
	reads repository.CategoryRepository,
	recorder *audit.Recorder,
	observer ports.MutationObserver,
	log *logger.Logger,
) *UseCase {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &UseCase{tx: tx, reads: reads, recorder: recorder, observer: observer, log: log.Component("category")}
}

// Create crea una categoría.
func (uc *UseCase) Create(ctx context.Context, tc tenant.Context, in dto.CreateCategoryRequest) (*Result, error) {
	return uc.Apply(ctx, tc, CreateCategory{Name: in.Name, Description: in.Description, ParentID: in.ParentID})
}

// Edit edita una categoría.
func (uc *UseCase) Edit(ctx context.Context, tc tenant.Context, id string, in dto.UpdateCategoryRequest) (*Result, error) {
	return uc.Apply(ctx, tc, EditCategory{ID: id, Name: in.Name, Description: in.Description, ParentID: in.ParentID})
}

// Delete elimina una categoría.
func (uc *UseCase) Delete(ctx context.Context, tc tenant.Context, id string) (*Result, error) {
	return uc.Apply(ctx, tc, DeleteCategory{ID: id})
}

// Apply ejecuta la mutación en la empresa activa. Los errores esperables son
// *domain.ValidationError, *domain.ConflictError y domain.ErrNotFound; cualquier otro aborta la
// operación y solo debe mostrarse como fallo genérico.
func (uc *UseCase) Apply(ctx context.Context, tc tenant.Context, m Mutation) (*Result, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewValidationError("", "mutación vacía")
	}
	start := time.Now()

	var (
		res *Result
		err error
	)
	switch m := m.(type) {
	case CreateCategory:
		res, err = uc.create(ctx, tc, m)
	case EditCategory:
		res, err = uc.edit(ctx, tc, m)
	case DeleteCategory:
		res, err = uc.delete(ctx, tc, m)
	default:
		err = fmt.Errorf("mutación no soportada: %T", m)
	}

	outcome := outcomeOf(err)
	uc.observer.ObserveMutation(entity.EntityCategory, m.kind(), outcome, time.Since(start))

	ev := uc.log.Info()
	switch outcome {
	case ports.OutcomeConflict, ports.OutcomeValidation, ports.OutcomeNotFound:
		ev = uc.log.Warn()
	case ports.OutcomeFatal:
		ev = uc.log.Error()
	}
	ev.Err(err).
		Str("company_id", tc.CompanyID).
		Str("user_id", tc.UserID).
		Str("mutation", m.kind()).
		Str("outcome", outcome).
		Msg("mutación de categoría")

	return res, err
}

func (uc *UseCase) create(ctx context.Context, tc tenant.Context, m CreateCategory) (*Result, error) {
	name, err := validateName(m.Name)
	if err != nil {
		return nil, err
	}
	desc, err := validateDescription(m.Description)
	if err != nil {
		return nil, err
	}
	companyID := tc.CurrentCompanyID()

	var id string
	err = uc.tx.RunCategory(ctx, func(categories repository.CategoryRepository, _ repository.ItemRepository, auditRepo repository.AuditRepository) error {
		if err := checkParent(ctx, categories, companyID, m.ParentID, ""); err != nil {
			return err
		}
		newID, err := categories.Create(ctx, &entity.Category{
			CompanyID:   companyID,
			ParentID:    m.ParentID,
			Name:        name,
			Description: desc,
		})
		if err != nil {
			return err
		}
		id = newID
		_, err = uc.recorder.Record(ctx, auditRepo, tc, entity.AuditCreated, entity.EntityCategory, id, "Categoría creada: "+name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Result{ID: id, Message: "Categoría creada correctamente"}, nil
}

func (uc *UseCase) edit(ctx context.Context, tc tenant.Context, m EditCategory) (*Result, error) {
	if err := validateID("id", m.ID); err != nil {
		return nil, err
	}
	name, err := validateName(m.Name)
	if err != nil {
		return nil, err
	}
	desc, err := validateDescription(m.Description)
	if err != nil {
		return nil, err
	}
	companyID := tc.CurrentCompanyID()

	err = uc.tx.RunCategory(ctx, func(categories repository.CategoryRepository, _ repository.ItemRepository, auditRepo repository.AuditRepository) error {
		// Bloquear la fila editada antes de contar sus hijas.
		current, err := categories.LockByID(ctx, companyID, m.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := checkParent(ctx, categories, companyID, m.ParentID, m.ID); err != nil {
			return err
		}
		if m.ParentID != "" {
			children, err := categories.CountChildren(ctx, companyID, m.ID)
			if err != nil {
				return err
			}
			if children > 0 {
				return domain.NewValidationError("parent_id", "una categoría con subcategorías no puede tener padre")
			}
		}
		n, err := categories.Update(ctx, &entity.Category{
			ID:          m.ID,
			CompanyID:   companyID,
			ParentID:    m.ParentID,
			Name:        name,
			Description: desc,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		_, err = uc.recorder.Record(ctx, auditRepo, tc, entity.AuditUpdated, entity.EntityCategory, m.ID, "Categoría actualizada: "+name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Result{ID: m.ID, Message: "Categoría actualizada correctamente"}, nil
}

// delete verifica dependientes con la fila bloqueada y recién leídos dentro de la misma
// transacción que el DELETE.
func (uc *UseCase) delete(ctx context.Context, tc tenant.Context, m DeleteCategory) (*Result, error) {
	if err := validateID("id", m.ID); err != nil {
		return nil, err
	}
	companyID := tc.CurrentCompanyID()

	err := uc.tx.RunCategory(ctx, func(categories repository.CategoryRepository, items repository.ItemRepository, auditRepo repository.AuditRepository) error {
		current, err := categories.LockByID(ctx, companyID, m.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		itemCount, err := items.CountByCategory(ctx, companyID, m.ID)
		if err != nil {
			return err
		}
		if itemCount > 0 {
			return domain.NewConflictError(itemCount, "no se puede eliminar: la categoría tiene %d productos asociados")
		}

		subcatCount, err := categories.CountChildren(ctx, companyID, m.ID)
		if err != nil {
			return err
		}
		if subcatCount > 0 {
			return domain.NewConflictError(subcatCount, "no se puede eliminar: la categoría tiene %d subcategorías")
		}

		n, err := categories.Delete(ctx, companyID, m.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		_, err = uc.recorder.Record(ctx, auditRepo, tc, entity.AuditDeleted, entity.EntityCategory, m.ID, "Categoría eliminada: "+current.Name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Result{ID: m.ID, Message: "Categoría eliminada correctamente"}, nil
}

// List devuelve todas las categorías de la empresa en orden jerárquico: cada raíz seguida de sus hijas.
func (uc *UseCase) List(ctx context.Context, tc tenant.Context) (*dto.CategoryListResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.reads.ListWithStats(ctx, tc.CurrentCompanyID())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryListItem, 0, len(list))
	for _, l := range list {
		items = append(items, dto.CategoryListItem{
			CategoryResponse: toCategoryResponse(&l.Category),
			ParentName:       l.ParentName,
			ItemCount:        l.ItemCount,
			SubcatCount:      l.SubcatCount,
			CanDelete:        l.CanDelete(),
		})
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Get obtiene una categoría de la empresa activa.
func (uc *UseCase) Get(ctx context.Context, tc tenant.Context, id string) (*dto.CategoryResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	if err := validateID("id", id); err != nil {
		return nil, err
	}
	c, err := uc.reads.GetByID(ctx, tc.CurrentCompanyID(), id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// ParentCandidates devuelve las categorías raíz que pueden ser padre. exclude (opcional) omite la
// categoría que se está editando.
func (uc *UseCase) ParentCandidates(ctx context.Context, tc tenant.Context, exclude string) (*dto.ParentCandidatesResponse, error) {
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	list, err := uc.reads.ListTopLevel(ctx, tc.CurrentCompanyID())
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		if c.ID == exclude {
			continue
		}
		items = append(items, toCategoryResponse(c))
	}
	return &dto.ParentCandidatesResponse{Items: items}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return ports.OutcomeSuccess
	case errors.Is(err, domain.ErrValidation):
		return ports.OutcomeValidation
	case errors.Is(err, domain.ErrConflict):
		return ports.OutcomeConflict
	case errors.Is(err, domain.ErrNotFound):
		return ports.OutcomeNotFound
	default:
		return ports.OutcomeFatal
	}
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentID != "" {
		parent := c.ParentID
		out.ParentID = &parent
	}
	return out
}
