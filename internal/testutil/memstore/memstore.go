// Package memstore es un almacén en memoria con la misma semántica de ámbito por empresa y
// de transacción que el adaptador PostgreSQL. Lo usan los tests de aplicación e interfaces.
//
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado que
// reemplaza al original solo si la función termina sin error.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-core/internal/application/category"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

var (
	_ category.TxRunner             = (*Store)(nil)
	_ repository.CategoryRepository = categoryRepo{}
	_ repository.ItemRepository     = itemRepo{}
	_ repository.AuditRepository    = auditRepo{}
	_ repository.CompanyRepository  = companyRepo{}
)

type state struct {
	companies  map[string]entity.Company
	categories map[string]entity.Category
	items      map[string]entity.Item
	audit      []entity.AuditEntry
}

func newState() *state {
	return &state{
		companies:  map[string]entity.Company{},
		categories: map[string]entity.Category{},
		items:      map[string]entity.Item{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	c.audit = append([]entity.AuditEntry(nil), s.audit...)
	return c
}

// Store almacén en memoria.
type Store struct {
	mu  sync.Mutex
	st  *state
	ops atomic.Int64

	// AuditErr, si no es nil, lo devuelve toda escritura de auditoría.
	AuditErr error
	// Now reloj usado para timestamps.
	Now func() time.Time
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState(), Now: time.Now}
}

// Ops cantidad de operaciones de datos ejecutadas (lecturas y escrituras).
func (s *Store) Ops() int64 { return s.ops.Load() }

// view da acceso al estado; en transacción el mutex ya está tomado.
type view struct {
	store *Store
	st    *state // nil fuera de transacción: se usa store.st con el mutex
}

func (v view) do(fn func(st *state) error) error {
	v.store.ops.Add(1)
	if v.st != nil {
		return fn(v.st)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Categories repositorio fuera de transacción.
func (s *Store) Categories() repository.CategoryRepository { return categoryRepo{view{store: s}} }

// Items repositorio fuera de transacción.
func (s *Store) Items() repository.ItemRepository { return itemRepo{view{store: s}} }

// Audit repositorio fuera de transacción.
func (s *Store) Audit() repository.AuditRepository { return auditRepo{view{store: s}} }

// Companies repositorio fuera de transacción.
func (s *Store) Companies() repository.CompanyRepository { return companyRepo{view{store: s}} }

// RunCategory implementa category.TxRunner.
func (s *Store) RunCategory(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	items repository.ItemRepository,
	audit repository.AuditRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	v := view{store: s, st: work}
	if err := fn(categoryRepo{v}, itemRepo{v}, auditRepo{v}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// AuditEntries copia de todas las entradas de auditoría, en orden de inserción.
func (s *Store) AuditEntries() []entity.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.AuditEntry(nil), s.st.audit...)
}

// MustCompany crea una empresa activa y devuelve su id.
func (s *Store) MustCompany(name string) string {
	id, err := s.Companies().Create(context.Background(), &entity.Company{Name: name, Status: entity.CompanyActive})
	if err != nil {
		panic(err)
	}
	return id
}

// MustCategory crea una categoría sin auditoría (fixture) y devuelve su id.
func (s *Store) MustCategory(companyID, name, parentID string) string {
	id, err := s.Categories().Create(context.Background(), &entity.Category{CompanyID: companyID, Name: name, ParentID: parentID})
	if err != nil {
		panic(err)
	}
	return id
}

// MustItem crea un producto en la categoría y devuelve su id.
func (s *Store) MustItem(companyID, categoryID, name string) string {
	id, err := s.Items().Create(context.Background(), &entity.Item{CompanyID: companyID, CategoryID: categoryID, Name: name, IsActive: true})
	if err != nil {
		panic(err)
	}
	return id
}

// SetCompanyStatus cambia el estado de una empresa.
func (s *Store) SetCompanyStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.st.companies[id]
	c.Status = status
	s.st.companies[id] = c
}

type categoryRepo struct{ v view }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) (string, error) {
	var id string
	err := r.v.do(func(st *state) error {
		if _, ok := st.companies[c.CompanyID]; !ok {
			return fmt.Errorf("insert category: %w", domain.ErrConflict)
		}
		if c.ParentID != "" {
			p, ok := st.categories[c.ParentID]
			if !ok || p.CompanyID != c.CompanyID {
				return fmt.Errorf("insert category: %w", domain.ErrConflict)
			}
		}
		now := r.v.store.Now()
		row := *c
		row.ID = uuid.NewString()
		row.CreatedAt, row.UpdatedAt = now, now
		st.categories[row.ID] = row
		id = row.ID
		return nil
	})
	return id, err
}

func (r categoryRepo) GetByID(_ context.Context, companyID, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.do(func(st *state) error {
		if c, ok := st.categories[id]; ok && c.CompanyID == companyID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r categoryRepo) LockByID(ctx context.Context, companyID, id string) (*entity.Category, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r categoryRepo) Update(_ context.Context, c *entity.Category) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		cur, ok := st.categories[c.ID]
		if !ok || cur.CompanyID != c.CompanyID {
			return nil
		}
		if c.ParentID != "" {
			p, ok := st.categories[c.ParentID]
			if !ok || p.CompanyID != c.CompanyID {
				return fmt.Errorf("update category: %w", domain.ErrConflict)
			}
		}
		cur.Name, cur.Description, cur.ParentID = c.Name, c.Description, c.ParentID
		cur.UpdatedAt = r.v.store.Now()
		st.categories[c.ID] = cur
		n = 1
		return nil
	})
	return n, err
}

func (r categoryRepo) Delete(_ context.Context, companyID, id string) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		cur, ok := st.categories[id]
		if !ok || cur.CompanyID != companyID {
			return nil
		}
		for _, c := range st.categories {
			if c.ParentID == id {
				return fmt.Errorf("delete category: %w", domain.ErrConflict)
			}
		}
		for _, it := range st.items {
			if it.CategoryID == id {
				return fmt.Errorf("delete category: %w", domain.ErrConflict)
			}
		}
		delete(st.categories, id)
		n = 1
		return nil
	})
	return n, err
}

func (r categoryRepo) CountChildren(_ context.Context, companyID, id string) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, c := range st.categories {
			if c.ParentID == id && c.CompanyID == companyID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r categoryRepo) ListWithStats(_ context.Context, companyID string) ([]*entity.CategoryListing, error) {
	var list []*entity.CategoryListing
	err := r.v.do(func(st *state) error {
		for _, c := range st.categories {
			if c.CompanyID != companyID {
				continue
			}
			l := &entity.CategoryListing{Category: c}
			if p, ok := st.categories[c.ParentID]; ok && p.CompanyID == companyID {
				l.ParentName = p.Name
			}
			for _, it := range st.items {
				if it.CategoryID == c.ID && it.CompanyID == companyID {
					l.ItemCount++
				}
			}
			for _, s := range st.categories {
				if s.ParentID == c.ID && s.CompanyID == companyID {
					l.SubcatCount++
				}
			}
			list = append(list, l)
		}
		return nil
	})
	// Mismo orden que la consulta SQL: nombre de la raíz, grupo, raíz antes que hijas, nombre.
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if ga, gb := groupName(a), groupName(b); ga != gb {
			return ga < gb
		}
		if ga, gb := groupID(a), groupID(b); ga != gb {
			return ga < gb
		}
		if a.IsTopLevel() != b.IsTopLevel() {
			return a.IsTopLevel()
		}
		return a.Name < b.Name
	})
	return list, err
}

func groupName(l *entity.CategoryListing) string {
	if l.IsTopLevel() {
		return l.Name
	}
	return l.ParentName
}

func groupID(l *entity.CategoryListing) string {
	if l.IsTopLevel() {
		return l.ID
	}
	return l.ParentID
}

func (r categoryRepo) ListTopLevel(_ context.Context, companyID string) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.v.do(func(st *state) error {
		for _, c := range st.categories {
			if c.CompanyID == companyID && c.IsTopLevel() {
				c := c
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, err
}

type itemRepo struct{ v view }

func (r itemRepo) Create(_ context.Context, item *entity.Item) (string, error) {
	var id string
	err := r.v.do(func(st *state) error {
		if item.CategoryID != "" {
			c, ok := st.categories[item.CategoryID]
			if !ok || c.CompanyID != item.CompanyID {
				return fmt.Errorf("insert item: %w", domain.ErrConflict)
			}
		}
		row := *item
		row.ID = uuid.NewString()
		row.CreatedAt = r.v.store.Now()
		st.items[row.ID] = row
		id = row.ID
		return nil
	})
	return id, err
}

func (r itemRepo) CountByCategory(_ context.Context, companyID, categoryID string) (int, error) {
	n := 0
	err := r.v.do(func(st *state) error {
		for _, it := range st.items {
			if it.CategoryID == categoryID && it.CompanyID == companyID {
				n++
			}
		}
		return nil
	})
	return n, err
}

type auditRepo struct{ v view }

func (r auditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	return r.v.do(func(st *state) error {
		if r.v.store.AuditErr != nil {
			return r.v.store.AuditErr
		}
		e.ID = uuid.NewString()
		e.OccurredAt = r.v.store.Now()
		st.audit = append(st.audit, *e)
		return nil
	})
}

func (r auditRepo) List(_ context.Context, companyID string, f entity.AuditFilter) ([]*entity.AuditEntry, int, error) {
	var matched []*entity.AuditEntry
	err := r.v.do(func(st *state) error {
		for i := len(st.audit) - 1; i >= 0; i-- {
			e := st.audit[i]
			if e.CompanyID != companyID ||
				(f.Action != "" && e.Action != f.Action) ||
				(f.EntityType != "" && e.EntityType != f.EntityType) ||
				(f.EntityID != "" && e.EntityID != f.EntityID) {
				continue
			}
			matched = append(matched, &e)
		}
		return nil
	})
	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}
	return matched[start:end], total, err
}

type companyRepo struct{ v view }

func (r companyRepo) Create(_ context.Context, c *entity.Company) (string, error) {
	var id string
	err := r.v.do(func(st *state) error {
		row := *c
		row.ID = uuid.NewString()
		if row.Status == "" {
			row.Status = entity.CompanyActive
		}
		row.CreatedAt = r.v.store.Now()
		st.companies[row.ID] = row
		id = row.ID
		return nil
	})
	return id, err
}

func (r companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.v.do(func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}
