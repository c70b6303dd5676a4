// Package memtest implementa en memoria todos los puertos de repositorio para los tests de
// usecases y handlers. El binario de la API no lo usa.
package memtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// Store guarda todas las tablas en memoria con las mismas reglas que PostgreSQL:
// email único sin distinguir mayúsculas y borrado rechazado si hay dependientes.
// Las lecturas devuelven copias; modificar lo devuelto no altera el almacén.
type Store struct {
	mu sync.RWMutex

	users         map[int64]entity.User
	servicios     map[int64]entity.Servicio
	transacciones map[int64]entity.Transaccion
	valoraciones  map[int64]entity.Valoracion
	mensajes      map[int64]entity.Mensaje
	provincias    map[int64]entity.Provincia
	poblaciones   map[int64]entity.Poblacion
	categorias    map[int64]entity.Categoria
	roles         map[int64]entity.Rol

	next map[string]int64
	now  func() time.Time
}

// NewStore crea un almacén vacío con los tres roles cargados.
func NewStore() *Store {
	s := &Store{
		users:         map[int64]entity.User{},
		servicios:     map[int64]entity.Servicio{},
		transacciones: map[int64]entity.Transaccion{},
		valoraciones:  map[int64]entity.Valoracion{},
		mensajes:      map[int64]entity.Mensaje{},
		provincias:    map[int64]entity.Provincia{},
		poblaciones:   map[int64]entity.Poblacion{},
		categorias:    map[int64]entity.Categoria{},
		roles:         map[int64]entity.Rol{},
		next:          map[string]int64{},
		now:           time.Now,
	}
	s.roles[entity.RolAdmin] = entity.Rol{ID: entity.RolAdmin, Nombre: "admin"}
	s.roles[entity.RolProfesional] = entity.Rol{ID: entity.RolProfesional, Nombre: "profesional"}
	s.roles[entity.RolUsuario] = entity.Rol{ID: entity.RolUsuario, Nombre: "usuario"}
	return s
}

func (s *Store) nextID(table string) int64 {
	s.next[table]++
	return s.next[table]
}

// AddProvincia carga una provincia (datos de referencia).
func (s *Store) AddProvincia(id int64, nombre string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provincias[id] = entity.Provincia{ID: id, Nombre: nombre}
}

// AddPoblacion carga una población de una provincia.
func (s *Store) AddPoblacion(id int64, nombre string, provinciaID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poblaciones[id] = entity.Poblacion{ID: id, Nombre: nombre, ProvinciaID: provinciaID}
}

// AddCategoria carga una categoría.
func (s *Store) AddCategoria(id int64, nombre string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categorias[id] = entity.Categoria{ID: id, Nombre: nombre}
}

// Users repositorio de usuarios sobre el almacén.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Servicios repositorio de servicios sobre el almacén.
func (s *Store) Servicios() repository.ServicioRepository { return servicioRepo{s} }

// Transacciones repositorio de transacciones sobre el almacén.
func (s *Store) Transacciones() repository.TransaccionRepository { return transaccionRepo{s} }

// Valoraciones repositorio de valoraciones sobre el almacén.
func (s *Store) Valoraciones() repository.ValoracionRepository { return valoracionRepo{s} }

// Mensajes repositorio de mensajes sobre el almacén.
func (s *Store) Mensajes() repository.MensajeRepository { return mensajeRepo{s} }

// Catalog tablas de referencia.
func (s *Store) Catalog() repository.CatalogRepository { return catalogRepo{s} }

// Lookup comprobaciones del validador.
func (s *Store) Lookup() repository.ReferenceLookup { return lookup{s} }

// values copia los valores de m ordenados por id y filtrados por keep.
func values[T any](m map[int64]T, id func(T) int64, keep func(T) bool) []*T {
	out := make([]*T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return id(*out[i]) < id(*out[j]) })
	return out
}

func inIDs(ids []int64) func(int64) bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id int64) bool { return set[id] }
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func userID(u entity.User) int64 { return u.ID }

func (r userRepo) ListAll(context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.users, userID, nil), nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.users, userID, func(u entity.User) bool { return in(u.ID) }), nil
}

func (r userRepo) emailTaken(email string, except int64) bool {
	for _, u := range r.s.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return domain.ErrEmailAlreadyExists
	}
	u.ID = r.s.nextID("usuarios")
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	for _, sv := range r.s.servicios {
		if sv.UsuarioID == id {
			return domain.ErrHasDependents
		}
	}
	for _, t := range r.s.transacciones {
		if t.UsuarioSolicitanteID == id || t.UsuarioOfertanteID == id {
			return domain.ErrHasDependents
		}
	}
	for _, v := range r.s.valoraciones {
		if v.ValoradorID == id || v.ValoradoID == id {
			return domain.ErrHasDependents
		}
	}
	for _, m := range r.s.mensajes {
		if m.EmisorID == id || m.ReceptorID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.users, id)
	return nil
}

// ── servicios ─────────────────────────────────────────────────────────────────

type servicioRepo struct{ s *Store }

func servicioID(sv entity.Servicio) int64 { return sv.ID }

func (r servicioRepo) ListAll(context.Context) ([]*entity.Servicio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.servicios, servicioID, nil), nil
}

func (r servicioRepo) GetByID(_ context.Context, id int64) (*entity.Servicio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sv, ok := r.s.servicios[id]
	if !ok {
		return nil, nil
	}
	return &sv, nil
}

func (r servicioRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Servicio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.servicios, servicioID, func(sv entity.Servicio) bool { return in(sv.ID) }), nil
}

func (r servicioRepo) ListByUsuario(_ context.Context, usuarioID int64) ([]*entity.Servicio, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.servicios, servicioID, func(sv entity.Servicio) bool { return sv.UsuarioID == usuarioID }), nil
}

func (r servicioRepo) Create(_ context.Context, sv *entity.Servicio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sv.ID = r.s.nextID("servicios")
	r.s.servicios[sv.ID] = *sv
	return nil
}

func (r servicioRepo) Update(_ context.Context, sv *entity.Servicio) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.servicios[sv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.servicios[sv.ID] = *sv
	return nil
}

func (r servicioRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.servicios[id]; !ok {
		return domain.ErrNotFound
	}
	for _, t := range r.s.transacciones {
		if t.ServicioID == id {
			return domain.ErrHasDependents
		}
	}
	for _, m := range r.s.mensajes {
		if m.ServicioID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.servicios, id)
	return nil
}

// ── transacciones ─────────────────────────────────────────────────────────────

type transaccionRepo struct{ s *Store }

func transaccionID(t entity.Transaccion) int64 { return t.ID }

func (r transaccionRepo) ListAll(context.Context) ([]*entity.Transaccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.transacciones, transaccionID, nil), nil
}

func (r transaccionRepo) GetByID(_ context.Context, id int64) (*entity.Transaccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transacciones[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r transaccionRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Transaccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.transacciones, transaccionID, func(t entity.Transaccion) bool { return in(t.ID) }), nil
}

func (r transaccionRepo) ListByUsuario(_ context.Context, usuarioID int64) ([]*entity.Transaccion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.transacciones, transaccionID, func(t entity.Transaccion) bool {
		return t.UsuarioSolicitanteID == usuarioID || t.UsuarioOfertanteID == usuarioID
	}), nil
}

func (r transaccionRepo) Create(_ context.Context, t *entity.Transaccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID("transacciones")
	t.CreatedAt = r.s.now().UTC()
	r.s.transacciones[t.ID] = *t
	return nil
}

func (r transaccionRepo) Update(_ context.Context, t *entity.Transaccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.transacciones[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	r.s.transacciones[t.ID] = *t
	return nil
}

func (r transaccionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transacciones[id]; !ok {
		return domain.ErrNotFound
	}
	for _, v := range r.s.valoraciones {
		if v.TransaccionID == id {
			return domain.ErrHasDependents
		}
	}
	delete(r.s.transacciones, id)
	return nil
}

// ── valoraciones ──────────────────────────────────────────────────────────────

type valoracionRepo struct{ s *Store }

func valoracionID(v entity.Valoracion) int64 { return v.ID }

func (r valoracionRepo) ListAll(context.Context) ([]*entity.Valoracion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.valoraciones, valoracionID, nil), nil
}

func (r valoracionRepo) GetByID(_ context.Context, id int64) (*entity.Valoracion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.valoraciones[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r valoracionRepo) ListByValorado(_ context.Context, usuarioID int64) ([]*entity.Valoracion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.valoraciones, valoracionID, func(v entity.Valoracion) bool { return v.ValoradoID == usuarioID }), nil
}

func (r valoracionRepo) Create(_ context.Context, v *entity.Valoracion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = r.s.nextID("valoraciones")
	v.CreatedAt = r.s.now().UTC()
	r.s.valoraciones[v.ID] = *v
	return nil
}

func (r valoracionRepo) Update(_ context.Context, v *entity.Valoracion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.valoraciones[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	v.CreatedAt = old.CreatedAt
	r.s.valoraciones[v.ID] = *v
	return nil
}

func (r valoracionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.valoraciones[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.valoraciones, id)
	return nil
}

// ── mensajes ──────────────────────────────────────────────────────────────────

type mensajeRepo struct{ s *Store }

func mensajeID(m entity.Mensaje) int64 { return m.ID }

func (r mensajeRepo) ListAll(context.Context) ([]*entity.Mensaje, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.mensajes, mensajeID, nil), nil
}

func (r mensajeRepo) GetByID(_ context.Context, id int64) (*entity.Mensaje, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.mensajes[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r mensajeRepo) ListByUsuario(_ context.Context, usuarioID int64) ([]*entity.Mensaje, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.mensajes, mensajeID, func(m entity.Mensaje) bool {
		return m.EmisorID == usuarioID || m.ReceptorID == usuarioID
	}), nil
}

func (r mensajeRepo) Create(_ context.Context, m *entity.Mensaje) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.nextID("mensajes")
	m.CreatedAt = r.s.now().UTC()
	r.s.mensajes[m.ID] = *m
	return nil
}

func (r mensajeRepo) Update(_ context.Context, m *entity.Mensaje) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.mensajes[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	m.CreatedAt = old.CreatedAt
	r.s.mensajes[m.ID] = *m
	return nil
}

func (r mensajeRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.mensajes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.mensajes, id)
	return nil
}

// ── catálogos ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) ListProvincias(context.Context) ([]*entity.Provincia, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.provincias, func(p entity.Provincia) int64 { return p.ID }, nil), nil
}

func (r catalogRepo) ListPoblaciones(_ context.Context, provinciaID *int64) ([]*entity.Poblacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.poblaciones, func(p entity.Poblacion) int64 { return p.ID }, func(p entity.Poblacion) bool {
		return provinciaID == nil || p.ProvinciaID == *provinciaID
	}), nil
}

func (r catalogRepo) ListCategorias(context.Context) ([]*entity.Categoria, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.categorias, func(c entity.Categoria) int64 { return c.ID }, nil), nil
}

func (r catalogRepo) ListRoles(context.Context) ([]*entity.Rol, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return values(r.s.roles, func(x entity.Rol) int64 { return x.ID }, nil), nil
}

func (r catalogRepo) ListTables(context.Context) ([]string, error) {
	return []string{
		repository.TablaCategorias, repository.TablaCiudades, "mensajes", repository.TablaProvincias,
		repository.TablaRoles, repository.TablaServicios, repository.TablaTransacciones,
		repository.TablaUsuarios, "valoraciones",
	}, nil
}

func (r catalogRepo) ProvinciasByIDs(_ context.Context, ids []int64) ([]*entity.Provincia, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.provincias, func(p entity.Provincia) int64 { return p.ID }, func(p entity.Provincia) bool { return in(p.ID) }), nil
}

func (r catalogRepo) PoblacionesByIDs(_ context.Context, ids []int64) ([]*entity.Poblacion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.poblaciones, func(p entity.Poblacion) int64 { return p.ID }, func(p entity.Poblacion) bool { return in(p.ID) }), nil
}

func (r catalogRepo) CategoriasByIDs(_ context.Context, ids []int64) ([]*entity.Categoria, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.categorias, func(c entity.Categoria) int64 { return c.ID }, func(c entity.Categoria) bool { return in(c.ID) }), nil
}

func (r catalogRepo) RolesByIDs(_ context.Context, ids []int64) ([]*entity.Rol, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	in := inIDs(ids)
	return values(r.s.roles, func(x entity.Rol) int64 { return x.ID }, func(x entity.Rol) bool { return in(x.ID) }), nil
}

// ── lookup ────────────────────────────────────────────────────────────────────

type lookup struct{ s *Store }

func (l lookup) Exists(_ context.Context, table string, id int64) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	var ok bool
	switch table {
	case repository.TablaUsuarios:
		_, ok = l.s.users[id]
	case repository.TablaServicios:
		_, ok = l.s.servicios[id]
	case repository.TablaTransacciones:
		_, ok = l.s.transacciones[id]
	case repository.TablaProvincias:
		_, ok = l.s.provincias[id]
	case repository.TablaCiudades:
		_, ok = l.s.poblaciones[id]
	case repository.TablaCategorias:
		_, ok = l.s.categorias[id]
	case repository.TablaRoles:
		_, ok = l.s.roles[id]
	}
	return ok, nil
}

func (l lookup) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return userRepo(l).emailTaken(email, exceptID), nil
}
