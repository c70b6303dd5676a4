package usecase

import (
	"context"
	"sort"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// Relations expande las claves foráneas de cada entidad en objetos anidados.
// Carga cada tabla referenciada una sola vez por lote (WHERE id = ANY) y anida un único nivel:
// el usuario dentro de un servicio no trae a su vez provincia ni rol.
type Relations struct {
	users         repository.UserRepository
	servicios     repository.ServicioRepository
	transacciones repository.TransaccionRepository
	catalog       repository.CatalogRepository
}

// NewRelations construye el cargador de relaciones.
func NewRelations(
	users repository.UserRepository,
	servicios repository.ServicioRepository,
	transacciones repository.TransaccionRepository,
	catalog repository.CatalogRepository,
) *Relations {
	return &Relations{users: users, servicios: servicios, transacciones: transacciones, catalog: catalog}
}

// idSet conjunto de ids referenciados.
type idSet map[int64]struct{}

func (s idSet) add(id int64) {
	if id != 0 {
		s[id] = struct{}{}
	}
}

func (s idSet) addPtr(id *int64) {
	if id != nil {
		s.add(*id)
	}
}

func (s idSet) list() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func byID[T any](items []*T, id func(*T) int64) map[int64]*T {
	m := make(map[int64]*T, len(items))
	for _, it := range items {
		m[id(it)] = it
	}
	return m
}

func (r *Relations) usersByID(ctx context.Context, ids idSet) (map[int64]*entity.User, error) {
	list, err := r.users.ListByIDs(ctx, ids.list())
	if err != nil {
		return nil, err
	}
	return byID(list, func(u *entity.User) int64 { return u.ID }), nil
}

func (r *Relations) serviciosByID(ctx context.Context, ids idSet) (map[int64]*entity.Servicio, error) {
	list, err := r.servicios.ListByIDs(ctx, ids.list())
	if err != nil {
		return nil, err
	}
	return byID(list, func(s *entity.Servicio) int64 { return s.ID }), nil
}

func (r *Relations) provinciasByID(ctx context.Context, ids idSet) (map[int64]*entity.Provincia, error) {
	list, err := r.catalog.ProvinciasByIDs(ctx, ids.list())
	if err != nil {
		return nil, err
	}
	return byID(list, func(p *entity.Provincia) int64 { return p.ID }), nil
}

func (r *Relations) poblacionesByID(ctx context.Context, ids idSet) (map[int64]*entity.Poblacion, error) {
	list, err := r.catalog.PoblacionesByIDs(ctx, ids.list())
	if err != nil {
		return nil, err
	}
	return byID(list, func(p *entity.Poblacion) int64 { return p.ID }), nil
}

// Users expande provincia, ciudad y rol.
func (r *Relations) Users(ctx context.Context, list []*entity.User) ([]dto.UserResponse, error) {
	provIDs, ciudadIDs, rolIDs := idSet{}, idSet{}, idSet{}
	for _, u := range list {
		provIDs.addPtr(u.ProvinciaID)
		ciudadIDs.addPtr(u.CiudadID)
		rolIDs.add(u.RolID)
	}
	provincias, err := r.provinciasByID(ctx, provIDs)
	if err != nil {
		return nil, err
	}
	ciudades, err := r.poblacionesByID(ctx, ciudadIDs)
	if err != nil {
		return nil, err
	}
	rolList, err := r.catalog.RolesByIDs(ctx, rolIDs.list())
	if err != nil {
		return nil, err
	}
	roles := byID(rolList, func(x *entity.Rol) int64 { return x.ID })

	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp := toUserResponse(u)
		if u.ProvinciaID != nil {
			resp.Provincia = toProvinciaResponse(provincias[*u.ProvinciaID])
		}
		if u.CiudadID != nil {
			resp.Ciudad = toPoblacionResponse(ciudades[*u.CiudadID])
		}
		resp.Rol = toRolResponse(roles[u.RolID])
		out = append(out, *resp)
	}
	return out, nil
}

// User versión de Users para un único registro.
func (r *Relations) User(ctx context.Context, u *entity.User) (*dto.UserResponse, error) {
	out, err := r.Users(ctx, []*entity.User{u})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Servicios expande usuario, categoría, provincia y ciudad.
func (r *Relations) Servicios(ctx context.Context, list []*entity.Servicio) ([]dto.ServicioResponse, error) {
	userIDs, catIDs, provIDs, ciudadIDs := idSet{}, idSet{}, idSet{}, idSet{}
	for _, s := range list {
		userIDs.add(s.UsuarioID)
		catIDs.add(s.CategoriaID)
		provIDs.add(s.ProvinciaID)
		ciudadIDs.add(s.CiudadID)
	}
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	catList, err := r.catalog.CategoriasByIDs(ctx, catIDs.list())
	if err != nil {
		return nil, err
	}
	categorias := byID(catList, func(c *entity.Categoria) int64 { return c.ID })
	provincias, err := r.provinciasByID(ctx, provIDs)
	if err != nil {
		return nil, err
	}
	ciudades, err := r.poblacionesByID(ctx, ciudadIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ServicioResponse, 0, len(list))
	for _, s := range list {
		resp := toServicioResponse(s)
		resp.Usuario = toUserResponse(users[s.UsuarioID])
		resp.Categoria = toCategoriaResponse(categorias[s.CategoriaID])
		resp.Provincia = toProvinciaResponse(provincias[s.ProvinciaID])
		resp.Ciudad = toPoblacionResponse(ciudades[s.CiudadID])
		out = append(out, *resp)
	}
	return out, nil
}

// Servicio versión de Servicios para un único registro.
func (r *Relations) Servicio(ctx context.Context, s *entity.Servicio) (*dto.ServicioResponse, error) {
	out, err := r.Servicios(ctx, []*entity.Servicio{s})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Transacciones expande servicio, solicitante y ofertante.
func (r *Relations) Transacciones(ctx context.Context, list []*entity.Transaccion) ([]dto.TransaccionResponse, error) {
	servIDs, userIDs := idSet{}, idSet{}
	for _, t := range list {
		servIDs.add(t.ServicioID)
		userIDs.add(t.UsuarioSolicitanteID)
		userIDs.add(t.UsuarioOfertanteID)
	}
	servicios, err := r.serviciosByID(ctx, servIDs)
	if err != nil {
		return nil, err
	}
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransaccionResponse, 0, len(list))
	for _, t := range list {
		resp := toTransaccionResponse(t)
		resp.Servicio = toServicioResponse(servicios[t.ServicioID])
		resp.UsuarioSolicitante = toUserResponse(users[t.UsuarioSolicitanteID])
		resp.UsuarioOfertante = toUserResponse(users[t.UsuarioOfertanteID])
		out = append(out, *resp)
	}
	return out, nil
}

// Transaccion versión de Transacciones para un único registro.
func (r *Relations) Transaccion(ctx context.Context, t *entity.Transaccion) (*dto.TransaccionResponse, error) {
	out, err := r.Transacciones(ctx, []*entity.Transaccion{t})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Valoraciones expande transacción, valorador y valorado.
func (r *Relations) Valoraciones(ctx context.Context, list []*entity.Valoracion) ([]dto.ValoracionResponse, error) {
	txIDs, userIDs := idSet{}, idSet{}
	for _, v := range list {
		txIDs.add(v.TransaccionID)
		userIDs.add(v.ValoradorID)
		userIDs.add(v.ValoradoID)
	}
	txList, err := r.transacciones.ListByIDs(ctx, txIDs.list())
	if err != nil {
		return nil, err
	}
	transacciones := byID(txList, func(t *entity.Transaccion) int64 { return t.ID })
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ValoracionResponse, 0, len(list))
	for _, v := range list {
		resp := toValoracionResponse(v)
		resp.Transaccion = toTransaccionResponse(transacciones[v.TransaccionID])
		resp.Valorador = toUserResponse(users[v.ValoradorID])
		resp.Valorado = toUserResponse(users[v.ValoradoID])
		out = append(out, *resp)
	}
	return out, nil
}

// Valoracion versión de Valoraciones para un único registro.
func (r *Relations) Valoracion(ctx context.Context, v *entity.Valoracion) (*dto.ValoracionResponse, error) {
	out, err := r.Valoraciones(ctx, []*entity.Valoracion{v})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Mensajes expande emisor, receptor y servicio.
func (r *Relations) Mensajes(ctx context.Context, list []*entity.Mensaje) ([]dto.MensajeResponse, error) {
	userIDs, servIDs := idSet{}, idSet{}
	for _, m := range list {
		userIDs.add(m.EmisorID)
		userIDs.add(m.ReceptorID)
		servIDs.add(m.ServicioID)
	}
	users, err := r.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	servicios, err := r.serviciosByID(ctx, servIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MensajeResponse, 0, len(list))
	for _, m := range list {
		resp := toMensajeResponse(m)
		resp.Emisor = toUserResponse(users[m.EmisorID])
		resp.Receptor = toUserResponse(users[m.ReceptorID])
		resp.Servicio = toServicioResponse(servicios[m.ServicioID])
		out = append(out, *resp)
	}
	return out, nil
}

// Mensaje versión de Mensajes para un único registro.
func (r *Relations) Mensaje(ctx context.Context, m *entity.Mensaje) (*dto.MensajeResponse, error) {
	out, err := r.Mensajes(ctx, []*entity.Mensaje{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// Poblaciones expande la provincia de cada población.
func (r *Relations) Poblaciones(ctx context.Context, list []*entity.Poblacion) ([]dto.PoblacionResponse, error) {
	provIDs := idSet{}
	for _, p := range list {
		provIDs.add(p.ProvinciaID)
	}
	provincias, err := r.provinciasByID(ctx, provIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PoblacionResponse, 0, len(list))
	for _, p := range list {
		resp := toPoblacionResponse(p)
		resp.Provincia = toProvinciaResponse(provincias[p.ProvinciaID])
		out = append(out, *resp)
	}
	return out, nil
}
