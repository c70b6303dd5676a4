package usecase

import (
	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
)

// Los mapeos devuelven nil para una entidad nil: una relación que no se encontró sale como null.

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Nombre:      u.Nombre,
		Apellido:    u.Apellido,
		Email:       u.Email,
		RolID:       u.RolID,
		ProvinciaID: u.ProvinciaID,
		CiudadID:    u.CiudadID,
		Descripcion: u.Descripcion,
		HorasSaldo:  u.HorasSaldo,
		Valoracion:  u.Valoracion.InexactFloat64(),
		RutaImg:     u.RutaImg,
	}
}

func toServicioResponse(s *entity.Servicio) *dto.ServicioResponse {
	if s == nil {
		return nil
	}
	return &dto.ServicioResponse{
		ID:             s.ID,
		UsuarioID:      s.UsuarioID,
		CategoriaID:    s.CategoriaID,
		Tipo:           s.Tipo,
		Titulo:         s.Titulo,
		Descripcion:    s.Descripcion,
		ProvinciaID:    s.ProvinciaID,
		CiudadID:       s.CiudadID,
		HorasEstimadas: s.HorasEstimadas,
		Estado:         s.Estado,
		RutaImg:        s.RutaImg,
	}
}

func toTransaccionResponse(t *entity.Transaccion) *dto.TransaccionResponse {
	if t == nil {
		return nil
	}
	return &dto.TransaccionResponse{
		ID:                   t.ID,
		ServicioID:           t.ServicioID,
		UsuarioSolicitanteID: t.UsuarioSolicitanteID,
		UsuarioOfertanteID:   t.UsuarioOfertanteID,
		Horas:                t.Horas,
		Estado:               t.Estado,
		FechaConfirmacion:    t.FechaConfirmacion,
		CreatedAt:            t.CreatedAt,
	}
}

func toValoracionResponse(v *entity.Valoracion) *dto.ValoracionResponse {
	if v == nil {
		return nil
	}
	return &dto.ValoracionResponse{
		ID:            v.ID,
		TransaccionID: v.TransaccionID,
		ValoradorID:   v.ValoradorID,
		ValoradoID:    v.ValoradoID,
		Puntuacion:    v.Puntuacion,
		Comentario:    v.Comentario,
		CreatedAt:     v.CreatedAt,
	}
}

func toMensajeResponse(m *entity.Mensaje) *dto.MensajeResponse {
	if m == nil {
		return nil
	}
	return &dto.MensajeResponse{
		ID:         m.ID,
		EmisorID:   m.EmisorID,
		ReceptorID: m.ReceptorID,
		ServicioID: m.ServicioID,
		Mensaje:    m.Texto,
		Leido:      m.Leido,
		CreatedAt:  m.CreatedAt,
	}
}

func toProvinciaResponse(p *entity.Provincia) *dto.ProvinciaResponse {
	if p == nil {
		return nil
	}
	return &dto.ProvinciaResponse{ID: p.ID, Nombre: p.Nombre}
}

func toPoblacionResponse(p *entity.Poblacion) *dto.PoblacionResponse {
	if p == nil {
		return nil
	}
	return &dto.PoblacionResponse{ID: p.ID, Nombre: p.Nombre, ProvinciaID: p.ProvinciaID}
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion}
}

func toRolResponse(r *entity.Rol) *dto.RolResponse {
	if r == nil {
		return nil
	}
	return &dto.RolResponse{ID: r.ID, Nombre: r.Nombre}
}
