package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
)

// Papel del usuario en una línea del extracto.
const (
	RolSolicitante = "solicitante"
	RolOfertante   = "ofertante"
)

// StatementUseCase genera el extracto de horas (PDF) de un usuario.
type StatementUseCase struct {
	users         repository.UserRepository
	transacciones repository.TransaccionRepository
	servicios     repository.ServicioRepository
	renderer      ports.StatementRenderer
	now           func() time.Time
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(
	users repository.UserRepository,
	transacciones repository.TransaccionRepository,
	servicios repository.ServicioRepository,
	renderer ports.StatementRenderer,
) *StatementUseCase {
	return &StatementUseCase{users: users, transacciones: transacciones, servicios: servicios, renderer: renderer, now: time.Now}
}

// Build reúne las transacciones del usuario y calcula las horas confirmadas recibidas y prestadas.
func (uc *StatementUseCase) Build(ctx context.Context, usuarioID int64) (*ports.Statement, error) {
	user, err := uc.users.GetByID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	txs, err := uc.transacciones.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	servIDs := idSet{}
	for _, t := range txs {
		servIDs.add(t.ServicioID)
	}
	servList, err := uc.servicios.ListByIDs(ctx, servIDs.list())
	if err != nil {
		return nil, err
	}
	servicios := byID(servList, func(s *entity.Servicio) int64 { return s.ID })

	st := &ports.Statement{
		Usuario:    user.NombreCompleto(),
		Email:      user.Email,
		HorasSaldo: user.HorasSaldo,
		Lineas:     make([]ports.StatementLine, 0, len(txs)),
		GeneradoEn: uc.now().UTC(),
	}
	for _, t := range txs {
		titulo := fmt.Sprintf("Servicio #%d", t.ServicioID)
		if s := servicios[t.ServicioID]; s != nil {
			titulo = s.Titulo
		}
		confirmada := t.Estado == entity.TransaccionConfirmada
		// Un usuario puede figurar en ambos papeles de la misma transacción: una línea por papel.
		if t.UsuarioSolicitanteID == usuarioID {
			st.Lineas = append(st.Lineas, statementLine(t, titulo, RolSolicitante))
			if confirmada {
				st.HorasRecibidas += t.Horas
			}
		}
		if t.UsuarioOfertanteID == usuarioID {
			st.Lineas = append(st.Lineas, statementLine(t, titulo, RolOfertante))
			if confirmada {
				st.HorasPrestadas += t.Horas
			}
		}
	}
	return st, nil
}

// Render genera el PDF del extracto.
func (uc *StatementUseCase) Render(ctx context.Context, usuarioID int64) ([]byte, error) {
	st, err := uc.Build(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderStatement(ctx, st)
}

func statementLine(t *entity.Transaccion, titulo, rol string) ports.StatementLine {
	fecha := t.CreatedAt
	if t.FechaConfirmacion != nil {
		fecha = *t.FechaConfirmacion
	}
	return ports.StatementLine{Fecha: fecha, Servicio: titulo, Rol: rol, Horas: t.Horas, Estado: t.Estado}
}
