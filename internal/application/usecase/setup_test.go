package usecase_test

import (
	"context"
	"errors"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/internal/infrastructure/memory/memtest"
)

// fakeImages registra las subidas; si err != nil las rechaza.
type fakeImages struct {
	uploads []ports.Image
	err     error
}

func (f *fakeImages) Upload(_ context.Context, img ports.Image) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, img)
	return "https://img.test/" + img.Filename, nil
}

type fixture struct {
	store         *memtest.Store
	images        *fakeImages
	rel           *usecase.Relations
	val           *validation.Validator
	users         *usecase.UserUseCase
	servicios     *usecase.ServicioUseCase
	transacciones *usecase.TransaccionUseCase
	valoraciones  *usecase.ValoracionUseCase
	mensajes      *usecase.MensajeUseCase
	catalog       *usecase.CatalogUseCase
}

func newFixture() *fixture {
	st := memtest.NewStore()
	st.AddProvincia(28, "Madrid")
	st.AddProvincia(5, "Ávila")
	st.AddProvincia(4, "Almería")
	st.AddPoblacion(100, "Móstoles", 28)
	st.AddPoblacion(101, "Alcalá de Henares", 28)
	st.AddPoblacion(102, "Ñora", 4)
	st.AddCategoria(1, "Hogar")
	st.AddCategoria(2, "Educación")

	f := &fixture{store: st, images: &fakeImages{}}
	f.rel = usecase.NewRelations(st.Users(), st.Servicios(), st.Transacciones(), st.Catalog())
	f.val = validation.New(st.Lookup())
	f.users = usecase.NewUserUseCase(st.Users(), f.rel, f.val, f.images)
	f.servicios = usecase.NewServicioUseCase(st.Servicios(), st.Users(), f.rel, f.val, f.images)
	f.transacciones = usecase.NewTransaccionUseCase(st.Transacciones(), st.Users(), f.rel, f.val)
	f.valoraciones = usecase.NewValoracionUseCase(st.Valoraciones(), st.Users(), f.rel, f.val)
	f.mensajes = usecase.NewMensajeUseCase(st.Mensajes(), st.Users(), f.rel, f.val)
	f.catalog = usecase.NewCatalogUseCase(st.Catalog(), f.rel)
	return f
}

// seedUser inserta un usuario directamente en el almacén.
func (f *fixture) seedUser(nombre, email string) *entity.User {
	prov, ciudad := int64(28), int64(100)
	u := &entity.User{
		Nombre: nombre, Apellido: "Prueba", Email: email, PasswordHash: mustHash("secreto"),
		RolID: entity.RolUsuario, ProvinciaID: &prov, CiudadID: &ciudad, HorasSaldo: entity.DefaultHorasSaldo,
	}
	if err := f.store.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

func (f *fixture) seedServicio(usuarioID int64, titulo string) *entity.Servicio {
	s := &entity.Servicio{
		UsuarioID: usuarioID, CategoriaID: 1, Tipo: entity.TipoOferta, Titulo: titulo, Descripcion: titulo,
		ProvinciaID: 28, CiudadID: 100, HorasEstimadas: 1, Estado: entity.ServicioActivo,
	}
	if err := f.store.Servicios().Create(context.Background(), s); err != nil {
		panic(err)
	}
	return s
}

func (f *fixture) seedTransaccion(servicioID, solicitante, ofertante int64, horas int, estado string) *entity.Transaccion {
	t := &entity.Transaccion{
		ServicioID: servicioID, UsuarioSolicitanteID: solicitante, UsuarioOfertanteID: ofertante,
		Horas: horas, Estado: estado,
	}
	if err := f.store.Transacciones().Create(context.Background(), t); err != nil {
		panic(err)
	}
	return t
}

func mustHash(p string) string {
	h, err := usecase.HashPassword(p)
	if err != nil {
		panic(err)
	}
	return h
}

func ptr[T any](v T) *T { return &v }

var errBoom = errors.New("boom")
