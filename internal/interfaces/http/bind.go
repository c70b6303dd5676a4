package http

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
)

// Campo multipart con la imagen de usuarios y servicios.
const imageField = "img"

var errInvalidBody = errors.New(MsgInvalidBody)

// idParam lee un id numérico de la ruta. Un id no numérico no puede existir: el caller responde 404.
func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindBody decodifica JSON o formulario (urlencoded/multipart) en out. Un cuerpo vacío deja
// out intacto y la validación reporta los campos obligatorios.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validation.FromUnmarshalType(typeErr)
	}
	return errInvalidBody
}

// isMultipart indica si la petición trae multipart/form-data.
func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// formImage lee el fichero img de un multipart; nil si no viene.
func formImage(c *fiber.Ctx) (*ports.Image, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errInvalidBody
	}
	files := form.File[imageField]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, errInvalidBody
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errInvalidBody
	}
	return &ports.Image{Filename: fh.Filename, Data: data}, nil
}

// badRequest responde 400 para cuerpos malformados y delega el resto en fail.
func badRequest(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidBody) {
		return errorJSON(c, fiber.StatusBadRequest, MsgInvalidBody, MsgInvalidBody)
	}
	return fail(c, err, MsgInternal)
}
