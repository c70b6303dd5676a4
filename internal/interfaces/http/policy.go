package http

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bancotiempo-api/internal/domain/entity"
	"github.com/jhoicas/bancotiempo-api/pkg/config"
)

// Nombres de rol admitidos en AUTH_PROTECTED_ROUTES además del id numérico.
var roleNames = map[string]int64{
	"admin":       entity.RolAdmin,
	"profesional": entity.RolProfesional,
	"usuario":     entity.RolUsuario,
}

type policyRule struct {
	roles []int64
	used  bool
}

// Policy tabla de autorización: qué rutas (relativas a /api) exigen token y con qué roles.
// Las rutas que no aparecen son públicas.
type Policy struct {
	rules map[string]*policyRule
}

// NewPolicy construye la tabla a partir de la configuración. Falla con roles desconocidos.
func NewPolicy(rules []config.RouteRule) (*Policy, error) {
	p := &Policy{rules: make(map[string]*policyRule, len(rules))}
	for _, r := range rules {
		pr := &policyRule{}
		for _, name := range r.Roles {
			id, err := parseRole(name)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
			}
			pr.roles = append(pr.roles, id)
		}
		p.rules[policyKey(r.Method, r.Path)] = pr
	}
	return p, nil
}

func parseRole(s string) (int64, error) {
	if id, ok := roleNames[strings.ToLower(s)]; ok {
		return id, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("rol desconocido %q", s)
	}
	return id, nil
}

func policyKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// guard devuelve los middlewares que exige la tabla para method+path y marca la entrada como usada.
func (p *Policy) guard(method, path string, authn fiber.Handler) []fiber.Handler {
	if p == nil {
		return nil
	}
	r, ok := p.rules[policyKey(method, path)]
	if !ok {
		return nil
	}
	r.used = true
	return []fiber.Handler{authn, RequireRole(r.roles...)}
}

// Protected indica si method+path exige token. Una tabla nil no protege nada.
func (p *Policy) Protected(method, path string) bool {
	if p == nil {
		return false
	}
	_, ok := p.rules[policyKey(method, path)]
	return ok
}

// Unused entradas de la tabla que no coinciden con ninguna ruta registrada.
func (p *Policy) Unused() []string {
	if p == nil {
		return nil
	}
	var out []string
	for k, r := range p.rules {
		if !r.used {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// routes registra rutas en un grupo consultando la tabla de autorización.
type routes struct {
	group  fiber.Router
	policy *Policy
	authn  fiber.Handler
}

func (rt *routes) add(method, path string, h fiber.Handler) {
	handlers := append(rt.policy.guard(method, path, rt.authn), h)
	rt.group.Add(method, path, handlers...)
}

func (rt *routes) get(path string, h fiber.Handler)    { rt.add(fiber.MethodGet, path, h) }
func (rt *routes) post(path string, h fiber.Handler)   { rt.add(fiber.MethodPost, path, h) }
func (rt *routes) put(path string, h fiber.Handler)    { rt.add(fiber.MethodPut, path, h) }
func (rt *routes) delete(path string, h fiber.Handler) { rt.add(fiber.MethodDelete, path, h) }
