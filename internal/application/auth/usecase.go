package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/bancotiempo-api/internal/application/dto"
	"github.com/jhoicas/bancotiempo-api/internal/application/ports"
	"github.com/jhoicas/bancotiempo-api/internal/application/usecase"
	"github.com/jhoicas/bancotiempo-api/internal/application/validation"
	"github.com/jhoicas/bancotiempo-api/internal/domain"
	"github.com/jhoicas/bancotiempo-api/internal/domain/repository"
	"github.com/jhoicas/bancotiempo-api/pkg/jwt"
)

// TokenType tipo de token devuelto al cliente.
const TokenType = "Bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Identity usuario autenticado extraído de un token válido y no revocado.
type Identity struct {
	UserID    int64
	RolID     int64
	TokenID   string
	ExpiresAt time.Time
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y verificación de tokens.
type AuthUseCase struct {
	users    *usecase.UserUseCase
	userRepo repository.UserRepository
	denylist ports.TokenDenylist
	val      *validation.Validator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	users *usecase.UserUseCase,
	userRepo repository.UserRepository,
	denylist ports.TokenDenylist,
	val *validation.Validator,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{users: users, userRepo: userRepo, denylist: denylist, val: val, jwtCfg: jwtCfg}
}

// Register crea la cuenta (rol usuario) y devuelve un token para ella.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.issue(*user)
}

// Login verifica email/password y emite un token. Email desconocido y contraseña errónea
// devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := uc.val.Check(ctx, in).Err(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !usecase.PasswordMatches(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	resp, err := uc.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return uc.issue(*resp)
}

func (uc *AuthUseCase) issue(user dto.UserResponse) (*dto.AuthResponse, error) {
	token, claims, err := jwt.Generate(
		uc.jwtCfg.Secret,
		strconv.FormatInt(user.ID, 10),
		strconv.FormatInt(user.RolID, 10),
		uc.jwtCfg.Issuer,
		uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresAt:   claims.ExpiresAt.UTC().Format(time.RFC3339),
		User:        user,
	}, nil
}

// Authenticate valida "Bearer <token>" (o el token solo): firma, expiración y revocación.
// Cualquier fallo devuelve domain.ErrUnauthorized envolviendo la causa.
func (uc *AuthUseCase) Authenticate(ctx context.Context, bearer string) (*Identity, error) {
	token := strings.TrimSpace(bearer)
	if len(token) > len(TokenType) && strings.EqualFold(token[:len(TokenType)], TokenType) {
		token = strings.TrimSpace(token[len(TokenType):])
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token ausente", domain.ErrUnauthorized)
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id inválido", domain.ErrUnauthorized)
	}
	rolID, err := strconv.ParseInt(claims.Role, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rol inválido", domain.ErrUnauthorized)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token sin jti", domain.ErrUnauthorized)
	}
	revoked, err := uc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
	}
	id := &Identity{UserID: userID, RolID: rolID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Logout revoca el token de la identidad hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, id *Identity) error {
	if id == nil {
		return domain.ErrUnauthorized
	}
	if err := uc.denylist.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}
