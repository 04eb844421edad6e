package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/TollFee-api/internal/application/dto"
	"github.com/jhoicas/TollFee-api/internal/domain"
	"github.com/jhoicas/TollFee-api/pkg/jwt"
)

// RoleAdmin único rol con permiso para modificar el catálogo de tarifarios.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AdminCredentials operador administrador. PasswordHash es bcrypt.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthUseCase login del operador administrador.
type AuthUseCase struct {
	admin  AdminCredentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin AdminCredentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg}
}

// Login verifica usuario/password y genera el JWT. Sin hash configurado el login queda deshabilitado.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.PasswordHash == "" {
		return nil, domain.ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.admin.Username)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Username, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Role:      RoleAdmin,
	}, nil
}
