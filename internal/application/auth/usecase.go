package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/christoferrrnewtech/dentpal-api/internal/application/access"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/dto"
	"github.com/christoferrrnewtech/dentpal-api/internal/application/usecase"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain"
	"github.com/christoferrrnewtech/dentpal-api/internal/domain/repository"
	"github.com/christoferrrnewtech/dentpal-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	resolver *access.Resolver
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, resolver *access.Resolver, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, resolver: resolver, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token, usuario y permisos efectivos.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     user.ID,
		SellerID:   user.SellerID,
		Role:       user.Role,
		SubAccount: user.IsSubAccount,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		User:   usecase.ToUserResponse(user),
		Access: uc.resolver.ForUser(ctx, user).ToResponse(),
	}, nil
}
