package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-app/almacen-api/internal/application/auth"
	"github.com/almacen-app/almacen-api/internal/application/dto"
	"github.com/almacen-app/almacen-api/internal/domain"
	"github.com/almacen-app/almacen-api/internal/domain/entity"
	"github.com/almacen-app/almacen-api/internal/infrastructure/jsonstore"
	pkgjwt "github.com/almacen-app/almacen-api/pkg/jwt"
)

const testSecret = "secret-de-pruebas-auth"

func newUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "almacen.json"))
	require.NoError(t, err)
	return auth.NewAuthUseCase(jsonstore.NewUserRepository(store), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
}

func TestRegisterUser_RolPorDefectoYDuplicados(t *testing.T) {
	uc := newUseCase(t)

	u, err := uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "contraseña-larga"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, u.Role, "sin rol explícito el usuario queda como staff")
	assert.True(t, u.Active)

	_, err = uc.RegisterUser(dto.RegisterRequest{Username: "maria", Password: "otra-contraseña"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc := newUseCase(t)

	created, err := uc.RegisterUser(dto.RegisterRequest{
		Username: "pedro",
		Password: "contraseña-larga",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Username: "pedro", Password: "contraseña-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.User.LastLoginAt, "el login registra el último acceso")

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_Fallos(t *testing.T) {
	uc := newUseCase(t)

	u, err := uc.RegisterUser(dto.RegisterRequest{Username: "laura", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Username: "laura", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Un usuario desactivado no puede entrar, pero sigue existiendo para la
	// atribución de la bitácora.
	require.NoError(t, uc.Deactivate(u.ID))
	_, err = uc.Login(dto.LoginRequest{Username: "laura", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := uc.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.False(t, users[0].Active)
}

func TestSeedAdmin_SoloConBaseVacia(t *testing.T) {
	uc := newUseCase(t)

	created, err := uc.SeedAdmin("admin", "clave-inicial-segura")
	require.NoError(t, err)
	assert.True(t, created)

	// Con usuarios existentes la siembra es un no-op.
	created, err = uc.SeedAdmin("admin", "clave-inicial-segura")
	require.NoError(t, err)
	assert.False(t, created)

	resp, err := uc.Login(dto.LoginRequest{Username: "admin", Password: "clave-inicial-segura"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
}
