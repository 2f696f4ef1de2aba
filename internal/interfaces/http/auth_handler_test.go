package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Un username inexistente y una contraseña errada deben ser indistinguibles
// desde afuera: mismo status y mismo cuerpo, para no permitir enumerar
// cuentas por el login.
func TestLoginAPI_CredencialesInvalidas_Indistinguibles(t *testing.T) {
	app, _ := buildAPI(t)

	unknownUser := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "no-existe",
		"password": "lo-que-sea",
	})
	wrongPassword := doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "admin",
		"password": "clave-errada",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)

	bodyA, err := io.ReadAll(unknownUser.Body)
	require.NoError(t, err)
	unknownUser.Body.Close()
	bodyB, err := io.ReadAll(wrongPassword.Body)
	require.NoError(t, err)
	wrongPassword.Body.Close()
	assert.Equal(t, string(bodyA), string(bodyB))
}
