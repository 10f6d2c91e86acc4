package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/christoferrrnewtech/dentpal-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	in := pkgjwt.Identity{UserID: "u-1", SellerID: "s-1", Role: "seller", SubAccount: true}
	tok, err := pkgjwt.Generate(testSecret, in, "dentpal-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	out, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, "dentpal-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, "dentpal-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "u-1"}, "x", 60)
	assert.Error(t, err)
}
