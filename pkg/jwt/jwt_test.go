package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/confeitaria-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIdentity = "00000000-0000-0000-0000-000000000001"
	testSession  = "00000000-0000-0000-0000-0000000000aa"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, testSession, "confeitaria-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	identityID, sessionID, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, identityID)
	assert.Equal(t, testSession, sessionID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, testSession, "confeitaria-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, testSession, "confeitaria-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testIdentity, testSession, "x", 60)
	assert.Error(t, err)
}
