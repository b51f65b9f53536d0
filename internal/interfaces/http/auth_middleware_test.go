package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/confeitaria-api/internal/app"
	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/domain/access"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/archive"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/memory"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/confeitaria-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/confeitaria-api/pkg/jwt"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "confeitaria-test"
	testPassword  = "secret123"
)

// testServer API completa sobre repositorios en memoria.
type testServer struct {
	app     *fiber.App
	stores  *memory.Stores
	archive *archive.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := memory.NewStores()
	log := logger.Nop()
	svcs := app.NewServices(app.MemoryRepositories(st), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	}, log, nil)

	mem := archive.NewMemory()
	archiver := archive.NewArchiver(mem, "exports", log, nil)

	fiberApp := fiber.New()
	apphttp.Router(fiberApp, svcs.RouterDeps(testJWTSecret, pdf.NewReportGenerator(), archiver, nil))
	return &testServer{app: fiberApp, stores: st, archive: mem}
}

// do lanza la petición y devuelve la respuesta con el cuerpo ya leído.
func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

// login registra la cuenta, le asigna el rol y devuelve (token, identityID).
func (s *testServer) login(t *testing.T, email string, role access.Role) (string, string) {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{Email: email, Password: testPassword, FullName: "Maria"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &profile))

	if role != access.RoleUser {
		ctx := context.Background()
		p, err := s.stores.Profiles.GetByIdentityID(ctx, profile.ID)
		require.NoError(t, err)
		p.Role = string(role)
		_, err = s.stores.Profiles.Update(ctx, p)
		require.NoError(t, err)
	}

	resp, body = s.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: email, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.SignInResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token, profile.ID
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/api/session", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.do(t, http.MethodGet, "/api/session", "token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Un token bien firmado cuya sesión no existe no debe aceptarse.
func TestAuthMiddleware_SesionInexistente_Retorna401(t *testing.T) {
	s := newTestServer(t)
	_, identityID := s.login(t, "ana@doces.com", access.RoleUser)
	tok, err := pkgjwt.Generate(testJWTSecret, identityID, "sesion-inventada", testIssuer, 60)
	require.NoError(t, err)

	resp, body := s.do(t, http.MethodGet, "/api/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "SESSION_REVOKED")
}

func TestSignOut_RevocaLaSesion(t *testing.T) {
	s := newTestServer(t)
	tok, _ := s.login(t, "ana@doces.com", access.RoleUser)

	resp, _ := s.do(t, http.MethodGet, "/api/session", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/signout", tok, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/api/session", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "SESSION_REVOKED")
}

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "ana@doces.com", access.RoleUser)

	resp, body := s.do(t, http.MethodPost, "/api/auth/signin", "", dto.SignInRequest{Email: "ana@doces.com", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	s := newTestServer(t)
	s.login(t, "ana@doces.com", access.RoleUser)

	resp, body := s.do(t, http.MethodPost, "/api/auth/signup", "", dto.SignUpRequest{Email: "ana@doces.com", Password: testPassword})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")
}

func TestSession_DevuelveRolYRutas(t *testing.T) {
	s := newTestServer(t)
	tok, identityID := s.login(t, "gerente@doces.com", access.RoleManager)

	resp, body := s.do(t, http.MethodGet, "/api/session", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.SessionResponse](t, body)
	assert.Equal(t, identityID, out.IdentityID)
	assert.Equal(t, "manager", out.Role)
	assert.Equal(t, access.DefaultPermissions().Allowed(access.RoleManager), out.AllowedPaths)
	require.NotNil(t, out.Profile)
	assert.Equal(t, out.Profile.Version, out.ProfileVersion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePath
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePath_UserBloqueadoEnCaixa(t *testing.T) {
	s := newTestServer(t)
	tok, _ := s.login(t, "ana@doces.com", access.RoleUser)

	resp, body := s.do(t, http.MethodGet, "/api/cash-flow", tok, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	out := decode[dto.ForbiddenResponse](t, body)
	assert.Equal(t, "FORBIDDEN", out.Code)
	assert.Equal(t, access.PathIngredients, out.Redirect, "redirige a la primera ruta permitida de user")
}

func TestRequirePath_ManagerAccedeCaixaPeroNoAuditoria(t *testing.T) {
	s := newTestServer(t)
	tok, _ := s.login(t, "gerente@doces.com", access.RoleManager)

	resp, _ := s.do(t, http.MethodGet, "/api/cash-flow", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(t, http.MethodGet, "/api/audit", tok, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, access.PathDashboard, decode[dto.ForbiddenResponse](t, body).Redirect)
}

// El perfil se lee en cada petición: un cambio de rol aplica sin volver a iniciar sesión.
func TestRequirePath_CambioDeRolAplicaEnLaSiguientePeticion(t *testing.T) {
	s := newTestServer(t)
	tok, identityID := s.login(t, "ana@doces.com", access.RoleUser)

	resp, _ := s.do(t, http.MethodGet, "/api/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, body := s.do(t, http.MethodGet, "/api/session/profile-version", tok, nil)
	before := decode[dto.ProfileVersionResponse](t, body).Version

	ctx := context.Background()
	p, err := s.stores.Profiles.GetByIdentityID(ctx, identityID)
	require.NoError(t, err)
	p.Role = string(access.RoleManager)
	_, err = s.stores.Profiles.Update(ctx, p)
	require.NoError(t, err)

	resp, _ = s.do(t, http.MethodGet, "/api/dashboard/summary", tok, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = s.do(t, http.MethodGet, "/api/session/profile-version", tok, nil)
	assert.Greater(t, decode[dto.ProfileVersionResponse](t, body).Version, before)
}

// Sin perfil el rol se degrada a user: nunca es un error.
func TestRequirePath_SinPerfilDegradaAUser(t *testing.T) {
	s := newTestServer(t)
	tok, _ := s.login(t, "ana@doces.com", access.RoleUser)
	s.stores.Profiles.Err = assert.AnError

	resp, body := s.do(t, http.MethodGet, "/api/navigation", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.NavigationResponse](t, body)
	assert.Equal(t, "user", out.Role)
	assert.Equal(t, access.DefaultPermissions().Allowed(access.RoleUser), out.AllowedPaths)
}

func TestNavigationCheck(t *testing.T) {
	s := newTestServer(t)
	tok, _ := s.login(t, "ana@doces.com", access.RoleUser)

	cases := []struct {
		path     string
		allow    bool
		redirect string
	}{
		{access.PathClients, true, ""},
		{access.PathAudit, false, access.PathIngredients},
		{"/inexistente", false, access.PathIngredients},
	}
	for _, tc := range cases {
		resp, body := s.do(t, http.MethodGet, "/api/navigation/check?path="+tc.path, tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		out := decode[dto.NavigationCheckResponse](t, body)
		assert.Equal(t, tc.allow, out.Allow, tc.path)
		assert.Equal(t, tc.redirect, out.Redirect, tc.path)
	}

	resp, _ := s.do(t, http.MethodGet, "/api/navigation/check", tok, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad de generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "id-1", "sess-1", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
