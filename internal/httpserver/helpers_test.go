package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_api/internal/events"
	"github.com/Skotchmaster/shop_api/internal/models"
	"github.com/Skotchmaster/shop_api/internal/repo"
	"github.com/Skotchmaster/shop_api/internal/service"
	pkgdb "github.com/Skotchmaster/shop_api/pkg/db"
	"github.com/Skotchmaster/shop_api/pkg/tokens"
)

var testSecret = []byte("test-secret")

type testServer struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), pkgdb.Options{Driver: pkgdb.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, pkgdb.EnsureTables(db, &models.Product{}, &models.User{}))
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := repo.New(db)
	e := echo.New()
	Register(e, &Deps{
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: events.Nop{}}},
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testSecret, Events: events.Nop{}}},
		JWTSecret:      testSecret,
		DB:             r,
	})

	return &testServer{e: e, repo: r}
}

var errStoreDown = errors.New("store down")

type brokenStore struct{}

func (brokenStore) ListProducts(context.Context) ([]models.Product, error) { return nil, errStoreDown }
func (brokenStore) GetProduct(context.Context, uint) (*models.Product, error) {
	return nil, errStoreDown
}
func (brokenStore) CreateProduct(context.Context, *models.Product) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) UpdateProduct(context.Context, uint, *models.Product) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) DeleteProduct(context.Context, uint) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) CreateUser(context.Context, *models.User) (repo.Result, error) {
	return repo.Result{}, errStoreDown
}
func (brokenStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errStoreDown
}
func (brokenStore) Ping(context.Context) error { return errStoreDown }

func newBrokenServer(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	Register(e, &Deps{
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: brokenStore{}}},
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: brokenStore{}, JWTSecret: testSecret}},
		JWTSecret:      testSecret,
		DB:             brokenStore{},
	})
	return e
}

func doJSONRequest(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func validToken(t *testing.T) string {
	t.Helper()

	tok, err := tokens.Sign(tokens.Claims{UserID: 1, Name: "Tester", Email: "t@example.com", Role: models.RoleUser}, testSecret, 0)
	require.NoError(t, err)
	return tok
}
