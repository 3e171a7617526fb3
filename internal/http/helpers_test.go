package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"buycycle/internal/auth"
	"buycycle/internal/config"
	"buycycle/internal/http/handlers"
	"buycycle/internal/repos"
)

const testSecret = "test-secret"

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
}

// newTestApp wires the real routes over an in-memory store. root@x.com is
// seeded as admin.
func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := &config.Config{
		DBDSN:       ":memory:",
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
		AdminEmails: []string{"root@x.com"},
	}
	for _, m := range mutate {
		m(cfg)
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repos.SeedAdmins(context.Background(), db, cfg.AdminEmails))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Use(recover.New())
	handlers.Mount(app, handlers.NewDeps(db, cfg))
	return &testApp{app: app, db: db}
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.NewIssuer(testSecret, time.Hour).Mint(email)
	require.NoError(t, err)
	return tok
}

// do sends body as JSON. bearer is sent as-is after "Bearer " when non-empty.
func (ta *testApp) do(t *testing.T, method, path, bearer string, body any) (int, []byte) {
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
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// as calls path on behalf of email, with a matching credential.
func (ta *testApp) as(t *testing.T, email, method, path string, body any) (int, []byte) {
	t.Helper()
	return ta.do(t, method, withEmail(path, email), tokenFor(t, email), body)
}

func withEmail(path, email string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "email=" + email
}

func (ta *testApp) register(t *testing.T, email, role string) {
	t.Helper()
	status, body := ta.do(t, http.MethodPost, "/users", "", map[string]string{"email": email, "name": "N", "role": role})
	require.Equal(t, http.StatusOK, status, string(body))
}

func (ta *testApp) createProduct(t *testing.T, seller, title string) string {
	t.Helper()
	status, body := ta.as(t, seller, http.MethodPost, "/products", map[string]any{
		"categoryId": "mountain-bikes", "title": title, "image": title + ".png",
		"price": 120, "originalPrice": 300, "location": "Chattogram", "condition": "fair",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var res struct {
		InsertedID string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotEmpty(t, res.InsertedID)
	return res.InsertedID
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}
