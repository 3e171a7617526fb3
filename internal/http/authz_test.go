package handlers_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buycycle/internal/auth"
)

type route struct {
	method, path string
}

var (
	sellerRoutes = []route{
		{http.MethodPost, "/products"},
		{http.MethodGet, "/products"},
		{http.MethodDelete, "/products?id=x"},
		{http.MethodPost, "/advertise"},
		{http.MethodDelete, "/advertise?id=x"},
		{http.MethodGet, "/bookings/seller"},
	}
	authedRoutes = []route{
		{http.MethodPost, "/bookings"},
		{http.MethodGet, "/bookings"},
		{http.MethodGet, "/wishlist"},
		{http.MethodPut, "/wishlist?id=x"},
		{http.MethodDelete, "/wishlist?id=x"},
		{http.MethodPost, "/report"},
	}
	adminRoutes = []route{
		{http.MethodGet, "/report"},
		{http.MethodDelete, "/report?id=x"},
		{http.MethodGet, "/admin/users"},
		{http.MethodDelete, "/admin/users/x"},
	}
)

func gatedRoutes() []route {
	out := append([]route{}, sellerRoutes...)
	out = append(out, authedRoutes...)
	return append(out, adminRoutes...)
}

func expiredToken(t *testing.T, email string) string {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

// Missing, invalid, expired and mismatched credentials are indistinguishable.
func TestGatedRoutes_RejectBadCredentials(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "bob@x.com", "seller")

	forged := func() string {
		tok, err := auth.NewIssuer("wrong-secret", time.Hour).Mint("root@x.com")
		require.NoError(t, err)
		return tok
	}()

	creds := map[string]string{
		"missing":  "",
		"garbage":  "not.a.token",
		"forged":   forged,
		"expired":  expiredToken(t, "root@x.com"),
		"mismatch": tokenFor(t, "bob@x.com"),
	}

	for _, rt := range gatedRoutes() {
		for name, bearer := range creds {
			t.Run(rt.method+" "+rt.path+" "+name, func(t *testing.T) {
				status, body := ta.do(t, rt.method, withEmail(rt.path, "root@x.com"), bearer, nil)
				assert.Equal(t, http.StatusUnauthorized, status)
				assert.Equal(t, "Unauthorized access", string(body))
			})
		}
	}
}

func TestSellerRoutes_ForbidNonSellers(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "alice@x.com", "buyer")

	for _, email := range []string{"alice@x.com", "ghost@x.com", "root@x.com"} {
		for _, rt := range sellerRoutes {
			status, body := ta.as(t, email, rt.method, rt.path, nil)
			assert.Equal(t, http.StatusForbidden, status, "%s %s as %s", rt.method, rt.path, email)
			assert.Equal(t, "Forbidden", string(body))
		}
	}
}

func TestAdminRoutes_ForbidNonAdmins(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "alice@x.com", "buyer")
	ta.register(t, "bob@x.com", "seller")

	for _, email := range []string{"alice@x.com", "bob@x.com", "ghost@x.com"} {
		for _, rt := range adminRoutes {
			status, _ := ta.as(t, email, rt.method, rt.path, nil)
			assert.Equal(t, http.StatusForbidden, status, "%s %s as %s", rt.method, rt.path, email)
		}
	}
}

func TestAuthenticatedRoutes_NeedNoRole(t *testing.T) {
	ta := newTestApp(t)

	// an unregistered but authenticated caller only needs a valid credential
	status, body := ta.as(t, "ghost@x.com", http.MethodGet, "/wishlist", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = ta.as(t, "ghost@x.com", http.MethodGet, "/bookings", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPublicRoutes(t *testing.T) {
	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "BuyCycle server is running", string(body))

	status, body = ta.do(t, http.MethodGet, "/categories", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 3)

	status, _ = ta.do(t, http.MethodGet, "/advertise", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestTokenEndpoint(t *testing.T) {
	ta := newTestApp(t)

	status, body := ta.do(t, http.MethodGet, "/jwt-token?email=alice@x.com", "", nil)
	require.Equal(t, http.StatusOK, status)
	res := decode[map[string]string](t, body)

	claims, err := auth.NewVerifier(testSecret).Verify("Bearer "+res["token"], "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Email)

	status, _ = ta.do(t, http.MethodGet, "/jwt-token", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

type logLine struct {
	Level     string         `json:"level"`
	Action    string         `json:"action"`
	Principal string         `json:"principal"`
	Status    int            `json:"status"`
	Fields    map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logLine {
	t.Helper()
	buf := &lockedBuf{}
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var out []logLine
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logLine
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			out = append(out, e)
		}
	}
	return out
}

func findAction(lines []logLine, action string) *logLine {
	for i := range lines {
		if lines[i].Action == action {
			return &lines[i]
		}
	}
	return nil
}

func TestAccessDeniedLogs(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "alice@x.com", "buyer")

	lines := captureLogs(t, func() {
		ta.do(t, http.MethodGet, withEmail("/products", "alice@x.com"), "", nil)
	})
	e := findAction(lines, "access.denied.unauthenticated")
	require.NotNil(t, e, "expected access.denied.unauthenticated log")
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, http.StatusUnauthorized, e.Status)
	assert.Equal(t, "seller", e.Fields["class"])

	lines = captureLogs(t, func() {
		ta.as(t, "alice@x.com", http.MethodGet, "/products", nil)
	})
	e = findAction(lines, "access.denied.role")
	require.NotNil(t, e, "expected access.denied.role log")
	assert.Equal(t, http.StatusForbidden, e.Status)
	assert.Equal(t, "alice@x.com", e.Fields["email"])
}

func TestAuditLogsCarryPrincipal(t *testing.T) {
	ta := newTestApp(t)
	ta.register(t, "bob@x.com", "seller")

	lines := captureLogs(t, func() {
		ta.createProduct(t, "bob@x.com", "Trek")
	})
	e := findAction(lines, "products.create")
	require.NotNil(t, e)
	assert.Equal(t, "audit", e.Level)
	assert.Equal(t, "bob@x.com", e.Principal)
}
