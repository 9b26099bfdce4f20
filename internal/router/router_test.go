package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/electramart-api/internal/config"
	"github.com/iliyamo/electramart-api/internal/handler"
	"github.com/iliyamo/electramart-api/internal/mail"
	"github.com/iliyamo/electramart-api/internal/repository"
	"github.com/iliyamo/electramart-api/internal/repository/memstore"
	"github.com/iliyamo/electramart-api/internal/service"
	"github.com/iliyamo/electramart-api/internal/utils"
)

const secret = "router-secret"

type outbox struct{ msgs []mail.Message }

func (o *outbox) Send(_ context.Context, m mail.Message) error {
	o.msgs = append(o.msgs, m)
	return nil
}

type app struct {
	t     *testing.T
	h     http.Handler
	store *repository.Store
	mail  *outbox
}

func newApp(t *testing.T, mutate ...func(*config.Config)) *app {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Config{
		JWTSecret:    secret,
		AccessTTLMin: 60,
		BcryptCost:   bcrypt.MinCost,
		ResetTTLMin:  15,
		CORSOrigins:  []string{"*"},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	st := memstore.New()
	ob := &outbox{}
	e := New(Deps{
		Cfg:      cfg,
		Log:      log,
		Registry: prometheus.NewRegistry(),
		Health:   map[string]handler.Pinger{"store": func(context.Context) error { return nil }},
		Auth:     service.NewAuthService(cfg, st, ob, log),
		Catalog:  service.NewCatalogService(st, log),
		Support:  service.NewSupportService(st, nil, log),
		Profile:  service.NewProfileService(st, cfg.BcryptCost, log),
	})
	return &app{t: t, h: e, store: st, mail: ob}
}

func (a *app) call(method, path, token string, body interface{}) (int, map[string]interface{}, string) {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = strings.NewReader(string(bs))
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	var m map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &m)
	return rec.Code, m, rec.Body.String()
}

func registerBody(username, email string) map[string]string {
	return map[string]string{
		"firstname": "Ada", "lastname": "Lovelace", "username": username, "email": email,
		"password": "s3cret!", "confirmPassword": "s3cret!", "usertype": "buyer",
		"pincode": "560001", "phone": "999", "address": "1 Analytical St",
	}
}

func (a *app) login(username, email, password string) string {
	a.t.Helper()
	code, m, raw := a.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(a.t, http.StatusOK, code, raw)
	require.Equal(a.t, true, m["status"], raw)
	return m["accessToken"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newApp(t)

	code, m, raw := a.call(http.MethodPost, "/api/auth/register", "", registerBody("adalove", "ada@example.com"))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, m["status"])
	assert.NotContains(t, raw, "password")
	assert.NotContains(t, raw, "s3cret!")

	_, m, _ = a.call(http.MethodPost, "/api/auth/register", "", registerBody("adalove", "other@example.com"))
	assert.Equal(t, false, m["status"])
	assert.Equal(t, "Username already exists", m["msg"])

	_, m, _ = a.call(http.MethodPost, "/api/auth/register", "", registerBody("another", "ada@example.com"))
	assert.Equal(t, "Email already exists", m["msg"])

	users, _ := a.store.Users.List(context.Background())
	assert.Len(t, users, 1)

	tok := a.login("adalove", "ada@example.com", "s3cret!")
	claims, err := utils.ParseAccessToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "buyer", claims.Usertype)

	for _, tc := range []struct{ user, email, pass, msg string }{
		{"nobody", "ada@example.com", "s3cret!", "Invalid username"},
		{"adalove", "x@example.com", "s3cret!", "Invalid email"},
		{"adalove", "ada@example.com", "wrong", "Invalid password"},
	} {
		code, m, _ := a.call(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": tc.user, "email": tc.email, "password": tc.pass,
		})
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, m["status"])
		assert.Equal(t, tc.msg, m["msg"])
		assert.Nil(t, m["accessToken"])
	}
}

func TestRegisterStoresClientData(t *testing.T) {
	a := newApp(t)
	body := map[string]interface{}{
		"username": "adalove", "email": "ada@example.com", "password": "s3cret!",
		"status": "active", "cart": []map[string]interface{}{{"id": "p1", "qty": 2}},
		"products": []string{"p9"},
	}
	_, m, raw := a.call(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, true, m["status"], raw)
	user := m["user"].(map[string]interface{})
	assert.Equal(t, "active", user["status"])
	assert.Equal(t, []interface{}{"p9"}, user["products"])

	u, err := a.store.Users.GetByUsername(context.Background(), "adalove")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","qty":2}]`, string(u.Cart))
	assert.Empty(t, u.Transaction)
}

func TestRegisterValidation(t *testing.T) {
	a := newApp(t)
	body := registerBody("adalove", "not-an-email")
	code, m, _ := a.call(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "email must be a valid email", m["msg"])

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPasswordResetEndpoints(t *testing.T) {
	a := newApp(t)
	a.call(http.MethodPost, "/api/auth/register", "", registerBody("adalove", "ada@example.com"))

	code, m, _ := a.call(http.MethodPost, "/api/auth/forgotPassword", "", map[string]string{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, m["status"])
	assert.Empty(t, a.mail.msgs)

	_, m, _ = a.call(http.MethodPost, "/api/auth/forgotPassword", "", map[string]string{"email": "ada@example.com"})
	assert.Equal(t, true, m["status"])
	require.Len(t, a.mail.msgs, 1)
	body := a.mail.msgs[0].Body
	i := strings.Index(body, "code is ")
	require.GreaterOrEqual(t, i, 0)
	resetCode := body[i+len("code is ") : i+len("code is ")+12]

	_, m, _ = a.call(http.MethodPost, "/api/auth/newPassword", "", map[string]string{
		"email": "ada@example.com", "password": "n3w", "code": "000000000000",
	})
	assert.Equal(t, false, m["status"])

	code, _, _ = a.call(http.MethodPost, "/api/auth/newPassword", "", map[string]string{
		"email": "ada@example.com", "password": "n3w",
	})
	assert.Equal(t, http.StatusBadRequest, code, "code is required")

	_, m, raw := a.call(http.MethodPost, "/api/auth/newPassword", "", map[string]string{
		"email": "ada@example.com", "password": "n3w", "code": resetCode,
	})
	assert.Equal(t, true, m["status"], raw)
	a.login("adalove", "ada@example.com", "n3w")
}

func TestAdminLogin(t *testing.T) {
	a := newApp(t)
	h, err := utils.HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, a.store.Admins.Create(context.Background(), h))

	_, m, _ := a.call(http.MethodPost, "/api/auth/adminLogin", "", map[string]string{"password": "admin-pass"})
	assert.Equal(t, map[string]interface{}{"status": true}, m)

	_, m, _ = a.call(http.MethodPost, "/api/auth/adminLogin", "", map[string]string{"password": "guess"})
	assert.Equal(t, false, m["status"])
	assert.Equal(t, "Incorrect Admin Password", m["msg"])
}

func TestProductsFlow(t *testing.T) {
	a := newApp(t)
	a.call(http.MethodPost, "/api/auth/register", "", registerBody("adalove", "ada@example.com"))
	tok := a.login("adalove", "ada@example.com", "s3cret!")

	product := map[string]string{"productname": "Aspirin", "img": "a.png", "type": "medicine", "price": "10"}
	code, _, _ := a.call(http.MethodPost, "/api/products/newProduct", "", product)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, m, _ := a.call(http.MethodPost, "/api/products/newProduct", tok, product)
	assert.Equal(t, true, m["status"])
	_, m, _ = a.call(http.MethodPost, "/api/products/newProduct", tok, product)
	assert.Equal(t, false, m["status"])

	_, _, raw := a.call(http.MethodGet, "/api/products/medicines", "", nil)
	var meds []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &meds))
	require.Len(t, meds, 1)
	id := meds[0]["id"].(string)
	assert.Len(t, id, 36, "store ids are passed through")

	_, _, raw = a.call(http.MethodGet, "/api/products/healthcare", "", nil)
	assert.JSONEq(t, `[]`, raw)

	_, m, _ = a.call(http.MethodPost, "/api/products/"+id, "", nil)
	assert.Equal(t, "Aspirin", m["productname"])
	assert.Equal(t, "active", m["status"])

	_, _, raw = a.call(http.MethodPost, "/api/products/unknown", "", nil)
	assert.Equal(t, "null", strings.TrimSpace(raw))
}

func TestProductWritersRestricted(t *testing.T) {
	a := newApp(t, func(c *config.Config) { c.ProductWriters = []string{"seller"} })
	buyer, _ := utils.NewAccessToken(secret, "id-b", "b", "b@example.com", "buyer", 60)
	seller, _ := utils.NewAccessToken(secret, "id-s", "s", "s@example.com", "seller", 60)

	code, _, _ := a.call(http.MethodPost, "/api/products/newProduct", buyer.Token, map[string]string{"productname": "X"})
	assert.Equal(t, http.StatusForbidden, code)
	_, m, _ := a.call(http.MethodPost, "/api/products/newProduct", seller.Token, map[string]string{"productname": "X"})
	assert.Equal(t, true, m["status"])
}

func TestServicesFlow(t *testing.T) {
	a := newApp(t)
	tok, _ := utils.NewAccessToken(secret, "id-adalove", "adalove", "ada@example.com", "buyer", 60)

	code, m, _ := a.call(http.MethodPost, "/api/services/query", "", map[string]string{"ques": "?"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Unauthorized Access", m["message"])

	code, _, _ = a.call(http.MethodPost, "/api/services/query", "Bearer", map[string]string{"ques": "?"})
	assert.Equal(t, http.StatusForbidden, code, "a token of 'Bearer' is a bad token")

	_, m, _ = a.call(http.MethodPost, "/api/services/query", tok.Token, map[string]string{"email": "ada@example.com", "ques": "When?"})
	assert.Equal(t, true, m["status"])
	_, _, raw := a.call(http.MethodGet, "/api/services/allqueries", "", nil)
	assert.Contains(t, raw, `"username":"adalove"`)

	code, _, _ = a.call(http.MethodPost, "/api/services/transaction", tok.Token, map[string]interface{}{
		"accountholder": "Ada", "accountnumber": "1234567890", "amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	_, m, _ = a.call(http.MethodPost, "/api/services/transaction", tok.Token, map[string]interface{}{
		"accountholder": "Ada", "accountnumber": "1234567890", "ifsc": "SBIN0001", "amount": 42.5,
	})
	assert.Equal(t, true, m["status"])
	_, _, raw = a.call(http.MethodGet, "/api/services/alltransactions", "", nil)
	assert.Contains(t, raw, `"amount":42.5`)
}

func TestUsersFlow(t *testing.T) {
	a := newApp(t)
	a.call(http.MethodPost, "/api/auth/register", "", registerBody("adalove", "ada@example.com"))
	a.call(http.MethodPost, "/api/auth/register", "", registerBody("gracehop", "grace@example.com"))
	tok := a.login("adalove", "ada@example.com", "s3cret!")

	_, _, raw := a.call(http.MethodGet, "/api/users", "", nil)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &users))
	require.Len(t, users, 2)
	assert.NotContains(t, raw, "password")

	_, m, _ := a.call(http.MethodGet, "/api/users/"+users[0]["id"].(string), "", nil)
	assert.Equal(t, users[0]["username"], m["username"])

	code, _, _ := a.call(http.MethodPost, "/api/users/updateprofile", "", map[string]string{"username": "countess"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = a.call(http.MethodPost, "/api/users/updateprofile", tok, map[string]string{"actualName": "gracehop", "username": "hijack"})
	assert.Equal(t, http.StatusForbidden, code)

	code, m, _ = a.call(http.MethodPost, "/api/users/updateprofile", tok, map[string]string{"username": "ada"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Username must be at least 5 characters long.", m["msg"])

	_, m, _ = a.call(http.MethodPost, "/api/users/updateprofile", tok, map[string]string{"email": "grace@example.com"})
	assert.Equal(t, "Email already exists", m["msg"])

	_, m, _ = a.call(http.MethodPost, "/api/users/updateprofile", tok, map[string]string{"actualName": "adalove", "phone": "123"})
	assert.Equal(t, true, m["status"])
	assert.Equal(t, "Profile updated successfully.", m["msg"])

	_, m, _ = a.call(http.MethodPost, "/api/users/profilepic", tok, map[string]string{"url": "https://cdn.example.com/a.png"})
	assert.Equal(t, true, m["status"])

	_, m, _ = a.call(http.MethodPost, "/api/users/profiledetails", tok, map[string]string{"email": "ada@example.com"})
	user := m["user"].(map[string]interface{})
	assert.Equal(t, "123", user["phone"])
	assert.Equal(t, "https://cdn.example.com/a.png", user["profilePic"])

	_, m, _ = a.call(http.MethodPost, "/api/users/profiledetails", tok, map[string]string{"email": "nobody@example.com"})
	assert.Contains(t, m, "user")
	assert.Nil(t, m["user"])
}

func TestTokenFollowsAccountAcrossRename(t *testing.T) {
	a := newApp(t)
	a.call(http.MethodPost, "/api/auth/register", "", registerBody("alice1", "alice@example.com"))
	aliceTok := a.login("alice1", "alice@example.com", "s3cret!")

	_, m, _ := a.call(http.MethodPost, "/api/users/updateprofile", aliceTok, map[string]string{"username": "alice2"})
	require.Equal(t, true, m["status"])

	_, m, raw := a.call(http.MethodPost, "/api/auth/register", "", registerBody("alice1", "bob@example.com"))
	require.Equal(t, true, m["status"], raw)

	code, m, _ := a.call(http.MethodPost, "/api/users/updateprofile", aliceTok, map[string]string{"password": "alice-new-pw"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, m["status"], "the renamed account keeps its session")

	code, _, _ = a.call(http.MethodPost, "/api/users/updateprofile", aliceTok, map[string]string{"actualName": "alice1", "phone": "1"})
	assert.Equal(t, http.StatusForbidden, code, "the old username now names another account")
	code, _, _ = a.call(http.MethodPost, "/api/users/profilepic", aliceTok, map[string]string{"url": "https://cdn.example.com/x.png", "username": "alice1"})
	assert.Equal(t, http.StatusForbidden, code)

	a.login("alice1", "bob@example.com", "s3cret!")
	a.login("alice2", "alice@example.com", "alice-new-pw")
	_, m, _ = a.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice1", "email": "bob@example.com", "password": "alice-new-pw",
	})
	assert.Equal(t, false, m["status"])

	_, m, _ = a.call(http.MethodPost, "/api/users/profiledetails", aliceTok, map[string]string{"email": "bob@example.com"})
	bob := m["user"].(map[string]interface{})
	assert.Empty(t, bob["profilePic"])
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)
	code, m, _ := a.call(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, m["status"])

	code, _, raw := a.call(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, raw, "electramart_http_requests_total")
}

func TestHealthReportsFailingDependency(t *testing.T) {
	e := New(Deps{
		Cfg:    config.Config{JWTSecret: secret},
		Log:    logrus.New(),
		Health: map[string]handler.Pinger{"store": func(context.Context) error { return errors.New("down") }},
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"down"`)
}
