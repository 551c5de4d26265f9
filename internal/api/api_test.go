package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"geo_ads/internal/auth"
	"geo_ads/internal/db"
	"geo_ads/internal/domain"
	"geo_ads/internal/metrics"
	"geo_ads/internal/middleware"
	"geo_ads/internal/service"
)

const testKey = "0123456789012345678901234567890123456789"

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	svc     *service.Service
	clients int
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := db.NewTestDB(t)
	svc := service.New(gdb, bcrypt.MinCost)

	stored, err := auth.HashPassword("toor", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&domain.User{Username: "root", Password: stored, APIKey: testKey, IsAdmin: true}).Error)
	stored, err = auth.HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&domain.User{Username: "alice", Password: stored, APIKey: strings.Repeat("a", 40)}).Error)

	r, err := NewRouter(Deps{
		Service:  svc,
		Auth:     auth.New(gdb, nil, time.Minute),
		Metrics:  metrics.New(),
		Sessions: middleware.SessionOptions{},
	})
	require.NoError(t, err)
	return &testEnv{router: r, db: gdb, svc: svc}
}

func (e *testEnv) seedAd(t *testing.T, lat, lon float64) {
	t.Helper()
	e.clients++
	client := domain.Client{Name: fmt.Sprintf("client-%d", e.clients), Type: domain.ClientTypePaid}
	require.NoError(t, e.db.Create(&client).Error)
	require.NoError(t, e.db.Create(&domain.Ad{Name: "ad", ClientID: client.ID, Category: "food", Latitude: lat, Longitude: lon}).Error)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func locationRequest(body, contentType, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/get_ads_location", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if key != "" {
		req.Header.Set(auth.HeaderName, "Bearer "+key)
	}
	return req
}

func adminForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("root", "toor")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetAdsLocationAuth(t *testing.T) {
	env := setupRouter(t)
	form := "latitude=10&longitude=10"

	cases := []struct {
		name string
		key  string
		want string
	}{
		{"missing key", "", "Invalid authentication"},
		{"wrong key", strings.Repeat("z", 40), "Invalid authentication"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(locationRequest(form, "application/x-www-form-urlencoded", tc.key))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
		})
	}

	t.Run("valid key", func(t *testing.T) {
		w := env.do(locationRequest(form, "application/x-www-form-urlencoded", testKey))
		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.NotContains(t, body, "error")
		assert.Equal(t, []any{}, body["ads"])
	})
}

func TestGetAdsLocationInputs(t *testing.T) {
	env := setupRouter(t)
	env.seedAd(t, 48.8566, 2.3522)
	env.seedAd(t, 48.8570, 2.3522) // ~44 m north
	env.seedAd(t, 40.0, -3.0)

	cases := []struct {
		name        string
		body        string
		contentType string
		wantAds     int
		wantErr     string
	}{
		{"form", "latitude=48.8566&longitude=2.3522", "application/x-www-form-urlencoded", 2, ""},
		{"json numbers", `{"latitude": 48.8566, "longitude": 2.3522}`, "application/json", 2, ""},
		{"json strings", `{"latitude": "48.8566", "longitude": "2.3522"}`, "application/json", 2, ""},
		{"far away", "latitude=0&longitude=0", "application/x-www-form-urlencoded", 0, ""},
		{"not a number", "latitude=abc&longitude=2.3522", "application/x-www-form-urlencoded", 0, "Invalid coordinates"},
		{"NaN", "latitude=NaN&longitude=2.3522", "application/x-www-form-urlencoded", 0, "Invalid coordinates"},
		{"missing longitude", `{"latitude": 12.34}`, "application/json", 0, "Invalid coordinates"},
		{"malformed json", `{"latitude": `, "application/json", 0, "Invalid coordinates"},
		{"empty body", "", "", 0, "Invalid coordinates"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(locationRequest(tc.body, tc.contentType, testKey))
			assert.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, body["error"])
				return
			}
			assert.Len(t, body["ads"], tc.wantAds)
		})
	}
}

func TestGetAdsLocationReturnsPairsAndCountsViews(t *testing.T) {
	env := setupRouter(t)
	env.seedAd(t, 48.8566, 2.3522)

	for i := 0; i < 3; i++ {
		w := env.do(locationRequest("latitude=48.8566&longitude=2.3522", "application/x-www-form-urlencoded", testKey))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ads": [[48.8566, 2.3522]]}`, w.Body.String())
	}

	var ad domain.Ad
	require.NoError(t, env.db.First(&ad).Error)
	assert.Equal(t, int64(3), ad.Views)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := setupRouter(t)
	paths := []string{"/", "/new_ad", "/new_client", "/new_user", "/list_ads", "/list_clients", "/list_users"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.SetBasicAuth("alice", "pw1")
			w := env.do(req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

			req = httptest.NewRequest(http.MethodGet, path, nil)
			req.SetBasicAuth("root", "toor")
			assert.Equal(t, http.StatusOK, env.do(req).Code)
		})
	}
}

func TestCreateClient(t *testing.T) {
	env := setupRouter(t)

	w := env.do(adminForm("/new_client", url.Values{"client_name": {"acme"}, "client_type": {"trial"}}))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cases := []struct {
		name string
		form url.Values
		code int
		want string
	}{
		{"duplicate", url.Values{"client_name": {"acme"}, "client_type": {"paid"}}, http.StatusConflict, "Client name already in use"},
		{"invalid type", url.Values{"client_name": {"other"}, "client_type": {"gold"}}, http.StatusBadRequest, "Invalid type"},
		{"missing name", url.Values{"client_type": {"paid"}}, http.StatusBadRequest, "Invalid client name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(adminForm("/new_client", tc.form))
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
		})
	}

	clients, err := env.svc.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, domain.ClientTypeTrial, clients[0].Type)
}

func TestCreateUser(t *testing.T) {
	env := setupRouter(t)

	w := env.do(adminForm("/new_user", url.Values{"username": {"bob"}, "password": {"secret"}, "is_admin": {"on"}}))
	assert.Equal(t, http.StatusFound, w.Code)

	var bob domain.User
	require.NoError(t, env.db.Where("username = ?", "bob").First(&bob).Error)
	assert.True(t, bob.IsAdmin)
	assert.Len(t, bob.APIKey, 40)

	cases := []struct {
		name string
		form url.Values
		code int
		want string
	}{
		{"empty password", url.Values{"username": {"carol"}, "password": {""}}, http.StatusBadRequest, "Invalid password"},
		{"missing username", url.Values{"password": {"x"}}, http.StatusBadRequest, "Invalid username"},
		{"duplicate", url.Values{"username": {"bob"}, "password": {"other"}}, http.StatusConflict, "Username already in use"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(adminForm("/new_user", tc.form))
			assert.Equal(t, tc.code, w.Code)
			assert.Equal(t, tc.want, decode(t, w)["error"])
		})
	}
}

func TestListUsersHidesPasswords(t *testing.T) {
	env := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/list_users", nil)
	req.SetBasicAuth("root", "toor")
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), testKey)
}

func TestCreateAd(t *testing.T) {
	env := setupRouter(t)
	_, err := env.svc.CreateClient(context.Background(), "acme", domain.ClientTypePaid, 0)
	require.NoError(t, err)

	form := url.Values{
		"ad_name":     {"summer"},
		"client_name": {"acme"},
		"ad_category": {"food"},
		"ad_type":     {"banner"},
		"latitude":    {"48.8566"},
		"longitude":   {"2.3522"},
	}
	w := env.do(adminForm("/new_ad", form))
	assert.Equal(t, http.StatusFound, w.Code)

	ads, err := env.svc.ListAds(context.Background())
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Zero(t, ads[0].Height)
	assert.Zero(t, ads[0].Views)

	form.Set("client_name", "ghost")
	w = env.do(adminForm("/new_ad", form))
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Client not found", body["error"])
	assert.Len(t, body["clients"], 1)

	form.Set("client_name", "acme")
	form.Set("latitude", "north")
	w = env.do(adminForm("/new_ad", form))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid coordinates", decode(t, w)["error"])
}

func TestCreateAdWithData(t *testing.T) {
	env := setupRouter(t)
	_, err := env.svc.CreateClient(context.Background(), "acme", domain.ClientTypeDemo, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"ad_name": "with data", "client_name": "acme", "ad_category": "tech",
		"latitude": "1", "longitude": "2", "ad_height": "3.5",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("ad_data", "payload.bin")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x00, 0x01, 0x02})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/new_ad", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth("root", "toor")
	w := env.do(req)
	require.Equal(t, http.StatusFound, w.Code)

	var ad domain.Ad
	require.NoError(t, env.db.First(&ad).Error)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, ad.Data)
	assert.Equal(t, 3.5, ad.Height)
}

func TestHealthAndMetrics(t *testing.T) {
	env := setupRouter(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	env.do(locationRequest("latitude=1&longitude=1", "application/x-www-form-urlencoded", testKey))
	w = env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `geoads_nearby_queries_total{result="ok"} 1`)
}

func TestParseCoordinate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.34", 12.34, true},
		{" -0.5 ", -0.5, true},
		{"1e2", 100, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCoordinate(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, domain.ErrInvalidInput, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestCreateAdListsClientsOnlyOnFailure(t *testing.T) {
	env := setupRouter(t)
	_, err := env.svc.CreateClient(context.Background(), "acme", domain.ClientTypePaid, 0)
	require.NoError(t, err)

	lists := 0
	require.NoError(t, env.db.Callback().Query().After("gorm:query").Register("test:count_client_lists", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*[]domain.Client); ok {
			lists++
		}
	}))

	form := url.Values{"ad_name": {"a"}, "client_name": {"acme"}, "latitude": {"1"}, "longitude": {"2"}}
	w := env.do(adminForm("/new_ad", form))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Zero(t, lists)

	form.Set("longitude", "east")
	w = env.do(adminForm("/new_ad", form))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, lists)
}

func TestGetAdsLocationBodyLimit(t *testing.T) {
	env := setupRouter(t)
	env.seedAd(t, 1, 1)

	body := `{"latitude": 1, "longitude": 1, "pad": "` + strings.Repeat("x", maxLocationBody) + `"}`
	w := env.do(locationRequest(body, "application/json", testKey))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Invalid coordinates", decode(t, w)["error"])

	w = env.do(locationRequest(`{"latitude": 1, "longitude": 1}`, "application/json", testKey))
	assert.Len(t, decode(t, w)["ads"], 1)
}
