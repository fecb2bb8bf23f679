package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splice-sistemas/splice-be/internal/alerts"
	"github.com/splice-sistemas/splice-be/internal/auth"
	"github.com/splice-sistemas/splice-be/internal/config"
	"github.com/splice-sistemas/splice-be/internal/database"
	"github.com/splice-sistemas/splice-be/internal/entity"
	"github.com/splice-sistemas/splice-be/internal/models"
	"github.com/splice-sistemas/splice-be/internal/services"
	"github.com/splice-sistemas/splice-be/internal/websocket"
)

type testAPI struct {
	server *httptest.Server
	users  *services.UserService
	tokens map[string]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// In-memory sqlite lives inside a single connection.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub()
	go hub.Run()

	userService := services.NewUserService(db)
	router := NewRouter(Deps{
		Config:       &config.Config{CORSOrigins: []string{"http://localhost:5173"}},
		Auth:         auth.New("test-secret"),
		Hub:          hub,
		UserService:  userService,
		AuditService: services.NewAuditService(db, hub),
		Store:        entity.NewStore(db),
		AlertEngine:  alerts.NewEngine(db),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	api := &testAPI{server: server, users: userService, tokens: map[string]string{}}
	for _, role := range []string{models.RoleAdmin, models.RoleManager, models.RoleOperator} {
		api.tokens[role] = api.seedAccount(t, role)
	}
	return api
}

// seedAccount grants the role at the service layer; the registration endpoint
// only hands out operator accounts.
func (a *testAPI) seedAccount(t *testing.T, role string) string {
	t.Helper()
	email := role + "@splice.com.br"
	_, err := a.users.CreateUser(context.Background(), "Conta "+role, email, "senha-forte", role)
	require.NoError(t, err)
	return a.login(t, email, "senha-forte")
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":"%s","password":"%s"}`, email, password)
	resp, err := http.Post(a.server.URL+"/api/v1/auth/login", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+"/api/v1"+path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRouterAuthGating(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/modules/contracts", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/modules/contracts", api.tokens[models.RoleOperator], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterRegisterCannotSelfElevate(t *testing.T) {
	api := newTestAPI(t)

	body := `{"name":"Intruso","email":"intruso@splice.com.br","password":"senha-forte","role":"admin"}`
	resp, err := http.Post(api.server.URL+"/api/v1/auth/register", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Profile
	decode(t, resp, &created)
	assert.Equal(t, models.RoleOperator, created.Role)

	token := api.login(t, "intruso@splice.com.br", "senha-forte")
	resp = api.do(t, http.MethodGet, "/status", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouterModuleCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokens[models.RoleOperator]

	resp := api.do(t, http.MethodPost, "/modules/contracts", token,
		bytes.NewBufferString(`{"number":"CT-001","client":"Prefeitura","status":"ativo"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	decode(t, resp, &created)
	id := created["id"].(string)

	resp = api.do(t, http.MethodGet, "/modules/contracts/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got map[string]any
	decode(t, resp, &got)
	assert.Equal(t, "CT-001", got["number"])

	resp = api.do(t, http.MethodPut, "/modules/contracts/"+id, token,
		bytes.NewBufferString(`{"status":"encerrado"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	decode(t, resp, &updated)
	assert.Equal(t, "encerrado", updated["status"])

	resp = api.do(t, http.MethodGet, "/modules/contracts?q=prefeitura", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Items []map[string]any `json:"items"`
		Total int64            `json:"total"`
	}
	decode(t, resp, &list)
	assert.EqualValues(t, 1, list.Total)

	resp = api.do(t, http.MethodGet, "/modules/desconhecido", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouterDependencyDeletePolicy(t *testing.T) {
	api := newTestAPI(t)
	operator := api.tokens[models.RoleOperator]
	admin := api.tokens[models.RoleAdmin]

	resp := api.do(t, http.MethodPost, "/modules/contracts", operator,
		bytes.NewBufferString(`{"number":"CT-001","client":"Detran"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var contract map[string]any
	decode(t, resp, &contract)
	contractID := contract["id"].(string)

	resp = api.do(t, http.MethodPost, "/modules/invoices", operator,
		bytes.NewBufferString(fmt.Sprintf(`{"number":"NF-100","contract_id":"%s"}`, contractID)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Referenced records are protected from non-admins.
	resp = api.do(t, http.MethodDelete, "/modules/contracts/"+contractID, operator, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Admins may force the delete and get the warning back.
	resp = api.do(t, http.MethodDelete, "/modules/contracts/"+contractID, admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]any
	decode(t, resp, &deleted)
	assert.Equal(t, true, deleted["deleted"])
	assert.Contains(t, deleted["warning"], "notas fiscais")
}

func TestRouterStatusIsAdminOnly(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/status", api.tokens[models.RoleOperator], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/status", api.tokens[models.RoleAdmin], nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouterAlertsAndActivity(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokens[models.RoleManager]

	resp := api.do(t, http.MethodPost, "/modules/inventory", token,
		bytes.NewBufferString(`{"name":"Cone","quantity":0,"min_quantity":10}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/alerts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed struct {
		Alerts []models.SystemAlert `json:"alerts"`
		Total  int                  `json:"total"`
	}
	decode(t, resp, &feed)
	require.Equal(t, 1, feed.Total)
	assert.Equal(t, "inventory", feed.Alerts[0].Category)

	resp = api.do(t, http.MethodGet, "/alerts/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary models.AlertSummary
	decode(t, resp, &summary)
	assert.Equal(t, 1, summary.Total)

	resp = api.do(t, http.MethodGet, "/activity", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var activity struct {
		Activity []models.AuditEntry `json:"activity"`
	}
	decode(t, resp, &activity)
	require.NotEmpty(t, activity.Activity)
	assert.Equal(t, "inventory.create", activity.Activity[0].Action)
}

func TestRouterImportFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokens[models.RoleManager]

	resp := api.do(t, http.MethodGet, "/modules/vehicles/import/template", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "modelo-vehicles.xlsx")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "frota.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Placa,Modelo,Ano\nABC-1234,Sprinter,2022\n,,\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, api.server.URL+"/api/v1/modules/vehicles/import", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	importResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, importResp.StatusCode)

	var result struct {
		Success   bool `json:"success"`
		Inserted  int  `json:"inserted"`
		TotalRows int  `json:"totalRows"`
	}
	decode(t, importResp, &result)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.TotalRows)

	listResp := api.do(t, http.MethodGet, "/modules/vehicles?q=ABC-1234", token, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decode(t, listResp, &list)
	assert.EqualValues(t, 1, list.Total)
}

func TestRouterExport(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokens[models.RoleOperator]

	resp := api.do(t, http.MethodPost, "/modules/contracts", token,
		bytes.NewBufferString(`{"number":"CT-001","client":"Detran"}`))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/modules/contracts/export?format=csv", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CT-001")

	resp = api.do(t, http.MethodGet, "/modules/contracts/export?format=gif", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
