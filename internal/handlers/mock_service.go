package handlers

import (
	"context"
	"net/http"

	"device_inventory/internal/models"
	"device_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(ctx context.Context, token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockLists struct {
	view    service.View
	step    service.DialogStep
	err     error
	updates chan service.View

	lastOperator int
	lastSelector models.ChartSelector
	lastID       string
	lastQuery    string
	lastEvent    service.DialogEvent
	closeCalls   int
	cancelCalls  int
}

func (m *mockLists) Open(ctx context.Context, operatorID int, sel models.ChartSelector) (service.View, error) {
	m.lastOperator = operatorID
	m.lastSelector = sel
	return m.view, m.err
}
func (m *mockLists) View(operatorID int, id string) (service.View, error) {
	m.lastOperator, m.lastID = operatorID, id
	return m.view, m.err
}
func (m *mockLists) Search(operatorID int, id, query string) (service.View, error) {
	m.lastOperator, m.lastID = operatorID, id
	m.lastQuery = query
	return m.view, m.err
}
func (m *mockLists) Refresh(ctx context.Context, operatorID int, id string) (service.View, error) {
	m.lastOperator, m.lastID = operatorID, id
	return m.view, m.err
}
func (m *mockLists) Dispatch(ctx context.Context, operatorID int, id string, ev service.DialogEvent) (service.DialogStep, error) {
	m.lastOperator, m.lastID = operatorID, id
	m.lastEvent = ev
	return m.step, m.err
}
func (m *mockLists) Subscribe(operatorID int, id string) (<-chan service.View, func(), error) {
	m.lastOperator, m.lastID = operatorID, id
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.updates, func() { m.cancelCalls++ }, nil
}
func (m *mockLists) Close(operatorID int, id string) error {
	m.lastOperator, m.lastID = operatorID, id
	m.closeCalls++
	return m.err
}

type mockExportLog struct {
	resp       []models.ExportLogEntry
	err        error
	lastFilter service.ExportLogFilter
}

func (m *mockExportLog) List(ctx context.Context, f service.ExportLogFilter) ([]models.ExportLogEntry, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockDownloads struct {
	path string
	err  error
}

func (m *mockDownloads) FilePath(name string) (string, error) {
	return m.path, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
