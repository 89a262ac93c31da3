package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folium-app/folium/internal/app"
	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

var errNotImplemented = errors.New("not implemented in test")

// mockUserStore is a struct-of-funcs UserStore. Unset funcs report not found.
type mockUserStore struct {
	getFunc           func(id string) (*models.User, error)
	getByUsernameFunc func(username string) (*models.User, error)
	getByEmailFunc    func(email string) (*models.User, error)
	saveFunc          func(user *models.User) error
}

func (m *mockUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(username)
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(email)
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserStore) Save(ctx context.Context, user *models.User) error {
	if m.saveFunc != nil {
		return m.saveFunc(user)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error { return nil }
func (m *mockUserStore) Close() error                                { return nil }

// mockStorage satisfies StorageManager with a single user store.
type mockStorage struct {
	users interfaces.UserStore
}

func (m *mockStorage) UserStore() interfaces.UserStore         { return m.users }
func (m *mockStorage) PositionStore() interfaces.PositionStore { return nil }
func (m *mockStorage) Close() error                            { return nil }

// mockAssetService is a struct-of-funcs AssetService.
type mockAssetService struct {
	getAllFunc      func() []*models.Asset
	getBySymbolFunc func(symbol string) (*models.Asset, bool)
	searchFunc      func(query string) []*models.Asset
	getByTypeFunc   func(assetType string) []*models.Asset
}

func (m *mockAssetService) Refresh(ctx context.Context) error { return nil }

func (m *mockAssetService) GetAll(ctx context.Context) []*models.Asset {
	if m.getAllFunc != nil {
		return m.getAllFunc()
	}
	return []*models.Asset{}
}

func (m *mockAssetService) GetBySymbol(ctx context.Context, symbol string) (*models.Asset, bool) {
	if m.getBySymbolFunc != nil {
		return m.getBySymbolFunc(symbol)
	}
	return nil, false
}

func (m *mockAssetService) GetCurrentPrice(ctx context.Context, symbol string) float64 {
	a, ok := m.GetBySymbol(ctx, symbol)
	if !ok {
		return 0
	}
	return a.Price
}

func (m *mockAssetService) Search(ctx context.Context, query string) []*models.Asset {
	if m.searchFunc != nil {
		return m.searchFunc(query)
	}
	return []*models.Asset{}
}

func (m *mockAssetService) GetByType(ctx context.Context, assetType string) []*models.Asset {
	if m.getByTypeFunc != nil {
		return m.getByTypeFunc(assetType)
	}
	return []*models.Asset{}
}

// mockPortfolioService is a struct-of-funcs PortfolioService.
type mockPortfolioService struct {
	addFunc     func(userID string, req interfaces.CreatePositionRequest) (*models.Position, error)
	listFunc    func(userID string) ([]models.ValuedPosition, error)
	getFunc     func(id, userID string) (*models.ValuedPosition, error)
	updateFunc  func(id, userID string, req interfaces.UpdatePositionRequest) (*models.Position, error)
	removeFunc  func(id, userID string) error
	summaryFunc func(userID string) (*models.PortfolioSummary, error)
}

func (m *mockPortfolioService) AddPosition(ctx context.Context, userID string, req interfaces.CreatePositionRequest) (*models.Position, error) {
	if m.addFunc != nil {
		return m.addFunc(userID, req)
	}
	return nil, errNotImplemented
}

func (m *mockPortfolioService) ListPositions(ctx context.Context, userID string) ([]models.ValuedPosition, error) {
	if m.listFunc != nil {
		return m.listFunc(userID)
	}
	return nil, errNotImplemented
}

func (m *mockPortfolioService) GetPosition(ctx context.Context, id, userID string) (*models.ValuedPosition, error) {
	if m.getFunc != nil {
		return m.getFunc(id, userID)
	}
	return nil, errNotImplemented
}

func (m *mockPortfolioService) UpdatePosition(ctx context.Context, id, userID string, req interfaces.UpdatePositionRequest) (*models.Position, error) {
	if m.updateFunc != nil {
		return m.updateFunc(id, userID, req)
	}
	return nil, errNotImplemented
}

func (m *mockPortfolioService) RemovePosition(ctx context.Context, id, userID string) error {
	if m.removeFunc != nil {
		return m.removeFunc(id, userID)
	}
	return errNotImplemented
}

func (m *mockPortfolioService) GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(userID)
	}
	return nil, errNotImplemented
}

var (
	_ interfaces.UserStore        = (*mockUserStore)(nil)
	_ interfaces.StorageManager   = (*mockStorage)(nil)
	_ interfaces.AssetService     = (*mockAssetService)(nil)
	_ interfaces.PortfolioService = (*mockPortfolioService)(nil)
)

// testUser is the account resolved by authenticated test requests.
func testUser() *models.User {
	return &models.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
	}
}

// newTestServer builds a server around mock collaborators. The default user
// store resolves testUser so bearer tokens signed by tokenFor authenticate.
func newTestServer(t *testing.T, opts ...func(*app.App)) *Server {
	t.Helper()

	user := testUser()
	users := &mockUserStore{
		getFunc: func(id string) (*models.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, models.ErrUserNotFound
		},
	}

	a := &app.App{
		Config:           common.NewDefaultConfig(),
		Logger:           common.NewSilentLogger(),
		Storage:          &mockStorage{users: users},
		AssetService:     &mockAssetService{},
		PortfolioService: &mockPortfolioService{},
		StartupTime:      time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return NewServer(a)
}

// tokenFor signs a JWT the test server will accept for the given user.
func tokenFor(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

// doRequest performs a request against the full middleware chain.
func doRequest(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
