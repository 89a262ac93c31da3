package server

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/folium-app/folium/internal/app"
	"github.com/folium-app/folium/internal/models"
)

func TestRegister(t *testing.T) {
	var saved *models.User
	s := newTestServer(t, func(a *app.App) {
		a.Storage = &mockStorage{users: &mockUserStore{
			saveFunc: func(user *models.User) error {
				saved = user
				return nil
			},
		}}
	})

	rec := doRequest(t, s, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string                 `json:"access_token"`
		User        map[string]interface{} `json:"user"`
	}
	decodeBody(t, rec, &resp)

	if resp.AccessToken == "" {
		t.Error("expected access token in response")
	}
	if resp.User["username"] != "alice" {
		t.Errorf("expected username alice, got %v", resp.User["username"])
	}
	if _, leaked := resp.User["password_hash"]; leaked {
		t.Error("password hash must not appear in response")
	}

	if saved == nil {
		t.Fatal("expected user saved to store")
	}
	if saved.PasswordHash == "" || saved.PasswordHash == "s3cret-pass" {
		t.Error("expected password stored as bcrypt hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.Storage = &mockStorage{users: &mockUserStore{
			getByUsernameFunc: func(username string) (*models.User, error) {
				return testUser(), nil
			},
		}}
	})

	rec := doRequest(t, s, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "alice",
		"password": "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", rec.Code)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.Storage = &mockStorage{users: &mockUserStore{
			getByEmailFunc: func(email string) (*models.User, error) {
				return testUser(), nil
			},
		}}
	})

	rec := doRequest(t, s, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "bob",
		"email":    "alice@example.com",
		"password": "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing username", map[string]interface{}{"password": "pw"}},
		{"missing password", map[string]interface{}{"username": "alice"}},
		{"control chars in username", map[string]interface{}{"username": "al\x01ice", "password": "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func loginStore(t *testing.T, password string) *mockUserStore {
	t.Helper()
	hash, err := hashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := testUser()
	user.PasswordHash = hash
	return &mockUserStore{
		getFunc: func(id string) (*models.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, models.ErrUserNotFound
		},
		getByUsernameFunc: func(username string) (*models.User, error) {
			if username == user.Username {
				return user, nil
			}
			return nil, models.ErrUserNotFound
		},
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.Storage = &mockStorage{users: loginStore(t, "s3cret-pass")}
	})

	rec := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "s3cret-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	// The issued token authenticates subsequent requests.
	profile := doRequest(t, s, http.MethodGet, "/api/auth/profile", resp.AccessToken, nil)
	if profile.Code != http.StatusOK {
		t.Errorf("expected issued token to authenticate, got %d: %s", profile.Code, profile.Body.String())
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t, func(a *app.App) {
		a.Storage = &mockStorage{users: loginStore(t, "s3cret-pass")}
	})

	// Wrong password and unknown user return the identical generic error.
	wrongPass := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice", "password": "wrong",
	})
	unknownUser := doRequest(t, s, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "nobody", "password": "s3cret-pass",
	})

	if wrongPass.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", wrongPass.Code)
	}
	if unknownUser.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", unknownUser.Code)
	}
	if wrongPass.Body.String() != unknownUser.Body.String() {
		t.Error("login failures must not disclose whether the user exists")
	}
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	token := tokenFor(t, s, testUser())

	rec := doRequest(t, s, http.MethodGet, "/api/auth/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	decodeBody(t, rec, &resp)
	if resp["username"] != "alice" || resp["id"] != "user-1" {
		t.Errorf("unexpected profile %+v", resp)
	}
}

func TestProfile_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/auth/profile", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestAuth_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/auth/register", "/api/auth/login"} {
		rec := doRequest(t, s, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s: expected 405, got %d", path, rec.Code)
		}
	}
}

func TestHashPassword_LongInput(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	hash, err := hashPassword(string(long))
	if err != nil {
		t.Fatalf("expected over-length password to hash after truncation: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), long[:72]); err != nil {
		t.Errorf("truncated hash does not verify: %v", err)
	}
}
