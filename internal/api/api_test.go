package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"wastetrack/internal/app/service"
	"wastetrack/internal/common"
	"wastetrack/internal/common/security"
	"wastetrack/internal/domain/model"
	"wastetrack/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repositories mirroring the pg implementations' semantics.

type memUserRepo struct {
	users  []*model.User
	nextID int64
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *memUserRepo) FindByUsernameOrEmail(ctx context.Context, identity string) (*model.User, error) {
	for _, user := range r.users {
		if user.Username == identity || user.Email == identity {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type memAdminRepo struct {
	admins []*model.Admin
}

func (r *memAdminRepo) FindByUsername(ctx context.Context, username string) (*model.Admin, error) {
	for _, admin := range r.admins {
		if admin.Username == username {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type memRequestRepo struct {
	users    *memUserRepo
	requests []*model.WasteRequest
	nextID   int64
}

func (r *memRequestRepo) Create(ctx context.Context, req *model.WasteRequest) error {
	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = time.Now()
	copied := *req
	r.requests = append(r.requests, &copied)
	return nil
}

func (r *memRequestRepo) ListByUser(ctx context.Context, userID int64) ([]model.WasteRequest, error) {
	out := []model.WasteRequest{}
	for i := len(r.requests) - 1; i >= 0; i-- {
		if r.requests[i].UserID == userID {
			out = append(out, *r.requests[i])
		}
	}
	return out, nil
}

func (r *memRequestRepo) ListAllWithOwners(ctx context.Context) ([]model.AdminRequestView, error) {
	out := []model.AdminRequestView{}
	for i := len(r.requests) - 1; i >= 0; i-- {
		view := model.AdminRequestView{WasteRequest: *r.requests[i]}
		if owner, err := r.users.FindByID(ctx, r.requests[i].UserID); err == nil {
			view.OwnerUsername = owner.Username
			view.OwnerFullName = owner.FullName
			view.OwnerPhone = owner.Phone
			view.OwnerAddress = owner.Address
		}
		out = append(out, view)
	}
	return out, nil
}

func (r *memRequestRepo) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	for _, req := range r.requests {
		if req.ID == id {
			req.Status = status
			return nil
		}
	}
	return common.ErrNotFound
}

// testClient drives the router and carries the session cookie between calls,
// the way a browser would.

type testClient struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T) *testClient {
	t.Helper()

	userRepo := &memUserRepo{}
	adminRepo := &memAdminRepo{}
	requestRepo := &memRequestRepo{users: userRepo}

	adminHash, err := security.HashPassword("admin123")
	require.NoError(t, err)
	adminRepo.admins = append(adminRepo.admins, &model.Admin{
		ID:             1,
		Username:       "admin",
		Email:          "admin@wastemanagement.com",
		HashedPassword: adminHash,
		CreatedAt:      time.Now(),
	})

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(store.Close)

	logger := zap.NewNop()
	authService := service.NewAuthService(userRepo, adminRepo, store, logger)
	requestService := service.NewRequestService(requestRepo, logger)

	return &testClient{t: t, router: NewRouter(authService, requestService, store)}
}

func (c *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	c := newTestEnv(t)
	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	c := newTestEnv(t)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/waste-request", map[string]string{"wasteType": "organic"}).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/my-requests", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/all-requests", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPut, "/api/request/1/status", map[string]string{"status": "approved"}).Code)

	// Logout without a session is a no-op success; probe reports loggedIn:false.
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/logout", nil).Code)
	probe := decode(t, c.do(http.MethodGet, "/api/session", nil))
	assert.Equal(t, false, probe["loggedIn"])
}

func TestDuplicateRegistration(t *testing.T) {
	c := newTestEnv(t)

	body := map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith",
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", body).Code)

	body["email"] = "different@x.com"
	body["password"] = "otherpw"
	rec := c.do(http.MethodPost, "/api/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username or email already exists", decode(t, rec)["error"])
}

func TestLoginFailureIsUnified(t *testing.T) {
	c := newTestEnv(t)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith",
	}).Code)

	unknown := c.do(http.MethodPost, "/api/login", map[string]string{"username": "nobody", "password": "pw1"})
	wrongPw := c.do(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestUserCannotAccessAdminEndpoints(t *testing.T) {
	c := newTestEnv(t)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith",
	}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "pw1",
	}).Code)

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/all-requests", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPut, "/api/request/1/status", map[string]string{"status": "approved"}).Code)
}

func TestMyRequestsIsOwnerScoped(t *testing.T) {
	c := newTestEnv(t)

	for _, u := range []map[string]string{
		{"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith"},
		{"username": "bob", "email": "bob@x.com", "password": "pw2", "fullName": "Bob Jones"},
	} {
		require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", u).Code)
	}

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "pw1"}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/waste-request", map[string]string{
		"wasteType": "organic", "quantity": "2 bags", "pickupDate": "2025-01-10",
	}).Code)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{"username": "bob", "password": "pw2"}).Code)
	resp := decode(t, c.do(http.MethodGet, "/api/my-requests", nil))
	assert.Empty(t, resp["requests"])
}

func TestFullLifecycleScenario(t *testing.T) {
	c := newTestEnv(t)

	// Register and log in alice.
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith",
	}).Code)

	loginResp := decode(t, c.do(http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "pw1",
	}))
	user := loginResp["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "Alice Smith", user["fullName"])
	assert.NotContains(t, user, "password")

	// Probe reflects the login.
	probe := decode(t, c.do(http.MethodGet, "/api/session", nil))
	assert.Equal(t, true, probe["loggedIn"])
	assert.Equal(t, "alice", probe["username"])

	// Submit a request; it comes back pending.
	submitResp := decode(t, c.do(http.MethodPost, "/api/waste-request", map[string]string{
		"wasteType": "organic", "quantity": "2 bags", "pickupDate": "2025-01-10",
	}))
	assert.Equal(t, true, submitResp["success"])
	requestID := int64(submitResp["requestId"].(float64))
	require.NotZero(t, requestID)

	mine := decode(t, c.do(http.MethodGet, "/api/my-requests", nil))["requests"].([]interface{})
	require.Len(t, mine, 1)
	entry := mine[0].(map[string]interface{})
	assert.Equal(t, "organic", entry["wasteType"])
	assert.Equal(t, "2 bags", entry["quantity"])
	assert.Equal(t, "2025-01-10", entry["pickupDate"])
	assert.Equal(t, "pending", entry["status"])

	// Admin takes over the browser session.
	adminResp := decode(t, c.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin", "password": "admin123",
	}))
	assert.Equal(t, true, adminResp["success"])

	probe = decode(t, c.do(http.MethodGet, "/api/session", nil))
	assert.Equal(t, true, probe["loggedIn"])
	assert.Equal(t, true, probe["isAdmin"])

	all := decode(t, c.do(http.MethodGet, "/api/all-requests", nil))["requests"].([]interface{})
	require.Len(t, all, 1)
	adminEntry := all[0].(map[string]interface{})
	assert.Equal(t, "alice", adminEntry["username"])
	assert.Equal(t, "Alice Smith", adminEntry["full_name"])

	// Complete the request.
	updateResp := c.do(http.MethodPut, fmt.Sprintf("/api/request/%d/status", requestID), map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, updateResp.Code)

	all = decode(t, c.do(http.MethodGet, "/api/all-requests", nil))["requests"].([]interface{})
	assert.Equal(t, "completed", all[0].(map[string]interface{})["status"])

	// Back as alice: her view shows the new status too.
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{
		"username": "alice", "password": "pw1",
	}).Code)
	mine = decode(t, c.do(http.MethodGet, "/api/my-requests", nil))["requests"].([]interface{})
	require.Len(t, mine, 1)
	assert.Equal(t, "completed", mine[0].(map[string]interface{})["status"])

	// Logout ends the session.
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/logout", nil).Code)
	probe = decode(t, c.do(http.MethodGet, "/api/session", nil))
	assert.Equal(t, false, probe["loggedIn"])
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/my-requests", nil).Code)
}

func TestUpdateStatusValidation(t *testing.T) {
	c := newTestEnv(t)

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/register", map[string]string{
		"username": "alice", "email": "alice@x.com", "password": "pw1", "fullName": "Alice Smith",
	}).Code)
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "pw1"}).Code)
	submitResp := decode(t, c.do(http.MethodPost, "/api/waste-request", map[string]string{
		"wasteType": "electronic", "quantity": "1 box", "pickupDate": "2025-02-01",
	}))
	requestID := int64(submitResp["requestId"].(float64))

	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": "admin", "password": "admin123",
	}).Code)

	// Unknown status is rejected before it reaches the store.
	rec := c.do(http.MethodPut, fmt.Sprintf("/api/request/%d/status", requestID), map[string]string{"status": "vaporized"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Non-existent request id.
	rec = c.do(http.MethodPut, "/api/request/9999/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Non-numeric id.
	rec = c.do(http.MethodPut, "/api/request/abc/status", map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The valid transitions still work.
	for _, status := range []string{"approved", "completed", "rejected", "pending"} {
		rec = c.do(http.MethodPut, fmt.Sprintf("/api/request/%d/status", requestID), map[string]string{"status": status})
		assert.Equal(t, http.StatusOK, rec.Code, "status %q should be accepted", status)
	}
}
