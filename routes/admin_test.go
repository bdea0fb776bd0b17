package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"

	"github.com/kataras/iris/v12"
)

// promote flips a registered user to the admin role. The token already
// carries the old role, so the caller re-logs-in to pick it up.
func loginAsAdmin(t *testing.T, app *iris.Application, email string) string {
	t.Helper()
	if err := storage.DB.Model(&models.User{}).Where("email = ?", email).
		Update("role", "admin").Error; err != nil {
		t.Fatalf("promote: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", resp.Code, resp.Body.String())
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &out)
	return out.AccessToken
}

func TestAdminRoutesRBAC(t *testing.T) {
	app := buildTestApp(t)
	_, userToken := registerTestUser(t, app, "plain@example.com")

	// No token at all.
	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", "", nil)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Ordinary user role.
	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", userToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp.Code)
	}

	_, _ = registerTestUser(t, app, "boss@example.com")
	adminToken := loginAsAdmin(t, app, "boss@example.com")

	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d body %s", resp.Code, resp.Body.String())
	}

	var page struct {
		Data []models.User `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decodeBody(t, resp, &page)
	if page.Meta.Total != 2 {
		t.Fatalf("user total = %d, want 2", page.Meta.Total)
	}
}

func TestAdminTakedownIgnoresOwnership(t *testing.T) {
	app := buildTestApp(t)
	ownerID, ownerToken := registerTestUser(t, app, "owner@example.com")
	id := createSimpleCollection(t, app, ownerToken, ownerID)

	_, _ = registerTestUser(t, app, "boss@example.com")
	adminToken := loginAsAdmin(t, app, "boss@example.com")

	// Admin moderation view sees private and foreign collections alike.
	list := doJSON(t, app, http.MethodGet, "/api/admin/collections", adminToken, nil)
	if list.Code != http.StatusOK {
		t.Fatalf("admin list: status %d", list.Code)
	}

	del := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/collections/%d", id), adminToken, nil)
	if del.Code != http.StatusOK {
		t.Fatalf("takedown: status %d body %s", del.Code, del.Body.String())
	}

	var count int64
	storage.DB.Model(&models.Collection{}).Where("id = ?", id).Count(&count)
	if count != 0 {
		t.Fatal("collection survived the takedown")
	}

	// Takedowns land in the audit log.
	audit := doJSON(t, app, http.MethodGet, "/api/admin/audit", adminToken, nil)
	var page struct {
		Data []models.AuditLog `json:"data"`
	}
	decodeBody(t, audit, &page)
	found := false
	for _, entry := range page.Data {
		if entry.Action == "admin.collection.delete" && entry.ResourceID == id {
			found = true
		}
	}
	if !found {
		t.Fatal("takedown missing from audit log")
	}
}
