package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

// buildTestApp wires the real routes against a fresh in-memory database.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	os.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")
	os.Setenv("INVITE_CODE_SECRET", "test-invite-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	storage.DB = db
	storage.PerformMigrations(db)

	if storage.Redis == nil {
		storage.InitializeRedis()
	}

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	auth := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", Register)
		user.Post("/login", Login)
		user.Get("/me", auth, GetCurrentUser)
	}

	collections := app.Party("/api/collections", auth)
	{
		collections.Get("/", ListCollections)
		collections.Post("/", CreateCollection)
		collections.Get("/user/{userId}/photos", GetUserPhotos)
		collections.Post("/comments/{commentId}/like", LikeComment)
		collections.Get("/{id}", GetCollection)
		collections.Put("/{id}", UpdateCollection)
		collections.Delete("/{id}", DeleteCollection)
		collections.Post("/{id}/view", TrackView)
		collections.Post("/{id}/like", ToggleLike)
		collections.Get("/{id}/like-status", GetLikeStatus)
		collections.Get("/{id}/comments", GetComments)
		collections.Post("/{id}/comments", CreateComment)
		collections.Get("/{id}/collaborators", ListCollaborators)
		collections.Post("/{id}/collaborators", InviteCollaborator)
		collections.Post("/{id}/join", JoinCollection)
		collections.Post("/{id}/request-access", RequestAccess)
		collections.Post("/{id}/collaborators/{collaboratorId}/resend", ResendInvite)
		collections.Post("/{id}/collaborators/{collaboratorId}/approve", ApproveAccessRequest)
		collections.Delete("/{id}/collaborators/{collaboratorId}", RemoveCollaborator)
	}

	photos := app.Party("/api/photos", auth)
	{
		photos.Delete("/{id}", DeletePhoto)
	}

	collectionUploads := app.Party("/api/collection-uploads", auth)
	{
		collectionUploads.Get("/{id}/check-membership", CheckMembership)
	}

	notifications := app.Party("/api/notifications", auth)
	{
		notifications.Get("/", ListNotifications)
	}

	admin := app.Party("/api/admin", auth, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", AdminListUsers)
		admin.Get("/collections", AdminListCollections)
		admin.Delete("/collections/{id:uint}", AdminDeleteCollection)
		admin.Get("/audit", AdminListAuditLog)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

// doJSON issues one request against the app and returns the recorder.
func doJSON(t *testing.T, app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
}

// registerTestUser creates an account through the real register route and
// returns its id and access token.
func registerTestUser(t *testing.T, app *iris.Application, email string) (uint, string) {
	t.Helper()

	username := strings.SplitN(email, "@", 2)[0]
	resp := doJSON(t, app, http.MethodPost, "/api/user/register", "", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"username":  username,
		"email":     email,
		"password":  "password123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body %s", email, resp.Code, resp.Body.String())
	}

	var out struct {
		ID          uint   `json:"ID"`
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, resp, &out)
	if out.AccessToken == "" {
		t.Fatalf("register %s returned no access token", email)
	}
	return out.ID, out.AccessToken
}

// createTestPhoto inserts an uploaded photo directly.
func createTestPhoto(t *testing.T, userID uint, title string) uint {
	t.Helper()
	photo := models.Photo{
		UserID: userID,
		Title:  title,
		URL:    "https://cdn.example.com/" + strings.ReplaceAll(title, " ", "-") + ".jpg",
	}
	if err := storage.DB.Create(&photo).Error; err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return photo.ID
}

type collectionEnvelope struct {
	Collection models.Collection `json:"collection"`
}
