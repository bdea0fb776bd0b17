package main

import (
	"log"
	"os"

	"github.com/Musiitwa-Joel/pixinity-sub003/routes"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetCurrentUser)
		user.Patch("/me/profile", accessTokenVerifierMiddleware, routes.UpdateProfile)
		user.Patch("/me/pushtoken", accessTokenVerifierMiddleware, routes.AlterPushToken)
		user.Patch("/me/settings/notifications", accessTokenVerifierMiddleware, routes.AllowsNotifications)
	}

	collections := app.Party("/api/collections", accessTokenVerifierMiddleware)
	{
		collections.Get("/", routes.ListCollections)
		collections.Post("/", routes.CreateCollection)
		collections.Get("/user/{userId}/photos", routes.GetUserPhotos)
		collections.Post("/comments/{commentId}/like", routes.LikeComment)
		collections.Get("/{id}", routes.GetCollection)
		collections.Put("/{id}", routes.UpdateCollection)
		collections.Delete("/{id}", routes.DeleteCollection)
		collections.Post("/{id}/view", routes.TrackView)
		collections.Post("/{id}/like", routes.ToggleLike)
		collections.Get("/{id}/like-status", routes.GetLikeStatus)
		collections.Get("/{id}/comments", routes.GetComments)
		collections.Post("/{id}/comments", routes.CreateComment)
		collections.Get("/{id}/collaborators", routes.ListCollaborators)
		collections.Post("/{id}/collaborators", routes.InviteCollaborator)
		collections.Post("/{id}/join", routes.JoinCollection)
		collections.Post("/{id}/request-access", routes.RequestAccess)
		collections.Post("/{id}/collaborators/{collaboratorId}/resend", routes.ResendInvite)
		collections.Post("/{id}/collaborators/{collaboratorId}/approve", routes.ApproveAccessRequest)
		collections.Delete("/{id}/collaborators/{collaboratorId}", routes.RemoveCollaborator)
	}

	photos := app.Party("/api/photos", accessTokenVerifierMiddleware)
	{
		photos.Delete("/{id}", routes.DeletePhoto)
	}

	collectionUploads := app.Party("/api/collection-uploads", accessTokenVerifierMiddleware)
	{
		collectionUploads.Get("/{id}/check-membership", routes.CheckMembership)
		collectionUploads.Post("/{id}/upload", routes.UploadToCollection)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", routes.ListNotifications)
		notifications.Put("/{id}/read", routes.MarkNotificationRead)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/collections", routes.AdminListCollections)
		admin.Delete("/collections/{id:uint}", routes.AdminDeleteCollection)
		admin.Get("/audit", routes.AdminListAuditLog)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
