package routes

import (
	"encoding/json"
	"strings"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/datatypes"
)

const maxUploadSize = 32 << 20 // per request

// CheckMembership reports the caller's relationship to a collection.
// isMember is true for the owner and for accepted collaborators.
func CheckMembership(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	isOwner := collection.UserID == userID
	isCollaborator := isAcceptedCollaborator(id, userID)

	ctx.JSON(iris.Map{
		"isMember":       isOwner || isCollaborator,
		"isOwner":        isOwner,
		"isCollaborator": isCollaborator,
	})
}

// UploadToCollection accepts a multipart form (photos[], title, description,
// tags, category), pushes the files to Cloudinary, and adds the resulting
// photos to the collection. Owner or accepted collaborator only.
func UploadToCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if collection.UserID != userID && !isAcceptedCollaborator(id, userID) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.SetMaxRequestBodySize(maxUploadSize)
	if err := ctx.Request().ParseMultipartForm(maxUploadSize); err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid multipart form", ctx)
		return
	}
	form := ctx.Request().MultipartForm

	files := form.File["photos[]"]
	if len(files) == 0 {
		files = form.File["photos"]
	}
	if len(files) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "no photos in request", ctx)
		return
	}

	title := ctx.FormValue("title")
	description := ctx.FormValue("description")
	category := ctx.FormValue("category")
	tags := parseTags(ctx.FormValue("tags"))

	uploaded := 0
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			continue
		}

		result, uploadErr := storage.UploadPhoto(file, uuid.NewString())
		file.Close()
		if uploadErr != nil {
			continue
		}

		photoTitle := title
		if photoTitle == "" {
			photoTitle = header.Filename
		}

		photo := models.Photo{
			UserID:       userID,
			Title:        photoTitle,
			Description:  description,
			URL:          result.URL,
			ThumbnailURL: result.ThumbnailURL,
			Tags:         tags,
			Category:     category,
		}
		if err := storage.DB.Create(&photo).Error; err != nil {
			continue
		}

		storage.DB.Create(&models.CollectionPhoto{
			CollectionID: id,
			PhotoID:      photo.ID,
			AddedByID:    userID,
		})
		uploaded++
	}

	if uploaded == 0 {
		utils.CreateError(iris.StatusBadGateway, "Upload Failed", "no photos could be uploaded", ctx)
		return
	}

	refreshPhotoState(id)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "uploaded", "count": uploaded})
}

func parseTags(raw string) datatypes.JSON {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(encoded)
}
