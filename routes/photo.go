package routes

import (
	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// DeletePhoto removes one of the caller's own photos. Any collection
// memberships go with it, and the affected collections are recounted; the
// asset itself is cleaned up from Cloudinary best effort.
func DeletePhoto(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid photo id", ctx)
		return
	}

	var photo models.Photo
	if err := storage.DB.Where("id = ? AND user_id = ?", id, userID).First(&photo).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var memberships []models.CollectionPhoto
	storage.DB.Where("photo_id = ?", id).Find(&memberships)
	storage.DB.Where("photo_id = ?", id).Delete(&models.CollectionPhoto{})

	if err := storage.DB.Delete(&photo).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for _, m := range memberships {
		refreshPhotoState(m.CollectionID)
	}

	go storage.DeletePhoto(photo.URL)

	utils.Audit(ctx, "photo.delete", "photo", id, photo, nil)

	ctx.JSON(iris.Map{"success": true})
}
