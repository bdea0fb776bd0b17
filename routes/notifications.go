package routes

import (
	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/services"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// ListNotifications returns the caller's notifications, unread first.
func ListNotifications(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	limit := ctx.URLParamIntDefault("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	if err := storage.DB.Where("user_id = ?", claims.ID).
		Order("is_read ASC, created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var unread int64
	storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).Count(&unread)

	ctx.JSON(iris.Map{"notifications": notifications, "unread": unread})
}

// MarkNotificationRead flags one notification as read.
func MarkNotificationRead(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid notification id", ctx)
		return
	}

	notificationService := services.NewNotificationService()
	if err := notificationService.MarkRead(claims.ID, id); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
