package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"
)

// NotificationService handles persisted notifications and push delivery
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotificationData represents the data payload for push notifications
type NotificationData struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	CollectionID string `json:"collectionId,omitempty"`
	UserID       string `json:"userId,omitempty"`
	Screen       string `json:"screen"`
	Params       string `json:"params"`
}

// getUserPushTokens retrieves all push tokens for a user
func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}
	return tokens, nil
}

// persist stores an in-app notification row regardless of push delivery outcome
func (ns *NotificationService) persist(userID uint, ntype, title, message, refType string, refID uint) {
	n := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := storage.DB.Create(&n).Error; err != nil {
		log.Printf("failed to persist notification for user %d: %v", userID, err)
	}
}

func (ns *NotificationService) SendNotificationToUser(userID uint, title, body string, data NotificationData) error {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		log.Printf("Failed to get push tokens for user %d: %v", userID, err)
		return err
	}

	dataMap := map[string]string{
		"type":         data.Type,
		"id":           data.ID,
		"collectionId": data.CollectionID,
		"userId":       data.UserID,
	}

	var lastError error
	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, dataMap); err != nil {
			log.Printf("Failed to send notification to token %s: %v", token, err)
			lastError = err
		}
	}
	return lastError
}

// SendAccessRequestNotificationToOwner notifies a collection owner that someone
// asked to join their public collaborative collection.
func (ns *NotificationService) SendAccessRequestNotificationToOwner(ownerID, requesterID, collectionID uint, requesterName, collectionTitle string) error {
	title := "Access request"
	body := fmt.Sprintf("%s wants to collaborate on %q", requesterName, collectionTitle)

	ns.persist(ownerID, "access_request", title, body, "collection", collectionID)

	params := fmt.Sprintf(`{"collectionId": %d, "requesterId": %d}`, collectionID, requesterID)
	data := NotificationData{
		Type:         "access_request",
		ID:           fmt.Sprintf("%d", collectionID),
		CollectionID: fmt.Sprintf("%d", collectionID),
		UserID:       fmt.Sprintf("%d", requesterID),
		Screen:       "CollectionCollaborators",
		Params:       params,
	}
	return ns.SendNotificationToUser(ownerID, title, body, data)
}

// SendInviteAcceptedNotificationToOwner notifies the owner when an invitee
// redeems their invite code.
func (ns *NotificationService) SendInviteAcceptedNotificationToOwner(ownerID, collaboratorID, collectionID uint, collaboratorName, collectionTitle string) error {
	title := "Invitation accepted"
	body := fmt.Sprintf("%s joined %q as a collaborator", collaboratorName, collectionTitle)

	ns.persist(ownerID, "invite_accepted", title, body, "collection", collectionID)

	params := fmt.Sprintf(`{"collectionId": %d}`, collectionID)
	data := NotificationData{
		Type:         "invite_accepted",
		ID:           fmt.Sprintf("%d", collaboratorID),
		CollectionID: fmt.Sprintf("%d", collectionID),
		Screen:       "CollectionDetail",
		Params:       params,
	}
	return ns.SendNotificationToUser(ownerID, title, body, data)
}

// SendCollectionInteractionNotificationToOwner notifies the owner when their
// collection is liked or commented on.
func (ns *NotificationService) SendCollectionInteractionNotificationToOwner(ownerID, userID, collectionID uint, userName, interactionType, collectionTitle string) error {
	var title, body string
	switch interactionType {
	case "like":
		title = "New like"
		body = fmt.Sprintf("%s liked %q", userName, collectionTitle)
	case "comment":
		title = "New comment"
		body = fmt.Sprintf("%s commented on %q", userName, collectionTitle)
	default:
		title = "New activity"
		body = fmt.Sprintf("%s interacted with %q", userName, collectionTitle)
	}

	ns.persist(ownerID, "collection_"+interactionType, title, body, "collection", collectionID)

	params := fmt.Sprintf(`{"collectionId": %d}`, collectionID)
	data := NotificationData{
		Type:         "collection_" + interactionType,
		ID:           fmt.Sprintf("%d", collectionID),
		CollectionID: fmt.Sprintf("%d", collectionID),
		UserID:       fmt.Sprintf("%d", userID),
		Screen:       "CollectionDetail",
		Params:       params,
	}
	return ns.SendNotificationToUser(ownerID, title, body, data)
}

// MarkRead flags a notification as read, stamping ReadAt once.
func (ns *NotificationService) MarkRead(userID, notificationID uint) error {
	now := time.Now()
	return storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}
