package routes

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Musiitwa-Joel/pixinity-sub003/models"
	"github.com/Musiitwa-Joel/pixinity-sub003/services"
	"github.com/Musiitwa-Joel/pixinity-sub003/storage"
	"github.com/Musiitwa-Joel/pixinity-sub003/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

const inviteCodeTTL = 48 * time.Hour

// invalidCodeMsg is deliberately the same for "no such invite" and "wrong
// code for an existing invite" so the response never leaks which one it was.
const invalidCodeMsg = "invalid or expired code"

// ListCollaborators returns the roster of a collection
func ListCollaborators(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

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

	if collection.IsPrivate && collection.UserID != claims.ID && !isAcceptedCollaborator(id, claims.ID) {
		utils.CreateNotFound(ctx)
		return
	}

	var collaborators []models.Collaborator
	storage.DB.Where("collection_id = ?", id).
		Preload("User").
		Order("created_at ASC").
		Find(&collaborators)

	ctx.JSON(iris.Map{"collaborators": collaborators})
}

// InviteCollaborator lets the owner add a pending invite by email after
// the collection already exists.
func InviteCollaborator(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var input InviteCollaboratorInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if !collection.IsCollaborative {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "collection is not collaborative", ctx)
		return
	}

	var owner models.User
	storage.DB.First(&owner, claims.ID)

	collaborator := inviteCollaboratorByEmail(collection, owner, input.Email)
	if collaborator == nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "cannot invite this email", ctx)
		return
	}

	if input.Role != "" && collaborator.Role != input.Role {
		storage.DB.Model(collaborator).Update("role", input.Role)
		collaborator.Role = input.Role
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "collaborator": collaborator})
}

// JoinCollection redeems a 6-digit invite code for the authenticated caller.
func JoinCollection(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	userID := claims.ID

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}

	var input JoinCollectionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidInviteCodeFormat(input.OTPCode) {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", invalidCodeMsg, ctx)
		return
	}

	var pending []models.Collaborator
	storage.DB.Where("collection_id = ? AND status = ?", id, models.CollaboratorPending).Find(&pending)

	now := time.Now()
	var matched *models.Collaborator
	for i := range pending {
		c := &pending[i]
		if c.CodeDigest == "" || c.CodeExpiresAt == nil || c.CodeExpiresAt.Before(now) {
			continue
		}
		if c.CodeDigest == utils.HashInviteCode(c.ID, input.OTPCode) {
			matched = c
			break
		}
	}

	if matched == nil {
		// A wrong code must leave the invitation pending, never declined
		utils.CreateError(iris.StatusBadRequest, "Bad Request", invalidCodeMsg, ctx)
		return
	}

	storage.DB.Model(matched).Updates(map[string]interface{}{
		"status":          models.CollaboratorAccepted,
		"user_id":         userID,
		"responded_at":    &now,
		"code_digest":     "",
		"code_expires_at": nil,
	})

	var collection models.Collection
	if err := storage.DB.First(&collection, id).Error; err == nil {
		var joiner models.User
		if err := storage.DB.First(&joiner, userID).Error; err == nil {
			name := strings.TrimSpace(joiner.FirstName + " " + joiner.LastName)
			notificationService := services.NewNotificationService()
			go notificationService.SendInviteAcceptedNotificationToOwner(
				collection.UserID, matched.ID, collection.ID, name, collection.Title)
		}
	}

	ctx.JSON(iris.Map{"success": true, "collaboratorID": matched.ID})
}

// ResendInvite regenerates the code of a pending invite and redelivers it.
// The previous code stops working the moment the digest is overwritten.
func ResendInvite(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}
	collaboratorID, err := ctx.Params().GetUint("collaboratorId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collaborator id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var collaborator models.Collaborator
	if err := storage.DB.Where("id = ? AND collection_id = ?", collaboratorID, id).First(&collaborator).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if collaborator.Status != models.CollaboratorPending {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invitation is no longer pending", ctx)
		return
	}

	// Self-initiated requests carry no email, so there is nothing to resend to
	if collaborator.SelfRequested || collaborator.Email == "" {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "no email on record for this request", ctx)
		return
	}

	if !issueInviteCode(&collaborator, collection.Title) {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}

// RemoveCollaborator deletes a roster entry, pending or accepted.
func RemoveCollaborator(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}
	collaboratorID, err := ctx.Params().GetUint("collaboratorId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collaborator id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var collaborator models.Collaborator
	if err := storage.DB.Where("id = ? AND collection_id = ?", collaboratorID, id).First(&collaborator).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Delete(&collaborator).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "collaborator.remove", "collaborator", collaboratorID, collaborator, nil)

	ctx.JSON(iris.Map{"success": true})
}

// RequestAccess lets a signed-in user ask to join a public collaborative
// collection. Private collections only take owner-initiated email invites.
func RequestAccess(ctx iris.Context) {
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

	if !collection.IsCollaborative || collection.IsPrivate {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "collection does not accept access requests", ctx)
		return
	}
	if collection.UserID == userID {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "you already own this collection", ctx)
		return
	}

	// Idempotent on an existing roster entry for this user
	request := models.Collaborator{
		CollectionID:  id,
		InviterID:     collection.UserID,
		SelfRequested: true,
		Status:        models.CollaboratorPending,
		InvitedAt:     time.Now(),
	}
	uid := userID
	request.UserID = &uid
	storage.DB.Where("collection_id = ? AND user_id = ?", id, userID).FirstOrCreate(&request)

	var requester models.User
	if err := storage.DB.First(&requester, userID).Error; err == nil {
		name := strings.TrimSpace(requester.FirstName + " " + requester.LastName)
		notificationService := services.NewNotificationService()
		go notificationService.SendAccessRequestNotificationToOwner(
			collection.UserID, userID, collection.ID, name, collection.Title)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "collaborator": request})
}

// ApproveAccessRequest lets the owner accept a self-initiated request.
func ApproveAccessRequest(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collection id", ctx)
		return
	}
	collaboratorID, err := ctx.Params().GetUint("collaboratorId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Bad Request", "invalid collaborator id", ctx)
		return
	}

	var collection models.Collection
	if err := storage.DB.Where("id = ? AND user_id = ?", id, claims.ID).First(&collection).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var collaborator models.Collaborator
	if err := storage.DB.Where("id = ? AND collection_id = ? AND status = ?",
		collaboratorID, id, models.CollaboratorPending).First(&collaborator).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	storage.DB.Model(&collaborator).Updates(map[string]interface{}{
		"status":       models.CollaboratorAccepted,
		"responded_at": &now,
	})

	ctx.JSON(iris.Map{"success": true})
}

// inviteCollaboratorByEmail creates (or reuses) a pending invite for one
// normalized email and dispatches its code. Returns nil when the email is the
// owner's own address.
func inviteCollaboratorByEmail(collection models.Collection, owner models.User, email string) *models.Collaborator {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || email == strings.ToLower(owner.Email) {
		return nil
	}

	collaborator := models.Collaborator{
		CollectionID: collection.ID,
		InviterID:    owner.ID,
		Email:        email,
		Status:       models.CollaboratorPending,
		InvitedAt:    time.Now(),
	}

	// Resolve the email to an account when one already exists
	var invitee models.User
	if err := storage.DB.Where("email = ?", email).First(&invitee).Error; err == nil {
		inviteeID := invitee.ID
		collaborator.UserID = &inviteeID
	}

	// One roster entry per email per collection; re-inviting reuses it
	storage.DB.Where("collection_id = ? AND email = ?", collection.ID, email).
		FirstOrCreate(&collaborator)

	if collaborator.Status != models.CollaboratorPending {
		return &collaborator
	}

	if !issueInviteCode(&collaborator, collection.Title) {
		log.Printf("failed to issue invite code for collaborator %d", collaborator.ID)
	}
	return &collaborator
}

// issueInviteCode rotates the stored digest and emails the fresh code.
func issueInviteCode(collaborator *models.Collaborator, collectionTitle string) bool {
	code, err := utils.GenerateInviteCode()
	if err != nil {
		return false
	}

	expires := time.Now().Add(inviteCodeTTL)
	if err := storage.DB.Model(collaborator).Updates(map[string]interface{}{
		"code_digest":     utils.HashInviteCode(collaborator.ID, code),
		"code_expires_at": &expires,
	}).Error; err != nil {
		return false
	}

	subject := fmt.Sprintf("You have been invited to collaborate on %q", collectionTitle)
	html := fmt.Sprintf(`
		<p>You have been invited to collaborate on the collection <strong>%s</strong>.</p>
		<p>Your one-time code is:</p>
		<h2>%s</h2>
		<p>The code expires in 48 hours. If you did not expect this invitation,
		disregard this email.</p>`, collectionTitle, code)

	go func(to string) {
		if _, err := utils.SendMail(to, subject, html); err != nil {
			log.Printf("failed to send invite email to %s: %v", to, err)
		}
	}(collaborator.Email)

	return true
}

type InviteCollaboratorInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"collaboratorRole" validate:"omitempty,max=32"`
}

type JoinCollectionInput struct {
	OTPCode string `json:"otpCode" validate:"required"`
}
