package client

import (
	"strings"
)

// Wizard steps, in order. The collaborators step only exists when the
// collection is collaborative and public at the time photos is left.
type WizardStep string

const (
	StepDetails       WizardStep = "details"
	StepSettings      WizardStep = "settings"
	StepPhotos        WizardStep = "photos"
	StepCollaborators WizardStep = "collaborators"
)

// Wizard drives the linear create/edit flow with per-step gating. It holds
// draft state only; nothing touches the network until Payload is submitted
// through a Client.
type Wizard struct {
	Title       string
	Description string

	isPrivate       bool
	isCollaborative bool

	photoIDs []uint
	emails   []string

	// The signed-in user's email; inviting yourself is rejected.
	OwnEmail string

	step WizardStep

	// Edit mode remembers the collection being edited and its exact title
	// for the delete confirmation gate.
	editID    uint
	editTitle string
}

func NewWizard(ownEmail string) *Wizard {
	return &Wizard{OwnEmail: strings.ToLower(strings.TrimSpace(ownEmail)), step: StepDetails}
}

// NewEditWizard seeds every field from an existing collection. Photo
// membership is edited as a replace-set: the ids submitted on update fully
// replace the old membership.
func NewEditWizard(ownEmail string, existing *Collection) *Wizard {
	w := NewWizard(ownEmail)
	w.editID = existing.ID
	w.editTitle = existing.Title
	w.Title = existing.Title
	w.Description = existing.Description
	w.isPrivate = existing.IsPrivate
	w.isCollaborative = existing.IsCollaborative
	for _, cp := range existing.Photos {
		w.TogglePhoto(cp.PhotoID)
	}
	return w
}

func (w *Wizard) Step() WizardStep { return w.step }

func (w *Wizard) IsPrivate() bool { return w.isPrivate }

// IsCollaborative never reports true while the draft is private.
func (w *Wizard) IsCollaborative() bool { return w.isCollaborative && !w.isPrivate }

func (w *Wizard) SetPrivate(private bool) {
	w.isPrivate = private
	if private {
		// The checkbox is disabled in this state; the stored value follows it
		w.isCollaborative = false
	}
}

// SetCollaborative is ignored while the draft is private.
func (w *Wizard) SetCollaborative(collaborative bool) {
	if w.isPrivate {
		return
	}
	w.isCollaborative = collaborative
}

// TogglePhoto adds or removes one photo id from the selection set.
func (w *Wizard) TogglePhoto(photoID uint) {
	for i, id := range w.photoIDs {
		if id == photoID {
			w.photoIDs = append(w.photoIDs[:i], w.photoIDs[i+1:]...)
			return
		}
	}
	w.photoIDs = append(w.photoIDs, photoID)
}

func (w *Wizard) SelectedPhotos() []uint {
	out := make([]uint, len(w.photoIDs))
	copy(out, w.photoIDs)
	return out
}

// AddEmail normalizes and validates one collaborator email. Duplicates are
// silently dropped; the owner's own address is an error.
func (w *Wizard) AddEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	if email == w.OwnEmail {
		return &ValidationError{Field: "email", Message: "you cannot invite yourself"}
	}
	for _, existing := range w.emails {
		if existing == email {
			return nil
		}
	}
	w.emails = append(w.emails, email)
	return nil
}

func (w *Wizard) RemoveEmail(email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i, existing := range w.emails {
		if existing == email {
			w.emails = append(w.emails[:i], w.emails[i+1:]...)
			return
		}
	}
}

func (w *Wizard) Emails() []string {
	out := make([]string, len(w.emails))
	copy(out, w.emails)
	return out
}

// CanAdvance reports whether the gating rules for the current step hold.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepDetails:
		n := len(strings.TrimSpace(w.Title))
		return n >= 3 && n <= 50 && len(w.Description) <= 500
	case StepSettings:
		return true
	case StepPhotos:
		return len(w.photoIDs) > 0
	default:
		// collaborators is the last step; there is nothing to advance to
		return false
	}
}

// Next moves to the following step. Leaving photos branches: a collaborative
// public draft gets the collaborators step, everything else is ready to
// submit.
func (w *Wizard) Next() (WizardStep, error) {
	if !w.CanAdvance() {
		return w.step, &ValidationError{Field: string(w.step), Message: "step requirements not met"}
	}
	switch w.step {
	case StepDetails:
		w.step = StepSettings
	case StepSettings:
		w.step = StepPhotos
	case StepPhotos:
		if w.IsCollaborative() {
			w.step = StepCollaborators
		}
	}
	return w.step, nil
}

func (w *Wizard) Back() WizardStep {
	switch w.step {
	case StepSettings:
		w.step = StepDetails
	case StepPhotos:
		w.step = StepSettings
	case StepCollaborators:
		w.step = StepPhotos
	}
	return w.step
}

// ReadyToSubmit is true once the photos gate holds; on a collaborative public
// draft the collaborators step is also reachable but never mandatory.
func (w *Wizard) ReadyToSubmit() bool {
	n := len(strings.TrimSpace(w.Title))
	return n >= 3 && n <= 50 && len(w.Description) <= 500 && len(w.photoIDs) > 0
}

// Payload assembles the creation request. isCollaborative is recomputed from
// the privacy flag no matter what the checkbox last showed, and emails are
// only attached when the result is collaborative.
func (w *Wizard) Payload() CreateCollectionRequest {
	collaborative := w.isCollaborative && !w.isPrivate

	emails := []string{}
	if collaborative {
		emails = w.Emails()
	}

	return CreateCollectionRequest{
		Title:              strings.TrimSpace(w.Title),
		Description:        w.Description,
		IsPrivate:          w.isPrivate,
		IsCollaborative:    collaborative,
		PhotoIDs:           w.SelectedPhotos(),
		CollaboratorEmails: emails,
	}
}

// UpdatePayload assembles the edit-mode partial update. Collaborator editing
// is deferred; only the scalar fields and the replace-set photo membership go
// out.
func (w *Wizard) UpdatePayload() UpdateCollectionRequest {
	title := strings.TrimSpace(w.Title)
	description := w.Description
	private := w.isPrivate
	collaborative := w.isCollaborative && !w.isPrivate
	photos := w.SelectedPhotos()

	return UpdateCollectionRequest{
		Title:           &title,
		Description:     &description,
		IsPrivate:       &private,
		IsCollaborative: &collaborative,
		PhotoIDs:        &photos,
	}
}

// EditingID returns the id seeded by NewEditWizard, zero for a create flow.
func (w *Wizard) EditingID() uint { return w.editID }

// ConfirmDelete gates the destructive action: it is enabled only when the
// typed text matches the current title exactly, case-sensitively.
func (w *Wizard) ConfirmDelete(typed string) bool {
	return w.editTitle != "" && typed == w.editTitle
}
