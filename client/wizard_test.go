package client

import (
	"strings"
	"testing"
)

func TestWizardStepGating(t *testing.T) {
	w := NewWizard("me@example.com")

	if w.Step() != StepDetails {
		t.Fatalf("initial step = %s", w.Step())
	}
	if w.CanAdvance() {
		t.Fatal("empty title must block details")
	}

	w.Title = "ab"
	if w.CanAdvance() {
		t.Fatal("2-char title must block details")
	}
	w.Title = strings.Repeat("x", 51)
	if w.CanAdvance() {
		t.Fatal("51-char title must block details")
	}
	w.Title = "Sunset Walks"
	w.Description = strings.Repeat("d", 501)
	if w.CanAdvance() {
		t.Fatal("501-char description must block details")
	}
	w.Description = "evening strolls"
	if !w.CanAdvance() {
		t.Fatal("valid details must unblock")
	}

	if step, _ := w.Next(); step != StepSettings {
		t.Fatalf("after details, step = %s", step)
	}
	if step, _ := w.Next(); step != StepPhotos {
		t.Fatalf("after settings, step = %s", step)
	}

	if w.CanAdvance() {
		t.Fatal("no photos selected must block photos")
	}
	if _, err := w.Next(); err == nil {
		t.Fatal("Next past photos without selection must error")
	}

	w.TogglePhoto(11)
	if !w.ReadyToSubmit() {
		t.Fatal("one photo selected should be submittable")
	}
}

func TestWizardCollaboratorsBranch(t *testing.T) {
	w := NewWizard("me@example.com")
	w.Title = "Sunset Walks"
	w.SetCollaborative(true)
	w.TogglePhoto(1)
	w.Next() // details -> settings
	w.Next() // settings -> photos

	step, err := w.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if step != StepCollaborators {
		t.Fatalf("collaborative public draft should branch to collaborators, got %s", step)
	}

	// Private drafts submit straight from photos.
	w2 := NewWizard("me@example.com")
	w2.Title = "Hidden Gems"
	w2.SetPrivate(true)
	w2.TogglePhoto(1)
	w2.Next()
	w2.Next()
	if step, _ := w2.Next(); step != StepPhotos {
		t.Fatalf("private draft should stay on photos, got %s", step)
	}
}

func TestWizardPrivateForcesNonCollaborative(t *testing.T) {
	w := NewWizard("me@example.com")
	w.SetCollaborative(true)
	w.SetPrivate(true)

	if w.IsCollaborative() {
		t.Fatal("private draft must never report collaborative")
	}

	// The checkbox is dead while private.
	w.SetCollaborative(true)
	if w.IsCollaborative() {
		t.Fatal("SetCollaborative must be ignored while private")
	}

	w.Title = "Hidden Gems"
	w.TogglePhoto(1)
	payload := w.Payload()
	if payload.IsCollaborative {
		t.Fatal("payload must carry isCollaborative=false when private, regardless of checkbox history")
	}
	if len(payload.CollaboratorEmails) != 0 {
		t.Fatalf("non-collaborative payload must carry no emails, got %v", payload.CollaboratorEmails)
	}
}

func TestWizardPhotoToggle(t *testing.T) {
	w := NewWizard("me@example.com")
	w.TogglePhoto(1)
	w.TogglePhoto(2)
	w.TogglePhoto(1) // deselect

	selected := w.SelectedPhotos()
	if len(selected) != 1 || selected[0] != 2 {
		t.Fatalf("selection = %v, want [2]", selected)
	}

	w.TogglePhoto(2)
	w.TogglePhoto(2)
	if got := w.SelectedPhotos(); len(got) != 1 {
		t.Fatalf("double toggle must not duplicate, got %v", got)
	}
}

func TestWizardEmails(t *testing.T) {
	w := NewWizard("Me@Example.com")

	if err := w.AddEmail("  Bob@Example.COM "); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := w.AddEmail("bob@example.com"); err != nil {
		t.Fatalf("duplicate add should be a no-op, got %v", err)
	}
	if got := w.Emails(); len(got) != 1 || got[0] != "bob@example.com" {
		t.Fatalf("emails = %v, want normalized single entry", got)
	}

	if err := w.AddEmail("me@example.com"); err == nil {
		t.Fatal("inviting yourself must fail")
	}
	if err := w.AddEmail("not an email"); err == nil {
		t.Fatal("malformed email must fail")
	}
	if err := w.AddEmail("a@b"); err == nil {
		t.Fatal("email without dot in domain must fail")
	}

	w.RemoveEmail("BOB@example.com")
	if got := w.Emails(); len(got) != 0 {
		t.Fatalf("emails after remove = %v", got)
	}
}

func TestWizardPayloadAssembly(t *testing.T) {
	w := NewWizard("me@example.com")
	w.Title = "  Sunset Walks  "
	w.Description = "golden hour"
	w.SetCollaborative(true)
	w.TogglePhoto(3)
	w.TogglePhoto(5)
	w.AddEmail("bob@example.com")

	p := w.Payload()
	if p.Title != "Sunset Walks" {
		t.Errorf("title = %q", p.Title)
	}
	if !p.IsCollaborative || p.IsPrivate {
		t.Errorf("flags = private %v collaborative %v", p.IsPrivate, p.IsCollaborative)
	}
	if len(p.PhotoIDs) != 2 || p.PhotoIDs[0] != 3 || p.PhotoIDs[1] != 5 {
		t.Errorf("photoIds = %v", p.PhotoIDs)
	}
	if len(p.CollaboratorEmails) != 1 || p.CollaboratorEmails[0] != "bob@example.com" {
		t.Errorf("emails = %v", p.CollaboratorEmails)
	}
}

func TestWizardEditSeeding(t *testing.T) {
	existing := &Collection{
		ID:              9,
		Title:           "Sunset Walks",
		Description:     "golden hour",
		IsPrivate:       false,
		IsCollaborative: true,
		Photos: []CollectionPhoto{
			{PhotoID: 3}, {PhotoID: 5},
		},
	}

	w := NewEditWizard("me@example.com", existing)
	if w.EditingID() != 9 {
		t.Fatalf("editing id = %d", w.EditingID())
	}
	if w.Title != "Sunset Walks" || !w.IsCollaborative() {
		t.Fatal("fields not seeded from existing collection")
	}
	if got := w.SelectedPhotos(); len(got) != 2 {
		t.Fatalf("seeded photos = %v", got)
	}

	// Membership edits are a replace-set: the update carries the whole set.
	w.TogglePhoto(5)
	w.TogglePhoto(8)
	up := w.UpdatePayload()
	if up.PhotoIDs == nil {
		t.Fatal("update must carry photoIds")
	}
	if got := *up.PhotoIDs; len(got) != 2 || got[0] != 3 || got[1] != 8 {
		t.Fatalf("update photoIds = %v, want [3 8]", got)
	}
}

func TestWizardDeleteConfirmation(t *testing.T) {
	w := NewEditWizard("me@example.com", &Collection{ID: 9, Title: "Sunset Walks"})

	cases := []struct {
		typed string
		want  bool
	}{
		{"Sunset Walks", true},
		{"sunset walks", false},
		{"Sunset Walks ", false},
		{"", false},
		{"Sunset", false},
	}
	for _, tc := range cases {
		if got := w.ConfirmDelete(tc.typed); got != tc.want {
			t.Errorf("ConfirmDelete(%q) = %v, want %v", tc.typed, got, tc.want)
		}
	}

	// A create-mode wizard has nothing to delete.
	if NewWizard("me@example.com").ConfirmDelete("") {
		t.Fatal("create-mode wizard must never confirm a delete")
	}
}
