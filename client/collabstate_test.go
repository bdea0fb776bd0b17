package client

import "testing"

func TestCollabTransitions(t *testing.T) {
	cases := []struct {
		from   CollabStatus
		event  CollabEvent
		to     CollabStatus
		wantOK bool
	}{
		{StatusNonMember, EventInvite, StatusPending, true},
		{StatusNonMember, EventSelfRequest, StatusPending, true},
		{StatusNonMember, EventAcceptCode, StatusNonMember, false},
		{StatusPending, EventAcceptCode, StatusAccepted, true},
		{StatusPending, EventRejectCode, StatusPending, true},
		{StatusPending, EventResend, StatusPending, true},
		{StatusPending, EventRemove, StatusRemoved, true},
		{StatusPending, EventOwnerApprove, StatusAccepted, true},
		{StatusPending, EventOwnerDecline, StatusDeclined, true},
		{StatusAccepted, EventRemove, StatusRemoved, true},
		{StatusAccepted, EventAcceptCode, StatusAccepted, false},
		{StatusDeclined, EventRemove, StatusDeclined, false},
		{StatusRemoved, EventInvite, StatusRemoved, false},
	}

	for _, tc := range cases {
		got, ok := NextCollabStatus(tc.from, tc.event)
		if ok != tc.wantOK || got != tc.to {
			t.Errorf("%s + %s = (%s, %v), want (%s, %v)",
				tc.from, tc.event, got, ok, tc.to, tc.wantOK)
		}
	}
}

func TestRejectedCodeNeverDemotes(t *testing.T) {
	// A wrong or expired code leaves the invitation pending; it never
	// becomes declined.
	got, ok := NextCollabStatus(StatusPending, EventRejectCode)
	if !ok || got != StatusPending {
		t.Fatalf("reject from pending = (%s, %v), want (pending, true)", got, ok)
	}
}

func TestCanSelfRequest(t *testing.T) {
	cases := []struct {
		name       string
		collection Collection
		userID     uint
		want       bool
	}{
		{"public collaborative", Collection{UserID: 1, IsCollaborative: true}, 2, true},
		{"owner cannot self-request", Collection{UserID: 1, IsCollaborative: true}, 1, false},
		{"private collaborative", Collection{UserID: 1, IsCollaborative: true, IsPrivate: true}, 2, false},
		{"public non-collaborative", Collection{UserID: 1}, 2, false},
	}

	for _, tc := range cases {
		if got := CanSelfRequest(&tc.collection, tc.userID); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
