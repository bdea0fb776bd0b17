package client

// Membership status of one user relative to one collection, mirrored
// client-side so the UI can gate actions without a round trip.
type CollabStatus string

const (
	StatusNonMember CollabStatus = "non_member"
	StatusPending   CollabStatus = "pending"
	StatusAccepted  CollabStatus = "accepted"
	StatusDeclined  CollabStatus = "declined"
	StatusRemoved   CollabStatus = "removed"
)

type CollabEvent string

const (
	EventInvite        CollabEvent = "invite"         // owner invites by email
	EventAcceptCode    CollabEvent = "accept_code"    // invitee redeems a valid code
	EventRejectCode    CollabEvent = "reject_code"    // wrong or expired code
	EventResend        CollabEvent = "resend"         // owner rotates and redelivers
	EventRemove        CollabEvent = "remove"         // owner deletes the roster entry
	EventSelfRequest   CollabEvent = "self_request"   // user asks to join
	EventOwnerApprove  CollabEvent = "owner_approve"  // owner accepts a self-request
	EventOwnerDecline  CollabEvent = "owner_decline"  // owner declines a self-request
)

var collabTransitions = map[CollabStatus]map[CollabEvent]CollabStatus{
	StatusNonMember: {
		EventInvite:      StatusPending,
		EventSelfRequest: StatusPending,
	},
	StatusPending: {
		EventAcceptCode:   StatusAccepted,
		EventRejectCode:   StatusPending, // a failed attempt never demotes the invite
		EventResend:       StatusPending,
		EventRemove:       StatusRemoved,
		EventOwnerApprove: StatusAccepted,
		EventOwnerDecline: StatusDeclined,
	},
	StatusAccepted: {
		EventRemove: StatusRemoved,
	},
}

// NextCollabStatus applies one event to a status. ok is false when the event
// is not legal from that status; the status is returned unchanged so callers
// can use it directly.
func NextCollabStatus(from CollabStatus, event CollabEvent) (CollabStatus, bool) {
	to, ok := collabTransitions[from][event]
	if !ok {
		return from, false
	}
	return to, true
}

// CanCollabEvent reports whether an event is legal from a status.
func CanCollabEvent(from CollabStatus, event CollabEvent) bool {
	_, ok := collabTransitions[from][event]
	return ok
}

// CanSelfRequest encodes the access-request policy: only public collaborative
// collections accept self-initiated requests, and never from their owner.
func CanSelfRequest(c *Collection, userID uint) bool {
	return c.IsCollaborative && !c.IsPrivate && c.UserID != userID
}
