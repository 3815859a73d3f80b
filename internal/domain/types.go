package domain

type ChatKind string

const (
	ChatKindDirect  ChatKind = "DIRECT"
	ChatKindGroup   ChatKind = "GROUP"
	ChatKindChannel ChatKind = "CHANNEL"
)

type MessageType string

const (
	MessageTypeText     MessageType = "TEXT"
	MessageTypeImage    MessageType = "IMAGE"
	MessageTypeVideo    MessageType = "VIDEO"
	MessageTypeAudio    MessageType = "AUDIO"
	MessageTypeDocument MessageType = "DOCUMENT"
	MessageTypeLocation MessageType = "LOCATION"
	MessageTypeContact  MessageType = "CONTACT"
	MessageTypeVoice    MessageType = "VOICE_MESSAGE"
	MessageTypeSystem   MessageType = "SYSTEM"
)

// MessageStatus is the delivery-progress state of a message.
//
// The happy path is strictly monotonic: SENDING -> SENT -> DELIVERED ->
// READ. FAILED branches off SENDING and, like READ, is terminal.
type MessageStatus string

const (
	StatusSending   MessageStatus = "SENDING"
	StatusSent      MessageStatus = "SENT"
	StatusDelivered MessageStatus = "DELIVERED"
	StatusRead      MessageStatus = "READ"
	StatusFailed    MessageStatus = "FAILED"
)

// Rank returns the position of s in the monotonic delivery sequence.
// FAILED is outside the sequence and ranks below everything.
func (s MessageStatus) Rank() int {
	switch s {
	case StatusSending:
		return 0
	case StatusSent:
		return 1
	case StatusDelivered:
		return 2
	case StatusRead:
		return 3
	default:
		return -1
	}
}

// CanTransition reports whether a transition from s to target is legal.
// Terminal states (READ, FAILED) accept nothing; FAILED is reachable
// from SENDING only; otherwise the sequence moves forward only.
func (s MessageStatus) CanTransition(target MessageStatus) bool {
	if s == StatusRead || s == StatusFailed {
		return false
	}
	if target == StatusFailed {
		return s == StatusSending
	}
	return target.Rank() > s.Rank()
}
