package domain

import (
	"fmt"
	"strings"
)

type PayloadKind string

const (
	PayloadKindText     PayloadKind = "text"
	PayloadKindImage    PayloadKind = "image"
	PayloadKindVideo    PayloadKind = "video"
	PayloadKindAudio    PayloadKind = "audio"
	PayloadKindDocument PayloadKind = "document"
	PayloadKindLocation PayloadKind = "location"
	PayloadKindContact  PayloadKind = "contact"
	PayloadKindVoice    PayloadKind = "voice"
	PayloadKindSystem   PayloadKind = "system"
)

// Payload is the message body as a kind-tagged union. Body doubles as
// the plain text for text/system payloads and the caption elsewhere;
// the remaining fields are populated per kind.
type Payload struct {
	Kind         PayloadKind `json:"kind"`
	Body         string      `json:"body,omitempty"`
	URI          string      `json:"uri,omitempty"`
	Filename     string      `json:"filename,omitempty"`
	Latitude     float64     `json:"latitude,omitempty"`
	Longitude    float64     `json:"longitude,omitempty"`
	Address      string      `json:"address,omitempty"`
	ContactName  string      `json:"contact_name,omitempty"`
	ContactPhone string      `json:"contact_phone,omitempty"`
	DurationSec  int         `json:"duration_sec,omitempty"`
}

func TextPayload(body string) Payload {
	return Payload{Kind: PayloadKindText, Body: body}
}

func SystemPayload(body string) Payload {
	return Payload{Kind: PayloadKindSystem, Body: body}
}

func ImagePayload(uri, caption string) Payload {
	return Payload{Kind: PayloadKindImage, URI: uri, Body: caption}
}

func VideoPayload(uri, caption string) Payload {
	return Payload{Kind: PayloadKindVideo, URI: uri, Body: caption}
}

func AudioPayload(uri string) Payload {
	return Payload{Kind: PayloadKindAudio, URI: uri}
}

func DocumentPayload(uri, filename string) Payload {
	return Payload{Kind: PayloadKindDocument, URI: uri, Filename: filename}
}

func LocationPayload(lat, lng float64, address string) Payload {
	return Payload{Kind: PayloadKindLocation, Latitude: lat, Longitude: lng, Address: address}
}

func ContactPayload(name, phone string) Payload {
	return Payload{Kind: PayloadKindContact, ContactName: name, ContactPhone: phone}
}

func VoicePayload(uri string, durationSec int) Payload {
	return Payload{Kind: PayloadKindVoice, URI: uri, DurationSec: durationSec}
}

// MessageType maps the payload kind onto the message type enum.
func (p Payload) MessageType() MessageType {
	switch p.Kind {
	case PayloadKindImage:
		return MessageTypeImage
	case PayloadKindVideo:
		return MessageTypeVideo
	case PayloadKindAudio:
		return MessageTypeAudio
	case PayloadKindDocument:
		return MessageTypeDocument
	case PayloadKindLocation:
		return MessageTypeLocation
	case PayloadKindContact:
		return MessageTypeContact
	case PayloadKindVoice:
		return MessageTypeVoice
	case PayloadKindSystem:
		return MessageTypeSystem
	default:
		return MessageTypeText
	}
}

// IsEmpty reports whether the payload carries no content at all.
func (p Payload) IsEmpty() bool {
	switch p.Kind {
	case PayloadKindText, PayloadKindSystem, "":
		return strings.TrimSpace(p.Body) == ""
	case PayloadKindLocation:
		return p.Latitude == 0 && p.Longitude == 0 && p.Address == ""
	case PayloadKindContact:
		return p.ContactName == "" && p.ContactPhone == ""
	default:
		return p.URI == ""
	}
}

// Preview returns the short type-specific string shown in chat lists
// and reply quotes.
func (p Payload) Preview() string {
	switch p.Kind {
	case PayloadKindImage:
		if p.Body != "" {
			return "📷 " + p.Body
		}
		return "📷 Photo"
	case PayloadKindVideo:
		if p.Body != "" {
			return "🎥 " + p.Body
		}
		return "🎥 Video"
	case PayloadKindAudio:
		return "🎵 Audio"
	case PayloadKindVoice:
		return "🎤 Voice message"
	case PayloadKindDocument:
		if p.Filename != "" {
			return "📄 " + p.Filename
		}
		return "📄 Document"
	case PayloadKindLocation:
		if p.Address != "" {
			return "📍 " + p.Address
		}
		return "📍 Location"
	case PayloadKindContact:
		if p.ContactName != "" {
			return "👤 " + p.ContactName
		}
		return "👤 Contact"
	default:
		return p.Body
	}
}

// Plain returns the human-readable text used when copying a message:
// structural encoding stripped, falling back to the richest text the
// payload carries.
func (p Payload) Plain() string {
	switch p.Kind {
	case PayloadKindImage, PayloadKindVideo:
		if p.Body != "" {
			return p.Body
		}
		return p.URI
	case PayloadKindAudio, PayloadKindVoice:
		return p.URI
	case PayloadKindDocument:
		return p.Filename
	case PayloadKindLocation:
		if p.Address != "" {
			return p.Address
		}
		return fmt.Sprintf("%.6f, %.6f", p.Latitude, p.Longitude)
	case PayloadKindContact:
		if p.ContactPhone != "" {
			return p.ContactName + ": " + p.ContactPhone
		}
		return p.ContactName
	default:
		return p.Body
	}
}
