package models

import "time"

const (
	RoomTypeSingle = "single"
	RoomTypeDouble = "double"
	RoomTypeTwin   = "twin"
	RoomTypeSuite  = "suite"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

const (
	// DefaultProjectType is stored when a project is created without a type.
	DefaultProjectType = "homestay"

	// DefaultSessionTTL is used when the session config omits a ttl.
	DefaultSessionTTL = 24 * time.Hour

	// NotificationQueueSize bounds the contact notification worker queue.
	NotificationQueueSize = 100

	// MaxRequestBodyBytes caps JSON request bodies.
	MaxRequestBodyBytes = 1 << 20
)

// Event types published on the in-process bus.
const (
	EventMessageReceived = "message_received"
	EventUserRegistered  = "user_registered"
	EventContentChanged  = "content_changed"
)

func IsValidRoomType(t string) bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTwin, RoomTypeSuite:
		return true
	}
	return false
}

func IsValidRoomStatus(s string) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}
