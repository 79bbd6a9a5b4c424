package model

import "time"

// Room types used by the setup templates. RoomTypeHouse marks the entry
// room shown on the home screen; each user should have exactly one.
const (
	RoomTypeHouse       = "house"
	RoomTypeBedroom     = "bedroom"
	RoomTypeBathroom    = "bathroom"
	RoomTypeKitchen     = "kitchen"
	RoomTypeLivingRoom  = "livingroom"
	RoomTypeLaundryRoom = "laundryroom"
	RoomTypeStorageRoom = "storageroom"
)

// Layout is the room's position on the blueprint grid. Opaque to the core;
// persisted for the editor.
type Layout struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Room struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	RoomType    string            `json:"room_type"`
	Decor       map[string]string `json:"decor"`
	Layout      *Layout           `json:"layout,omitempty"`
	Floor       int               `json:"floor"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
