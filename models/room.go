package models

// RoomNumber is the identity of a Room ("101", "102", ...).
type RoomNumber string

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomDeluxe RoomType = "Deluxe"
	RoomSuite  RoomType = "Suite"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

type Room struct {
	RoomNumber    RoomNumber `json:"roomNumber" validate:"required"`
	Type          RoomType   `json:"type" validate:"oneof=Single Double Deluxe Suite"`
	Capacity      int        `json:"capacity" validate:"gte=0"`
	PricePerNight float64    `json:"pricePerNight" validate:"gte=0"`
	Status        RoomStatus `json:"status" validate:"oneof=Available Occupied Maintenance"`
}

// DefaultRooms is the inventory written on the first read of an empty room collection.
func DefaultRooms() []Room {
	numbers := []RoomNumber{"101", "102", "103", "104", "105", "106", "107", "108"}
	rooms := make([]Room, 0, len(numbers))
	for _, n := range numbers {
		rooms = append(rooms, Room{
			RoomNumber:    n,
			Type:          RoomDouble,
			Capacity:      2,
			PricePerNight: 2000,
			Status:        RoomAvailable,
		})
	}
	return rooms
}
