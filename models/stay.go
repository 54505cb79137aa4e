package models

import (
	"math"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPartial   PaymentStatus = "Partial"
	PaymentCompleted PaymentStatus = "Completed"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "Cash"
	PaymentCard  PaymentMethod = "Card"
	PaymentUPI   PaymentMethod = "UPI"
	PaymentOther PaymentMethod = "Other"
)

type StayStatus string

const (
	StayActive    StayStatus = "Active"
	StayCompleted StayStatus = "Completed"
	// StayCancelled is a valid stored value but no operation produces it.
	StayCancelled StayStatus = "Cancelled"
)

type Stay struct {
	ID            string        `json:"id"`
	GuestID       GuestID       `json:"guestId"`
	RoomNumber    RoomNumber    `json:"roomNumber"`
	CheckInDate   time.Time     `json:"checkInDate"`
	CheckOutDate  *time.Time    `json:"checkOutDate"`
	Adults        int           `json:"adults"`
	Children      int           `json:"children"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        StayStatus    `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (s Stay) IsActive() bool { return s.Status == StayActive }

// Nights returns the displayed length of the stay, or 0 while it is still active.
func (s Stay) Nights() int {
	if s.CheckOutDate == nil {
		return 0
	}
	return StayDuration(s.CheckInDate, *s.CheckOutDate)
}

// StayDuration is ceil((out - in) / 1 day) with a floor of one day.
func StayDuration(checkIn, checkOut time.Time) int {
	days := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// StayWithGuest is a stay left-joined with its guest. Guest is nil when the
// reference dangles; GuestName then carries UnknownGuestName.
type StayWithGuest struct {
	Stay
	Guest     *Guest `json:"guest"`
	GuestName string `json:"guestName"`
	Duration  *int   `json:"duration,omitempty"`
}
