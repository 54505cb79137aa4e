package models

// GuestID identifies a Guest. Stays reference it without any enforced foreign key.
type GuestID string

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type IDType string

const (
	IDTypeAadhar         IDType = "Aadhar Card"
	IDTypePassport       IDType = "Passport"
	IDTypeDrivingLicense IDType = "Driving License"
	IDTypeVoterID        IDType = "Voter ID"
	IDTypePAN            IDType = "PAN Card"
	IDTypeOther          IDType = "Other"
)

// UnknownGuestName is shown wherever a stay points at a guest that no longer exists.
const UnknownGuestName = "Unknown"

type Guest struct {
	ID       GuestID `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Gender   Gender  `json:"gender" validate:"oneof=Male Female Other"`
	Phone    string  `json:"phone" validate:"required,digits,len=10"`
	Email    string  `json:"email"`
	Address  string  `json:"address"`
	IDType   IDType  `json:"idType" validate:"oneof='Aadhar Card' Passport 'Driving License' 'Voter ID' 'PAN Card' Other"`
	IDNumber string  `json:"idNumber" validate:"required"`
	Notes    string  `json:"notes"`
}
