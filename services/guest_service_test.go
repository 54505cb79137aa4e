package services

import (
	"testing"

	"hotel-frontdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestSaveAssignsIDAndDefaults(t *testing.T) {
	f := newFixture(t)

	g, err := f.guests.Save(f.ctx, models.Guest{
		Name:     "  Asha  ",
		Phone:    "9876543210",
		IDNumber: "123456789012",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "Asha", g.Name)
	assert.Equal(t, models.GenderMale, g.Gender)
	assert.Equal(t, models.IDTypeAadhar, g.IDType)
}

func TestGuestUpsertKeepsOrGrowsLength(t *testing.T) {
	f := newFixture(t)
	first := f.addGuest(t, "Asha")
	f.addGuest(t, "Ravi")

	first.Name = "Asha Rao"
	_, err := f.guests.Save(f.ctx, first)
	require.NoError(t, err)

	list, err := f.guests.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2, "existing id replaces in place")
	assert.Equal(t, "Asha Rao", list[0].Name)

	f.addGuest(t, "Meera")
	list, err = f.guests.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3, "new id adds exactly one")
}

func TestGuestValidationMessages(t *testing.T) {
	tests := []struct {
		name  string
		guest models.Guest
		field string
		msg   string
	}{
		{"missing name", models.Guest{Phone: "9876543210", IDNumber: "X1"}, "name", "Name is required"},
		{"missing phone", models.Guest{Name: "A", IDNumber: "X1"}, "phone", "Phone number is required"},
		{"short phone", models.Guest{Name: "A", Phone: "12345", IDNumber: "X1"}, "phone", "Phone must be 10 digits"},
		{"letters in phone", models.Guest{Name: "A", Phone: "98765abcde", IDNumber: "X1"}, "phone", "Phone must be 10 digits"},
		{"missing id number", models.Guest{Name: "A", Phone: "9876543210"}, "idNumber", "ID number is required"},
		{"short aadhar", models.Guest{Name: "A", Phone: "9876543210", IDType: models.IDTypeAadhar, IDNumber: "12345"}, "idNumber", "Aadhar Card must be 12 digits"},
		{"unknown gender", models.Guest{Name: "A", Phone: "9876543210", Gender: "X", IDType: models.IDTypeOther, IDNumber: "1"}, "gender", "Gender must be Male, Female or Other"},
		{"unknown id type", models.Guest{Name: "A", Phone: "9876543210", IDType: "Library Card", IDNumber: "1"}, "idType", "Unknown ID type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.guests.Save(f.ctx, tt.guest)
			ve, ok := IsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.msg, ve.Fields[tt.field])

			list, err := f.guests.List(f.ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestPassportNumbersAreFreeForm(t *testing.T) {
	assert.NoError(t, ValidateGuest(models.Guest{Name: "A", Phone: "9876543210", IDType: models.IDTypePassport, IDNumber: "Z-99"}))
}

func TestGuestGetAndDelete(t *testing.T) {
	f := newFixture(t)
	g := f.addGuest(t, "Asha")

	got, err := f.guests.Get(f.ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)

	require.NoError(t, f.guests.Delete(f.ctx, g.ID))
	_, err = f.guests.Get(f.ctx, g.ID)
	assert.ErrorIs(t, err, ErrGuestNotFound)
	assert.NoError(t, f.guests.Delete(f.ctx, g.ID), "deleting twice is fine")
}

func TestGuestSearch(t *testing.T) {
	f := newFixture(t)
	asha := validGuest("Asha Rao")
	asha.Email = "ASHA@example.com"
	asha.Phone = "9000000001"
	_, err := f.guests.Save(f.ctx, asha)
	require.NoError(t, err)
	ravi := validGuest("Ravi")
	ravi.IDNumber = "RV-777"
	_, err = f.guests.Save(f.ctx, ravi)
	require.NoError(t, err)

	for term, want := range map[string]int{
		"":            2,
		"asha":        1,
		"example.COM": 1,
		"9000000001":  1,
		"RV-7":        1,
		"nobody":      0,
	} {
		got, err := f.guests.Search(f.ctx, term)
		require.NoError(t, err)
		assert.Len(t, got, want, "term %q", term)
	}
}
