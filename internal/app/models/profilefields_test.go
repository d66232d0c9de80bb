package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProfileField(t *testing.T) {
	field, ok := LookupProfileField("guardianPhone")
	require.True(t, ok)
	assert.Equal(t, "Guardian Phone", field.Label)
	assert.Equal(t, "044-1234", field.Value(&StudentProfile{GuardianPhone: "044-1234"}))

	_, ok = LookupProfileField("email")
	assert.False(t, ok, "email is not a requestable field")
}

func TestIsFirstTimeUser(t *testing.T) {
	complete := StudentProfile{
		PhoneNumber: "1", DateOfBirth: "2", Gender: "3", FatherName: "4",
		MotherName: "5", Address: "6", City: "7", State: "8",
		PinCode: "9", GuardianPhone: "10",
	}

	tests := []struct {
		name  string
		blank int
		want  bool
	}{
		{name: "all fields filled", blank: 0, want: false},
		{name: "four empty stays gated", blank: 4, want: false},
		{name: "five empty unlocks direct editing", blank: 5, want: true},
		{name: "six empty is first-time", blank: 6, want: true},
		{name: "entirely blank profile", blank: 10, want: true},
	}

	clear := []func(*StudentProfile){
		func(p *StudentProfile) { p.PhoneNumber = "" },
		func(p *StudentProfile) { p.DateOfBirth = "" },
		func(p *StudentProfile) { p.Gender = "" },
		func(p *StudentProfile) { p.FatherName = "" },
		func(p *StudentProfile) { p.MotherName = "" },
		func(p *StudentProfile) { p.Address = "" },
		func(p *StudentProfile) { p.City = "" },
		func(p *StudentProfile) { p.State = "" },
		func(p *StudentProfile) { p.PinCode = "" },
		func(p *StudentProfile) { p.GuardianPhone = "" },
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := complete
			for i := 0; i < tt.blank; i++ {
				clear[i](&p)
			}
			assert.Equal(t, tt.blank, EmptyRequiredFieldCount(&p))
			assert.Equal(t, tt.want, IsFirstTimeUser(&p))
		})
	}
}
