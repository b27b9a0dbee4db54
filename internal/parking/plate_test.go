package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPlate(t *testing.T) {
	testCases := []struct {
		plate string
		valid bool
	}{
		{"ABC-123", true},
		{"ABC123", true},
		{"AB-123", false},
		{"ABCD-123", false},
		{"abc-123", false},
		{"ABC-12", false},
		{"ABC-1234", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.plate, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidPlate(tc.plate))
		})
	}
}
