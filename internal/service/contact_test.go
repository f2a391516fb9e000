package service

import (
	"moviemart-checkout/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactValidator_Valid(t *testing.T) {
	v := NewContactValidator()
	c := &model.Contact{
		Name:  "  Priya Sharma ",
		Email: "priya@example.com ",
		Phone: "+91 98765 43210",
	}

	require.NoError(t, v.Validate(c))
	assert.Equal(t, "Priya Sharma", c.Name)
	assert.Equal(t, "priya@example.com", c.Email)
}

func TestContactValidator_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		contact    model.Contact
		wantFields map[string]string
	}{
		{
			name:    "bad email",
			contact: model.Contact{Name: "Priya", Email: "abc", Phone: "9876543210"},
			wantFields: map[string]string{
				"email": "Please enter a valid email address",
			},
		},
		{
			name:    "short phone",
			contact: model.Contact{Name: "Priya", Email: "priya@example.com", Phone: "98765"},
			wantFields: map[string]string{
				"phone": "Please enter a valid phone number (at least 10 digits)",
			},
		},
		{
			name:    "blank name is trimmed to empty",
			contact: model.Contact{Name: "   ", Email: "priya@example.com", Phone: "9876543210"},
			wantFields: map[string]string{
				"name": "Please enter your name",
			},
		},
		{
			name:    "everything missing",
			contact: model.Contact{},
			wantFields: map[string]string{
				"name":  "Please enter your name",
				"email": "Please enter a valid email address",
				"phone": "Please enter a valid phone number (at least 10 digits)",
			},
		},
	}

	v := NewContactValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.contact
			err := v.Validate(&c)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantFields, validationErr.Fields)
		})
	}
}
