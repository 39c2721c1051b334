package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.Error(t, Name(""))
	assert.Error(t, Name("Al"))
	assert.NoError(t, Name("Ali"))
	assert.NoError(t, Name("Rahim Uddin"))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"name@example.com", true},
		{"a@b.co", true},
		{"name+tag@example.co.uk", true},
		{"name@example", false},
		{"@example.com", false},
		{"name@.com", false},
		{"name example.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Email(tt.email)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"+8801712345678", true},
		{"8801712345678", true},
		{"+880 171 234 5678", true}, // whitespace stripped before matching
		{"+44", true},               // two digits is the minimum
		{"+0171234", false},         // no leading zero
		{"0171234567", false},
		{"+8", false},
		{"+88017-12345678", false}, // only whitespace is stripped
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := Phone(tt.phone)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	assert.Error(t, Address("short"))
	assert.Error(t, Address("         123       ")) // 3 chars after trim
	assert.NoError(t, Address("House 7, Road 3, Dhaka"))
}

func TestCheckoutPipelineOrder(t *testing.T) {
	// every field invalid: the first rule in the pipeline must win
	err := Checkout(Contact{}, 0)
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "name", ferr.Field)

	err = Checkout(Contact{Name: "Rahim", Email: "bad"}, 0)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "email", ferr.Field)

	err = Checkout(Contact{Name: "Rahim", Email: "r@x.com", Phone: "0123"}, 0)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "phone", ferr.Field)

	err = Checkout(Contact{Name: "Rahim", Email: "r@x.com", Phone: "+8801712345678", Address: "short"}, 0)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "address", ferr.Field)

	err = Checkout(Contact{Name: "Rahim", Email: "r@x.com", Phone: "+8801712345678", Address: "House 7, Road 3, Dhaka"}, 0)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "cart", ferr.Field)

	assert.NoError(t, Checkout(Contact{Name: "Rahim", Email: "r@x.com", Phone: "+8801712345678", Address: "House 7, Road 3, Dhaka"}, 2))
}

func TestSignup(t *testing.T) {
	assert.NoError(t, Signup("Rahim", "r@x.com", "+8801712345678"))

	var ferr *FieldError
	err := Signup("R", "r@x.com", "+8801712345678")
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "name", ferr.Field)

	err = Signup("Rahim", "r@x.com", "012")
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "phone", ferr.Field)
}
