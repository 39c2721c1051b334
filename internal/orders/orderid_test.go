package orders

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveID(t *testing.T) {
	at := time.UnixMilli(1700000001234)

	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"international", "+8801712345678", "BN-5678-1234"},
		{"formatted", "0171-895 2852", "BN-2852-1234"},
		{"short phone", "+123", "BN-123-1234"},
		{"no digits", "n/a", "BN--1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveID(tt.phone, at))
		})
	}
}

func TestDeriveIDPhoneSegmentProperty(t *testing.T) {
	// the phone segment is always the last 4 digits of the normalized number
	re := regexp.MustCompile(`^BN-5678-\d{4}$`)
	id := DeriveID("+8801712345678", time.Now())
	require.Regexp(t, re, id)
}

func TestDeriveIDTimeSuffixChanges(t *testing.T) {
	a := DeriveID("+8801712345678", time.UnixMilli(1700000000001))
	b := DeriveID("+8801712345678", time.UnixMilli(1700000000002))
	assert.NotEqual(t, a, b)
}

func TestLastN(t *testing.T) {
	assert.Equal(t, "5678", lastN("12345678", 4))
	assert.Equal(t, "123", lastN("123", 4))
	assert.Equal(t, "", lastN("", 4))
}
