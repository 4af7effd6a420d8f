package customers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"long local part keeps edges", "alice.wonder@example.com", "al********er@example.com"},
		{"five char local part", "alice@example.com", "al*ce@example.com"},
		{"short local part keeps first char", "ab@example.com", "a*@example.com"},
		{"single char local part", "a@example.com", "a@example.com"},
		{"four char local part", "abcd@example.com", "a***@example.com"},
		{"domain never masked", "someone@sub.example.co.in", "so***ne@sub.example.co.in"},
		{"no at sign passes through", "not-an-email", "not-an-email"},
		{"empty passes through", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MaskEmail(tt.email))
		})
	}
}

func TestMaskPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"ten digits", "9876543210", "987****210"},
		{"with country code", "+919876543210", "+919****43210"},
		{"six digits minimum", "123456", "1****6"},
		{"five digits unmasked", "12345", "12345"},
		{"empty unmasked", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MaskPhone(tt.phone))
		})
	}
}

func TestMaskPhonePreservesLengthAndEdges(t *testing.T) {
	phone := "9876543210"
	masked := MaskPhone(phone)
	require.Len(t, masked, len(phone))
	require.Equal(t, phone[:3], masked[:3])
	require.Equal(t, phone[7:], masked[7:])
	require.Equal(t, "****", masked[3:7])
}
