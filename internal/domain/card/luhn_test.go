package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name       string
		cardNumber string
		want       bool
	}{
		{name: "valid 16 digit card", cardNumber: "4539148803436467", want: true},
		{name: "last digit incremented", cardNumber: "4539148803436468", want: false},
		{name: "valid with spaces", cardNumber: "4539 1488 0343 6467", want: true},
		{name: "contains letter", cardNumber: "4539x48803436467", want: false},
		{name: "empty string", cardNumber: "", want: false},
		{name: "only spaces", cardNumber: "   ", want: false},
		{name: "valid visa test number", cardNumber: "4111111111111111", want: true},
		{name: "single zero", cardNumber: "0", want: true},
		{name: "negative sign", cardNumber: "-4539148803436467", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.cardNumber))
		})
	}
}
