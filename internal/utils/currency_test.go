package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "R$ 0,00"},
		{"0.5", "R$ 0,50"},
		{"25", "R$ 25,00"},
		{"127.8", "R$ 127,80"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"-25", "R$ -25,00"},
		{"-1234.56", "R$ -1.234,56"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := FormatBRL(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}
