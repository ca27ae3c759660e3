package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name   string
		in     string
		want   float64
		wantOK bool
	}

	tests := []testCase{
		{
			name:   "PlainInteger",
			in:     "1234",
			want:   1234,
			wantOK: true,
		},
		{
			name:   "YenSignAndThousandsSeparator",
			in:     "¥1,234",
			want:   1234,
			wantOK: true,
		},
		{
			name:   "FullWidthYenSign",
			in:     "￥500",
			want:   500,
			wantOK: true,
		},
		{
			name:   "FullWidthDigitsWithUnit",
			in:     "１，９８０円",
			want:   1980,
			wantOK: true,
		},
		{
			name:   "Decimal",
			in:     "1234.5",
			want:   1234.5,
			wantOK: true,
		},
		{
			name:   "SurroundingWhitespace",
			in:     "  500  ",
			want:   500,
			wantOK: true,
		},
		{
			name:   "Zero",
			in:     "0",
			want:   0,
			wantOK: true,
		},
		{
			name:   "Negative",
			in:     "-100",
			wantOK: false,
		},
		{
			name:   "Empty",
			in:     "",
			wantOK: false,
		},
		{
			name:   "SymbolsOnly",
			in:     "¥円",
			wantOK: false,
		},
		{
			name:   "NotANumber",
			in:     "たまご",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := receipt.ParseAmount(tt.in)

			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	type testCase struct {
		name string
		in   string
		want int
	}

	tests := []testCase{
		{name: "Plain", in: "3", want: 3},
		{name: "FullWidth", in: "２", want: 2},
		{name: "CounterSuffixKo", in: "2個", want: 2},
		{name: "CounterSuffixTen", in: "5点", want: 5},
		{name: "EmptyDefaultsToOne", in: "", want: 1},
		{name: "ZeroClampedToOne", in: "0", want: 1},
		{name: "NegativeClampedToOne", in: "-2", want: 1},
		{name: "GarbageDefaultsToOne", in: "x", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, receipt.ParseQuantity(tt.in))
		})
	}
}
