package sanitizer

import "testing"

func TestClampDiscount(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "negative clamps to zero", input: -5, want: 0},
		{name: "zero stays", input: 0, want: 0},
		{name: "in range stays", input: 37.5, want: 37.5},
		{name: "hundred stays", input: 100, want: 100},
		{name: "above hundred clamps", input: 150, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampDiscount(tt.input)
			if got != tt.want {
				t.Errorf("ClampDiscount(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeCharge(t *testing.T) {
	if got := NormalizeCharge(-10); got != 0 {
		t.Errorf("NormalizeCharge(-10) = %v, want 0", got)
	}
	if got := NormalizeCharge(25.5); got != 25.5 {
		t.Errorf("NormalizeCharge(25.5) = %v, want 25.5", got)
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{1.005, 1.0},
		{2.674, 2.67},
		{10.0, 10.0},
		{0.125, 0.13},
	}

	for _, tt := range tests {
		got := RoundMoney(tt.input)
		if got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
