package service

import "testing"

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full number", "4111111111111111", "4111 1111 1111 1111"},
		{"already grouped", "4111 1111 1111 1111", "4111 1111 1111 1111"},
		{"partial entry", "41111", "4111 1"},
		{"single group", "4111", "4111"},
		{"empty", "", ""},
		{"overlong input capped", "41111111111111112222", "4111 1111 1111 1111"},
		{"non-digits dropped", "4111-1111a1111☃1111", "4111 1111 1111 1111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCardNumber(tt.input); got != tt.want {
				t.Errorf("FormatCardNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"four digits", "1225", "12/25"},
		{"slash already present", "12/25", "12/25"},
		{"partial month", "1", "1"},
		{"month only", "12", "12/"},
		{"extra digits dropped", "122567", "12/25"},
		{"non-digits dropped", "12-25", "12/25"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExpiry(tt.input); got != tt.want {
				t.Errorf("FormatExpiry(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatCVV(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{"12345", "1234"},
		{"1a2b3c", "123"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatCVV(tt.input); got != tt.want {
			t.Errorf("FormatCVV(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"grouped number", "4111 1111 1111 1234", "**** **** **** 1234"},
		{"raw number", "4111111111111234", "**** **** **** 1234"},
		{"short number", "1234", "**** **** **** 1234"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskCardNumber(tt.input); got != tt.want {
				t.Errorf("MaskCardNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCardBrand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4111111111111111", "visa"},
		{"5500000000000004", "mastercard"},
		{"2223000048400011", "mastercard"},
		{"340000000000009", "amex"},
		{"6011000000000004", "card"},
		{"", "card"},
	}

	for _, tt := range tests {
		if got := CardBrand(tt.input); got != tt.want {
			t.Errorf("CardBrand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
