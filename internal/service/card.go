package service

import "strings"

// Card input formatting. These mirror the keystroke formatters applied on
// the payment form before validation runs.

// FormatCardNumber keeps only digits and groups them into blocks of 4
// separated by spaces, capped at 16 digits (19 characters formatted).
func FormatCardNumber(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// FormatExpiry keeps only digits and inserts the slash after the second
// one, yielding at most the MM/YY shape.
func FormatExpiry(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) >= 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

// FormatCVV keeps only digits, capped at 4.
func FormatCVV(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	return digits
}

// MaskCardNumber reduces a card number to its last four digits for display.
// Raw card data never appears outside the pipeline's transient storage.
func MaskCardNumber(number string) string {
	if number == "" {
		return ""
	}
	cleaned := stripSpaces(number)
	if len(cleaned) > 4 {
		cleaned = cleaned[len(cleaned)-4:]
	}
	return "**** **** **** " + cleaned
}

// CardBrand guesses the card network from the leading digit, for display
// alongside the number field.
func CardBrand(number string) string {
	cleaned := stripSpaces(number)
	switch {
	case strings.HasPrefix(cleaned, "4"):
		return "visa"
	case strings.HasPrefix(cleaned, "5"), strings.HasPrefix(cleaned, "2"):
		return "mastercard"
	case strings.HasPrefix(cleaned, "3"):
		return "amex"
	default:
		return "card"
	}
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
