package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ana@example.com", "luis.perez+curso@uni.edu.ve", "a_b%c@sub.dominio.org"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{"", "sinarroba.com", "mayusculas@EXAMPLE.com", "x@y", "dos@@example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidIDCard(t *testing.T) {
	valid := []string{"123456", "27123456", "1234567890"}
	for _, idCard := range valid {
		if !IsValidIDCard(idCard) {
			t.Errorf("IsValidIDCard(%q) = false, want true", idCard)
		}
	}

	invalid := []string{"", "12345", "12345678901", "12a456", "27.123.456"}
	for _, idCard := range invalid {
		if IsValidIDCard(idCard) {
			t.Errorf("IsValidIDCard(%q) = true, want false", idCard)
		}
	}
}
