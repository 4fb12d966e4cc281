package utils

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"  spaced  ", "spaced"},
		{"<b>bold</b> text", "bold text"},
		{"<script>alert(1)</script>hi", "hi"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"&lt;i&gt;x&lt;/i&gt;", "x"},
	}
	for _, tt := range tests {
		if got := SanitizeText(tt.in); got != tt.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleFromPrompt(t *testing.T) {
	got := TitleFromPrompt("Create a customer feedback form with rating and comments")
	if got != "Create a customer feedback form" {
		t.Errorf("TitleFromPrompt = %q", got)
	}
	if got := TitleFromPrompt("Signup"); got != "Signup" {
		t.Errorf("TitleFromPrompt short = %q", got)
	}
}

func TestGenerateFieldName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Phone Number", "phone_number"},
		{"first-name", "first_name"},
		{"Número de teléfono", "numero_de_telefono"},
		{"E-mail address!", "e_mail_address"},
		{"2nd choice", "field_2nd_choice"},
		{"???", "field"},
		{"already_ok", "already_ok"},
	}
	for _, tt := range tests {
		got := GenerateFieldName(tt.in)
		if got != tt.want {
			t.Errorf("GenerateFieldName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if !IsValidFieldName(got) {
			t.Errorf("GenerateFieldName(%q) = %q is not a valid field name", tt.in, got)
		}
	}
}

func TestIsValidFieldName(t *testing.T) {
	valid := []string{"name", "_x", "a1_b2", "Email"}
	invalid := []string{"", "1a", "first name", "first-name", "é"}
	for _, n := range valid {
		if !IsValidFieldName(n) {
			t.Errorf("IsValidFieldName(%q) = false, want true", n)
		}
	}
	for _, n := range invalid {
		if IsValidFieldName(n) {
			t.Errorf("IsValidFieldName(%q) = true, want false", n)
		}
	}
}
