package utils

import (
	"testing"

	"github.com/workhive/backend/internal/domain"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("len(otp) = %d, want 6", len(otp))
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("otp %q contains non-digit %q", otp, c)
			}
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	if got := len(GenerateRandomPassword(16)); got != 16 {
		t.Errorf("len = %d, want 16", got)
	}
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser(domain.RoleProfessional, "password", "example.com")
	if err != nil {
		t.Fatalf("GenerateRandomUser: %v", err)
	}

	if user.Name == "" || user.Username == "" {
		t.Error("user is missing a name or username")
	}
	if user.Role != domain.RoleProfessional {
		t.Errorf("role = %q, want %q", user.Role, domain.RoleProfessional)
	}
	if user.PasswordHash == "password" {
		t.Error("password stored in the clear")
	}
}
