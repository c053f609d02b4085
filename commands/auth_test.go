package commands

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenFile(t *testing.T) {
	tests := []struct {
		scope    string
		expected string
	}{
		{SHEETS, filepath.Join("/var/tracker/.google", "credentials.sheets")},
		{"https://www.googleapis.com/auth/drive", filepath.Join("/var/tracker/.google", "credentials.tokens")},
	}

	for _, test := range tests {
		file := tokenFile("/etc/tracker/credentials.json", test.scope, "/var/tracker/.google")
		if file != test.expected {
			t.Errorf("Incorrect token file for scope %v - expected %v, got %v", test.scope, test.expected, file)
		}
	}
}

func TestSaveToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".google", "credentials.sheets")
	expiry := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)

	token := oauth2.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}

	if err := saveToken(file, &token); err != nil {
		t.Fatalf("Unexpected error saving token (%v)", err)
	}

	saved, err := tokenFromFile(file)
	if err != nil {
		t.Fatalf("Unexpected error reading saved token (%v)", err)
	}

	if saved.AccessToken != "access" || saved.RefreshToken != "refresh" || !saved.Expiry.Equal(expiry) {
		t.Errorf("Incorrect saved token\n   expected: %+v\n   got:      %+v", token, *saved)
	}
}

func TestTokenFromFileWithMissingFile(t *testing.T) {
	if _, err := tokenFromFile(filepath.Join(t.TempDir(), "missing.sheets")); err == nil {
		t.Errorf("Expected error reading missing token file")
	}
}
