package db

import "testing"

func TestWithDBName(t *testing.T) {
	tests := []struct {
		dsn, name, want string
	}{
		{"postgres://u:p@host:5432/postgres?sslmode=disable", "network_2024", "postgres://u:p@host:5432/network_2024?sslmode=disable"},
		{"postgresql://host/old", "/new", "postgresql://host/new"},
		{"host/old", "new", "postgres://host/new"},
	}
	for _, tt := range tests {
		got, err := WithDBName(tt.dsn, tt.name)
		if err != nil {
			t.Fatalf("WithDBName(%q, %q) returned error: %v", tt.dsn, tt.name, err)
		}
		if got != tt.want {
			t.Errorf("WithDBName(%q, %q) = %q, want %q", tt.dsn, tt.name, got, tt.want)
		}
	}
}

func TestWithDBNameEmpty(t *testing.T) {
	if _, err := WithDBName("", "x"); err == nil {
		t.Fatal("expected an error for an empty DSN")
	}
}
