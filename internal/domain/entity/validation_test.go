package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			url:     "https://medium.com/feed/@someone",
			wantErr: false,
		},
		{
			name:    "valid http URL",
			url:     "http://example.com/feed",
			wantErr: false,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://example.com/feed",
			wantErr: true,
		},
		{
			name:    "missing host",
			url:     "https://",
			wantErr: true,
		},
		{
			name:    "loopback address",
			url:     "http://127.0.0.1/feed",
			wantErr: true,
		},
		{
			name:    "cloud metadata endpoint",
			url:     "http://169.254.169.254/latest/meta-data",
			wantErr: true,
		},
		{
			name:    "excessively long URL",
			url:     "https://example.com/" + strings.Repeat("a", maxURLLength),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeedURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFeedURL(%q) err=%v, wantErr=%v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidateFeedURL("")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "url" {
		t.Errorf("Field = %q, want %q", vErr.Field, "url")
	}
	if !strings.Contains(vErr.Error(), "url") {
		t.Errorf("Error() = %q, expected to mention the field", vErr.Error())
	}
}

func TestCounter_Valid(t *testing.T) {
	for _, c := range []Counter{CounterView, CounterDownload, CounterShare} {
		if !c.Valid() {
			t.Errorf("Counter(%q).Valid() = false, want true", c)
		}
	}
	if Counter("likes").Valid() {
		t.Error(`Counter("likes").Valid() = true, want false`)
	}
}
