package sftpclient

import (
	"context"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{
		Host: "test-host",
		User: "test-user",
		Pass: "test-pass",
	}

	// Port defaults to 22 and RemoteDir to "/" inside UploadFiles.
	if cfg.Port != 0 {
		t.Errorf("Expected zero Port before defaulting, got %d", cfg.Port)
	}
	if cfg.RemoteDir != "" {
		t.Errorf("Expected empty RemoteDir before defaulting, got %q", cfg.RemoteDir)
	}
}

// The actual transfer needs a live SFTP server; these cases cover the
// validation path in front of the dial.

func TestUploadFilesValidation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		cfg           Config
		errorContains string
	}{
		{
			name:          "missing credentials",
			cfg:           Config{},
			errorContains: "sftp: missing env SFTP_HOST / SFTP_USER / SFTP_PASS",
		},
		{
			name:          "missing user",
			cfg:           Config{Host: "h", Pass: "p"},
			errorContains: "sftp: missing env",
		},
		{
			name:          "missing pass",
			cfg:           Config{Host: "h", User: "u"},
			errorContains: "sftp: missing env",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := UploadFiles(ctx, tc.cfg, []string{"file.csv"})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.errorContains) {
				t.Errorf("Expected error containing %q, got %q", tc.errorContains, err.Error())
			}
		})
	}
}

func TestUploadFilesCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{Host: "203.0.113.1", User: "u", Pass: "p"}
	err := UploadFiles(ctx, cfg, []string{"file.csv"})
	if err == nil {
		t.Fatal("Expected error with canceled context, got nil")
	}
}
