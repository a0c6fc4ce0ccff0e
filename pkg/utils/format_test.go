package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"Zero bytes", 0, "0 B"},
		{"Bytes", 500, "500 B"},
		{"Kilobytes", 1500, "1.5 KB"},
		{"Megabytes", 1500000, "1.4 MB"},
		{"Gigabytes", 1500000000, "1.4 GB"},
		{"Terabytes", 1500000000000, "1.4 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBytes(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatBytes(%d) = %s, want %s", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	testData := map[string]string{"key": "value"}

	err := PrintJSON(testData)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if err != nil {
		t.Errorf("PrintJSON() returned error: %v", err)
	}

	var result map[string]string
	err = json.Unmarshal([]byte(output), &result)
	if err != nil {
		t.Errorf("PrintJSON() output is not valid JSON: %v", err)
	}

	if result["key"] != "value" {
		t.Errorf("PrintJSON() output = %v, want key=value", result)
	}
}

func TestPrintError(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	PrintError(errors.New("something broke"), "run")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "something broke") {
		t.Errorf("PrintError() output doesn't contain error message: %s", output)
	}

	if !strings.Contains(output, "run") {
		t.Errorf("PrintError() output doesn't contain command name: %s", output)
	}
}

func TestFormatTime(t *testing.T) {
	stamp := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	result := FormatTime(stamp)
	if result != "2026-08-25T12:00:00Z" {
		t.Errorf("FormatTime() = %s, want %s", result, "2026-08-25T12:00:00Z")
	}
}

func TestCleanupTempFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "cleanup-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()
	tempPath := tempFile.Name()

	err = CleanupTempFile(tempPath)
	if err != nil {
		t.Errorf("CleanupTempFile() error = %v", err)
	}

	_, err = os.Stat(tempPath)
	if !os.IsNotExist(err) {
		t.Errorf("File was not removed: %v", err)
	}

	err = CleanupTempFile(tempPath)
	if err != nil {
		t.Errorf("CleanupTempFile() on non-existent file error = %v", err)
	}

	err = CleanupTempFile("")
	if err != nil {
		t.Errorf("CleanupTempFile() with empty path error = %v", err)
	}
}
