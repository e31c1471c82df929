package main

import (
	"context"
	"fmt"
	"net"
	"testing"

	"inkwell/internal/api"
)

func TestFormatCLIError_NetworkGuidance(t *testing.T) {
	err := &net.DNSError{Err: "dial tcp: connection refused", Name: "127.0.0.1", IsTemporary: true}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: ensure an inkwell site is running at INKWELL_LISTEN_URL.") {
		t.Fatalf("expected connectivity guidance, got %v", lines)
	}
	if !containsLine(lines, "hint: start a local server with: inkwell srv") {
		t.Fatalf("expected manual-start guidance, got %v", lines)
	}
}

func TestFormatCLIError_APIUnknownServiceGuidance(t *testing.T) {
	err := &api.APIError{Status: 404, Message: "api error: 404 Not Found"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: verify --url or INKWELL_LISTEN_URL points to an inkwell site.") {
		t.Fatalf("expected url guidance, got %v", lines)
	}
}

func TestFormatCLIError_APINotFoundGuidance(t *testing.T) {
	err := &api.APIError{Status: 404, Code: "not_found", Message: "no post with slug x"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: list published pages with: inkwell content routes") {
		t.Fatalf("expected routes guidance, got %v", lines)
	}
}

func TestFormatCLIError_UnavailableGuidance(t *testing.T) {
	err := &api.APIError{Status: 503, Message: "api error: 503 Service Unavailable"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: the site cannot read its content; check content.posts_dir and content.projects_dir.") {
		t.Fatalf("expected content guidance, got %v", lines)
	}
	if containsLine(lines, "hint: verify --url or INKWELL_LISTEN_URL points to an inkwell site.") {
		t.Fatalf("unexpected url guidance: %v", lines)
	}
}

func TestFormatCLIError_APIInternalGuidance(t *testing.T) {
	err := &api.APIError{Status: 500, Code: "internal", Message: "internal error"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: the site returned an internal error; check server logs for details.") {
		t.Fatalf("expected internal-error guidance, got %v", lines)
	}
}

func TestFormatCLIError_ContentFailureCode(t *testing.T) {
	err := &api.APIError{Status: 500, Code: "internal", ErrorCode: api.ErrCodeContentFailure, Message: "internal error"}
	lines := formatCLIError(err)
	if lines[0] != "internal (4003): internal error" {
		t.Fatalf("expected numeric code in message, got %q", lines[0])
	}
	if !containsLine(lines, "hint: the site cannot read its content; check content.posts_dir and content.projects_dir.") {
		t.Fatalf("expected content guidance, got %v", lines)
	}
}

func TestFormatCLIError_RenderAndStoreCodes(t *testing.T) {
	lines := formatCLIError(&api.APIError{Status: 500, Code: "internal", ErrorCode: api.ErrCodeRenderFailure, Message: "internal error"})
	if !containsLine(lines, "hint: a page failed to render; run inkwell build to find the broken file.") {
		t.Fatalf("expected render guidance, got %v", lines)
	}
	if !containsLine(lines, "hint: the site returned an internal error; check server logs for details.") {
		t.Fatalf("expected internal-error guidance, got %v", lines)
	}

	lines = formatCLIError(&api.APIError{Status: 500, Code: "internal", ErrorCode: api.ErrCodeStoreUnavailable, Message: "internal error"})
	if !containsLine(lines, "hint: the message store is unavailable; check db_path and run: inkwell migrate --inspect") {
		t.Fatalf("expected store guidance, got %v", lines)
	}
}

func TestFormatCLIError_Timeout(t *testing.T) {
	lines := formatCLIError(fmt.Errorf("health: %w", context.DeadlineExceeded))
	if !containsLine(lines, "hint: request timed out; check server health or increase INKWELL_HTTP_TIMEOUT.") {
		t.Fatalf("expected timeout guidance, got %v", lines)
	}
}

func TestFormatCLIError_Plain(t *testing.T) {
	lines := formatCLIError(fmt.Errorf("boom"))
	if len(lines) != 1 || lines[0] != "boom" {
		t.Fatalf("expected only the error line, got %v", lines)
	}
	if formatCLIError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func containsLine(lines []string, expected string) bool {
	for _, line := range lines {
		if line == expected {
			return true
		}
	}
	return false
}
