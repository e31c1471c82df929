package main

import (
	"context"
	"errors"
	"net"

	"inkwell/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "unauthorized":
			lines = append(lines, "hint: check admin.username and admin.password_hash.")
		case "not_found":
			lines = append(lines, "hint: list published pages with: inkwell content routes")
		case "resource_exhausted":
			lines = append(lines, "hint: retry shortly; the site is rate limiting requests.")
		}
		if apiErr.ContentUnavailable() {
			lines = append(lines, "hint: the site cannot read its content; check content.posts_dir and content.projects_dir.")
			return uniqueLines(lines)
		}
		switch apiErr.ErrorCode {
		case api.ErrCodeRenderFailure:
			lines = append(lines, "hint: a page failed to render; run inkwell build to find the broken file.")
		case api.ErrCodeStoreFailure, api.ErrCodeStoreUnavailable:
			lines = append(lines, "hint: the message store is unavailable; check db_path and run: inkwell migrate --inspect")
		}
		if apiErr.Code == "" {
			lines = append(lines, "hint: verify --url or INKWELL_LISTEN_URL points to an inkwell site.")
		}
		if apiErr.Class() == api.ClassInternal || apiErr.Status >= 500 {
			lines = append(lines, "hint: the site returned an internal error; check server logs for details.")
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase INKWELL_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure an inkwell site is running at INKWELL_LISTEN_URL.",
			"hint: start a local server with: inkwell srv",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
