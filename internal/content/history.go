package content

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FileHistory is what version control knows about one content file.
type FileHistory struct {
	Created time.Time
	Updated time.Time
	Author  string
}

// History looks up version control metadata for a file. ok is false when no
// history is available for any reason.
type History interface {
	Lookup(ctx context.Context, path string) (FileHistory, bool)
}

// GitHistory reads commit history by running git. A missing binary, a path
// outside a repository or an untracked file all mean "no history".
type GitHistory struct {
	Binary string
	Logger *slog.Logger
}

func (g GitHistory) Lookup(ctx context.Context, path string) (FileHistory, bool) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.CommandContext(ctx, binary,
		"-C", filepath.Dir(path),
		"log", "--follow", "--format=%aI%x09%an", "--",
		filepath.Base(path),
	)
	out, err := cmd.Output()
	if err != nil {
		logger.Debug("git history unavailable", "path", path, "error", err)
		return FileHistory{}, false
	}

	history, ok := parseGitLog(out)
	if !ok {
		logger.Debug("git history empty", "path", path)
	}
	return history, ok
}

// parseGitLog reads "<iso date>\t<author>" lines, newest first.
func parseGitLog(out []byte) (FileHistory, bool) {
	var history FileHistory
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rawDate, author, _ := strings.Cut(line, "\t")
		when, err := time.Parse(time.RFC3339, strings.TrimSpace(rawDate))
		if err != nil {
			continue
		}
		if !found {
			history.Updated = when
			found = true
		}
		history.Created = when
		history.Author = strings.TrimSpace(author)
	}
	return history, found
}
