package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"inkwell/internal/content"
	"inkwell/internal/format"
	"inkwell/internal/models"
)

var (
	stdout          io.Writer        = os.Stdout
	outputFormatter format.Formatter = format.JSONFormatter{Indent: true}
)

func writeJSON(payload any) error {
	return outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeRecordList(records []models.Record) error {
	table := format.Table{Header: []string{"DATE", "PATH", "CATEGORY", "TITLE", "TAGS"}}
	for _, record := range records {
		table.Rows = append(table.Rows, []string{
			formatDate(record.Date),
			record.Path(),
			content.CategoryLabel(record.Category),
			record.Title,
			strings.Join(record.Tags, ", "),
		})
	}
	return table.Write(stdout)
}

func writeRouteList(routes []content.Route) error {
	for _, route := range routes {
		if err := writePlain("%s\n", route.Path); err != nil {
			return err
		}
	}
	return nil
}

func writeMessageList(messages []models.ContactMessage, total int) error {
	table := format.Table{Header: []string{"ID", "RECEIVED", "NAME", "EMAIL", "BUDGET"}}
	for _, msg := range messages {
		table.Rows = append(table.Rows, []string{
			msg.ID,
			formatTime(msg.CreatedAt),
			msg.Name,
			msg.Email,
			msg.Budget,
		})
	}
	if err := table.Write(stdout); err != nil {
		return err
	}
	return writePlain("%d of %d messages\n", len(messages), total)
}

func writeMessageDetail(msg models.ContactMessage) error {
	lines := []string{
		fmt.Sprintf("id: %s", msg.ID),
		fmt.Sprintf("received: %s", formatTime(msg.CreatedAt)),
		fmt.Sprintf("name: %s", msg.Name),
		fmt.Sprintf("email: %s", msg.Email),
	}
	if msg.Company != "" {
		lines = append(lines, fmt.Sprintf("company: %s", msg.Company))
	}
	if msg.Budget != "" {
		lines = append(lines, fmt.Sprintf("budget: %s", msg.Budget))
	}
	if msg.RemoteAddr != "" {
		lines = append(lines, fmt.Sprintf("remote_addr: %s", msg.RemoteAddr))
	}
	lines = append(lines, "", msg.Message)
	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
