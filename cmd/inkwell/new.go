package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/content"
	"inkwell/internal/models"
)

func newNewCmd(cfg *config.Config) *cobra.Command {
	var (
		title    string
		tags     []string
		excerpt  string
		date     string
		author   string
		client   string
		services []string
		link     string
		draft    bool
		featured bool
	)

	cmd := &cobra.Command{
		Use:   "new <kind> <category> <slug>",
		Short: "Create a post or project file",
		Args:  requireExactlyArgs(3, "kind, category and slug are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}

			published := today(time.Now())
			if strings.TrimSpace(date) != "" {
				published, err = time.Parse(time.DateOnly, strings.TrimSpace(date))
				if err != nil {
					return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", date)
				}
			}

			record := models.Record{
				Kind:     kind,
				Category: args[1],
				Slug:     args[2],
				Title:    strings.TrimSpace(title),
				Date:     published,
				Excerpt:  strings.TrimSpace(excerpt),
				Tags:     tags,
				Author:   strings.TrimSpace(author),
				Draft:    draft,
				Body:     "Write something here.\n",
			}
			if record.Title == "" {
				record.Title = content.TitleFromSlug(record.Slug)
			}
			if kind == models.KindProject {
				record.Client = strings.TrimSpace(client)
				record.Services = services
				record.URL = strings.TrimSpace(link)
				record.Featured = featured
			}

			path, err := content.Write(contentRoot(cfg, kind), record)
			if err != nil {
				return err
			}
			return writePlain("created %s\n", path)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "title (default derived from slug)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags")
	cmd.Flags().StringVar(&excerpt, "excerpt", "", "summary shown in lists")
	cmd.Flags().StringVar(&date, "date", "", "publish date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&author, "author", "", "author name")
	cmd.Flags().BoolVar(&draft, "draft", false, "mark as draft")
	cmd.Flags().StringVar(&client, "client", "", "client name (projects)")
	cmd.Flags().StringSliceVar(&services, "services", nil, "comma separated services (projects)")
	cmd.Flags().StringVar(&link, "url", "", "live project URL (projects)")
	cmd.Flags().BoolVar(&featured, "featured", false, "feature on the home page (projects)")
	return cmd
}

// today is the calendar date of now, as a UTC midnight.
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
