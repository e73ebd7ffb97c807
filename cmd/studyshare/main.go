// Command studyshare is a terminal client for the StudyShare API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sahilchouksey/studyshare-api/catalog"
	"github.com/sahilchouksey/studyshare-api/client"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
)

const usage = `Usage: studyshare <command> [flags]

Commands:
  universities     print the university tree
  notes            list notes (filters, search and sort)
  browse           walk the tree down to a subject and list its notes
  show             print one note with an inline preview
  download         save a note's file
  upload           upload a note
  add-university   create a university
  add-faculty      create a faculty
  add-subject      create a subject
  edit             edit a note's file name, professor and semester
  delete           delete a note

The API base URL is read from STUDYSHARE_API_URL (default http://localhost:4000/api).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &cli{
		api: client.NewClientFromEnv(),
		out: os.Stdout,
	}
	cli.store = catalog.NewStore(cli.api)

	if err := cli.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "❌ %s\n", apiErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "universities":
		return c.universities(ctx, args)
	case "notes":
		return c.notes(ctx, args)
	case "browse":
		return c.browse(ctx, args)
	case "show":
		return c.show(ctx, args)
	case "download":
		return c.download(ctx, args)
	case "upload":
		return c.upload(ctx, args)
	case "add-university":
		return c.addUniversity(ctx, args)
	case "add-faculty":
		return c.addFaculty(ctx, args)
	case "add-subject":
		return c.addSubject(ctx, args)
	case "edit":
		return c.edit(ctx, args)
	case "delete":
		return c.delete(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// contentTypes maps upload extensions to the allowed MIME types
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":  "text/plain",
}

func contentType(path string) string {
	if t, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "application/octet-stream"
}

func formatNoteLine(n dto.Note) string {
	return fmt.Sprintf("#%-4d [%s] %-32s %-10s %-18s %-14s %s / %s / %s",
		n.ID, notefile.Badge(n.FileType), n.FileName, notefile.FormatFileSize(n.FileSize),
		n.Professor, n.Semester, n.University, n.Faculty, n.Subject)
}
