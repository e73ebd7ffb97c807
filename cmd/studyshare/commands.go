package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sahilchouksey/studyshare-api/catalog"
	"github.com/sahilchouksey/studyshare-api/client"
	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
	"golang.org/x/text/language"
)

type cli struct {
	api   *client.Client
	store *catalog.Store
	out   io.Writer
}

func (c *cli) universities(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("universities", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.RefreshUniversities(ctx); err != nil {
		return err
	}

	for _, u := range c.store.Universities() {
		fmt.Fprintf(c.out, "#%d %s (%s)\n", u.ID, u.Name, u.Type)
		for _, f := range u.Faculties {
			fmt.Fprintf(c.out, "  #%d %s\n", f.ID, f.Name)
			for _, s := range f.Subjects {
				fmt.Fprintf(c.out, "    #%d %s\n", s.ID, s.Name)
			}
		}
	}
	return nil
}

func (c *cli) notes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	search := fs.String("q", "", "case-insensitive search term")
	university := fs.String("university", "", "university name")
	faculty := fs.String("faculty", "", "faculty name")
	subject := fs.String("subject", "", "subject name")
	fileType := fs.String("type", "", "MIME type")
	sortBy := fs.String("sort", "newest", "newest, oldest, az or za")
	locale := fs.String("locale", "en", "BCP 47 tag used for az/za ordering")
	grouped := fs.Bool("group", false, "group notes by university")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tag, err := language.Parse(*locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", *locale, err)
	}
	if err := c.store.Load(ctx); err != nil {
		return err
	}

	q := catalog.Query{Search: *search, SortBy: catalog.ParseSortOption(*sortBy), Locale: tag}
	q.SetUniversity(*university)
	q.SetFaculty(*faculty)
	q.SetSubject(*subject)
	q.SetFileType(*fileType)

	notes := catalog.Apply(c.store.Notes(), q)
	if !*grouped {
		c.printNotes(notes)
		return nil
	}

	for _, group := range catalog.ByUniversity(c.store.Universities(), notes) {
		if len(group.Notes) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "== %s ==\n", group.University.Name)
		c.printNotes(group.Notes)
	}
	return nil
}

func (c *cli) printNotes(notes []dto.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(c.out, "No notes found.")
		return
	}
	for _, n := range notes {
		fmt.Fprintln(c.out, formatNoteLine(n))
	}
}

// browse walks the navigator down the requested names and prints the
// breadcrumbs and contents of the deepest level it reaches
func (c *cli) browse(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	university := fs.String("university", "", "university name")
	faculty := fs.String("faculty", "", "faculty name")
	subject := fs.String("subject", "", "subject name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.Load(ctx); err != nil {
		return err
	}

	nav := catalog.NewNavigator(c.store)
	for _, u := range c.store.Universities() {
		if u.Name != *university {
			continue
		}
		nav.OpenUniversity(u)
		for _, f := range u.Faculties {
			if f.Name != *faculty {
				continue
			}
			nav.OpenFaculty(u, f)
			for _, s := range f.Subjects {
				if s.Name == *subject {
					nav.OpenSubject(u, f, s)
				}
			}
		}
	}

	for i, crumb := range nav.Breadcrumbs() {
		if i > 0 {
			fmt.Fprint(c.out, " › ")
		}
		fmt.Fprint(c.out, crumb.Label)
	}
	fmt.Fprintln(c.out)

	page := nav.Current()
	switch page.Kind {
	case catalog.PageMain:
		for _, u := range c.store.Universities() {
			fmt.Fprintf(c.out, "%s (%s): %s\n", u.Name, u.Type, u.Description)
		}
	case catalog.PageUniversity:
		for _, f := range page.University.Faculties {
			fmt.Fprintf(c.out, "%s (%d subjects)\n", f.Name, len(f.Subjects))
		}
	case catalog.PageFaculty:
		for _, s := range page.Faculty.Subjects {
			fmt.Fprintln(c.out, s.Name)
		}
	case catalog.PageSubject:
		c.printNotes(catalog.SubjectNotes(c.store.Notes(), page.University.Name, page.Faculty.Name, page.Subject.Name))
	}
	return nil
}

func noteID(fs *flag.FlagSet, args []string) (*uint, error) {
	id := fs.Uint("id", 0, "note id")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *id == 0 {
		return nil, fmt.Errorf("-id is required")
	}
	return id, nil
}

func (c *cli) show(ctx context.Context, args []string) error {
	id, err := noteID(flag.NewFlagSet("show", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	note, err := c.api.GetNote(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s [%s]\n", notefile.NameWithoutExtension(note.FileName), notefile.Badge(note.FileType))
	fmt.Fprintf(c.out, "University: %s\nFaculty:    %s\nSubject:    %s\n", note.University, note.Faculty, note.Subject)
	fmt.Fprintf(c.out, "Professor:  %s\nSemester:   %s\n", note.Professor, note.Semester)
	fmt.Fprintf(c.out, "Size:       %s\nUploaded:   %s\n\n", notefile.FormatFileSize(note.FileSize),
		time.UnixMilli(note.UploadedAt).Format(time.DateTime))

	preview := catalog.PreviewNote(*note)
	switch {
	case preview.Kind == catalog.PreviewPDF:
		fmt.Fprintln(c.out, "PDF document, use download to open it.")
	case preview.Text != "":
		fmt.Fprintln(c.out, preview.Text)
	default:
		fmt.Fprintln(c.out, preview.Message)
	}
	return nil
}

func (c *cli) download(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	output := fs.String("o", "", "output path (defaults to the note's file name)")
	id, err := noteID(fs, args)
	if err != nil {
		return err
	}

	content, _, err := c.api.DownloadNote(ctx, *id)
	if err != nil {
		return err
	}
	path := *output
	if path == "" {
		note, err := c.api.GetNote(ctx, *id)
		if err != nil {
			return err
		}
		path = note.FileName
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "✅ Saved %s (%s)\n", path, notefile.FormatFileSize(int64(len(content))))
	return nil
}

func (c *cli) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	universityID := fs.Uint("university-id", 0, "university id")
	facultyID := fs.Uint("faculty-id", 0, "faculty id")
	subjectID := fs.Uint("subject-id", 0, "subject id")
	professor := fs.String("professor", "", "professor name")
	semester := fs.String("semester", "", "semester, e.g. Fall 2024")
	path := fs.String("file", "", "file to upload (pdf, doc, docx, ppt, pptx, txt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.RefreshUniversities(ctx); err != nil {
		return err
	}

	flow := catalog.NewUploadFlow(c.store)
	if err := flow.SelectUniversity(*universityID); err != nil {
		return err
	}
	if err := flow.SelectFaculty(*facultyID); err != nil {
		return err
	}
	if err := flow.SelectSubject(*subjectID); err != nil {
		return err
	}

	if *path != "" {
		content, err := os.ReadFile(*path)
		if err != nil {
			return err
		}
		file := catalog.File{Name: filepath.Base(*path), Type: contentType(*path), Content: content}
		if err := flow.SetFile(file); err != nil {
			return fmt.Errorf("%s", flow.Error())
		}
	}
	flow.SetProfessor(*professor)
	flow.SetSemester(*semester)

	note, err := flow.Submit(ctx)
	if err != nil {
		return fmt.Errorf("%s", flow.Error())
	}
	fmt.Fprintf(c.out, "✅ %s (#%d)\n", flow.Notice(), note.ID)
	return nil
}

func (c *cli) addUniversity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-university", flag.ContinueOnError)
	name := fs.String("name", "", "university name")
	description := fs.String("description", "", "description")
	kind := fs.String("type", "", "Technical, Medical, Economic, Arts, Law or Other")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.RefreshUniversities(ctx); err != nil {
		return err
	}

	flow := catalog.NewUploadFlow(c.store)
	created, err := flow.CreateUniversity(ctx, dto.CreateUniversityRequest{Name: *name, Description: *description, Type: *kind})
	if err != nil {
		return fmt.Errorf("%s", flow.Error())
	}
	fmt.Fprintf(c.out, "✅ Created university %s (#%d)\n", created.Name, created.ID)
	return nil
}

func (c *cli) addFaculty(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-faculty", flag.ContinueOnError)
	universityID := fs.Uint("university-id", 0, "university id")
	name := fs.String("name", "", "faculty name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.RefreshUniversities(ctx); err != nil {
		return err
	}

	flow := catalog.NewUploadFlow(c.store)
	if err := flow.SelectUniversity(*universityID); err != nil {
		return err
	}
	created, err := flow.CreateFaculty(ctx, *name)
	if err != nil {
		return fmt.Errorf("%s", flow.Error())
	}
	fmt.Fprintf(c.out, "✅ Created faculty %s (#%d)\n", created.Name, created.ID)
	return nil
}

func (c *cli) addSubject(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-subject", flag.ContinueOnError)
	universityID := fs.Uint("university-id", 0, "university id")
	facultyID := fs.Uint("faculty-id", 0, "faculty id")
	name := fs.String("name", "", "subject name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.store.RefreshUniversities(ctx); err != nil {
		return err
	}

	flow := catalog.NewUploadFlow(c.store)
	if err := flow.SelectUniversity(*universityID); err != nil {
		return err
	}
	if err := flow.SelectFaculty(*facultyID); err != nil {
		return err
	}
	created, err := flow.CreateSubject(ctx, *name)
	if err != nil {
		return fmt.Errorf("%s", flow.Error())
	}
	fmt.Fprintf(c.out, "✅ Created subject %s (#%d)\n", created.Name, created.ID)
	return nil
}

func (c *cli) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fileName := fs.String("name", "", "new file name")
	professor := fs.String("professor", "", "new professor")
	semester := fs.String("semester", "", "new semester")
	id, err := noteID(fs, args)
	if err != nil {
		return err
	}
	if err := c.store.RefreshNotes(ctx); err != nil {
		return err
	}

	updated, err := c.store.UpdateNote(ctx, *id, dto.UpdateNoteRequest{FileName: *fileName, Professor: *professor, Semester: *semester})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "✅ Updated %s\n", formatNoteLine(*updated))
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	id, err := noteID(flag.NewFlagSet("delete", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	if err := c.store.DeleteNote(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "✅ Deleted note #%d\n", *id)
	return nil
}
