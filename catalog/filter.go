package catalog

import (
	"sort"
	"strings"

	"github.com/sahilchouksey/studyshare-api/dto"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption orders a note listing
type SortOption string

const (
	SortNewest SortOption = "newest"
	SortOldest SortOption = "oldest"
	SortAZ     SortOption = "az"
	SortZA     SortOption = "za"
)

// ParseSortOption maps a user supplied value to a SortOption, defaulting to newest
func ParseSortOption(value string) SortOption {
	switch SortOption(strings.ToLower(strings.TrimSpace(value))) {
	case SortOldest:
		return SortOldest
	case SortAZ:
		return SortAZ
	case SortZA:
		return SortZA
	}
	return SortNewest
}

// Filters narrow notes by exact ancestor names and file type. An empty
// value does not filter. The setters keep lower levels consistent with
// the level above them.
type Filters struct {
	University string
	Faculty    string
	Subject    string
	FileType   string
}

// SetUniversity selects a university and resets the faculty and subject
func (f *Filters) SetUniversity(name string) {
	f.University = name
	f.Faculty = ""
	f.Subject = ""
}

// SetFaculty selects a faculty and resets the subject
func (f *Filters) SetFaculty(name string) {
	f.Faculty = name
	f.Subject = ""
}

func (f *Filters) SetSubject(name string) {
	f.Subject = name
}

func (f *Filters) SetFileType(fileType string) {
	f.FileType = fileType
}

func (f *Filters) Clear() {
	*f = Filters{}
}

// Query is the full derived-state input of a note listing
type Query struct {
	Filters
	Search string
	SortBy SortOption
	// Locale drives az/za collation; the zero tag uses the root collation
	Locale language.Tag
}

// Clear resets filters and search, keeping the sort order
func (q *Query) Clear() {
	q.Filters.Clear()
	q.Search = ""
}

// Matches reports whether n passes the search term and every set filter
func (q Query) Matches(n dto.Note) bool {
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		found := false
		for _, field := range []string{n.FileName, n.Professor, n.Subject, n.University, n.Faculty} {
			if strings.Contains(strings.ToLower(field), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if q.University != "" && n.University != q.University {
		return false
	}
	if q.Faculty != "" && n.Faculty != q.Faculty {
		return false
	}
	if q.Subject != "" && n.Subject != q.Subject {
		return false
	}
	if q.FileType != "" && n.FileType != q.FileType {
		return false
	}
	return true
}

// Apply filters notes and sorts the result. The sort is stable: notes with
// equal keys keep their input order. The input slice is not modified.
func Apply(notes []dto.Note, q Query) []dto.Note {
	result := make([]dto.Note, 0, len(notes))
	for _, n := range notes {
		if q.Matches(n) {
			result = append(result, n)
		}
	}
	sortNotes(result, q.SortBy, q.Locale)
	return result
}

func sortNotes(notes []dto.Note, by SortOption, locale language.Tag) {
	switch by {
	case SortOldest:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].UploadedAt < notes[j].UploadedAt
		})
	case SortAZ, SortZA:
		// Collators are not safe for concurrent use
		col := collate.New(locale)
		sort.SliceStable(notes, func(i, j int) bool {
			cmp := col.CompareString(notes[i].FileName, notes[j].FileName)
			if by == SortZA {
				return cmp > 0
			}
			return cmp < 0
		})
	default:
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].UploadedAt > notes[j].UploadedAt
		})
	}
}

// FacultyOptions lists the faculties selectable under the current filters:
// those of the selected university, or of every university when none is set
func FacultyOptions(universities []dto.University, f Filters) []dto.FacultyNode {
	options := []dto.FacultyNode{}
	for _, u := range universities {
		if f.University != "" && u.Name != f.University {
			continue
		}
		options = append(options, u.Faculties...)
	}
	return options
}

// SubjectOptions lists the subjects selectable under the current filters
func SubjectOptions(universities []dto.University, f Filters) []dto.SubjectRef {
	options := []dto.SubjectRef{}
	for _, fac := range FacultyOptions(universities, f) {
		if f.Faculty != "" && fac.Name != f.Faculty {
			continue
		}
		options = append(options, fac.Subjects...)
		if f.Faculty != "" {
			// first match only, like a lookup by name
			break
		}
	}
	return options
}

// FileTypeOptions lists the distinct non-empty file types in first-seen order
func FileTypeOptions(notes []dto.Note) []string {
	seen := make(map[string]bool)
	options := []string{}
	for _, n := range notes {
		if n.FileType == "" || seen[n.FileType] {
			continue
		}
		seen[n.FileType] = true
		options = append(options, n.FileType)
	}
	return options
}

// UniversityNotes pairs a university with its notes
type UniversityNotes struct {
	University dto.University
	Notes      []dto.Note
}

// ByUniversity groups notes under each university in tree order
func ByUniversity(universities []dto.University, notes []dto.Note) []UniversityNotes {
	groups := make([]UniversityNotes, 0, len(universities))
	for _, u := range universities {
		group := UniversityNotes{University: u, Notes: []dto.Note{}}
		for _, n := range notes {
			if n.University == u.Name {
				group.Notes = append(group.Notes, n)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// SubjectNotes lists the notes filed under one subject, most recent first
func SubjectNotes(notes []dto.Note, university, faculty, subject string) []dto.Note {
	result := []dto.Note{}
	for _, n := range notes {
		if n.University == university && n.Faculty == faculty && n.Subject == subject {
			result = append(result, n)
		}
	}
	sortNotes(result, SortNewest, language.Und)
	return result
}
