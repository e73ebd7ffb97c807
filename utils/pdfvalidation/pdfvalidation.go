// Package pdfvalidation inspects the content of PDF notes. It never decides
// whether a note is stored; callers log what it reports.
package pdfvalidation

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// MaxNotePages is the page count above which a PDF note is reported
const MaxNotePages = 2000

var (
	pdfHeader = []byte("%PDF-")
	eofMarker = []byte("%%EOF")
)

// Report describes a PDF note. Problem is empty when the document parsed
// and its page count is plausible.
type Report struct {
	PageCount int
	Problem   string
}

func (r Report) Sound() bool {
	return r.Problem == ""
}

// InspectNote parses content as a PDF and counts its pages
func InspectNote(content []byte) (report Report) {
	// the reader panics on some malformed trailers
	defer func() {
		if r := recover(); r != nil {
			report = Report{Problem: fmt.Sprintf("unreadable PDF: %v", r)}
		}
	}()

	if !bytes.HasPrefix(content, pdfHeader) {
		return Report{Problem: "missing PDF header"}
	}

	body := trimAfterEOF(content)
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return Report{Problem: fmt.Sprintf("unreadable PDF: %v", err)}
	}

	report = Report{PageCount: reader.NumPage()}
	switch {
	case report.PageCount == 0:
		report.Problem = "PDF has no pages"
	case report.PageCount > MaxNotePages:
		report.Problem = fmt.Sprintf("PDF has %d pages, more than %d", report.PageCount, MaxNotePages)
	}
	return report
}

// trimAfterEOF drops whatever follows the last %%EOF marker and its line
// break. Browsers and some editors append padding the parser rejects.
func trimAfterEOF(content []byte) []byte {
	i := bytes.LastIndex(content, eofMarker)
	if i < 0 {
		return content
	}

	end := i + len(eofMarker)
	for end < len(content) && (content[end] == '\r' || content[end] == '\n') {
		end++
	}
	return content[:end]
}
