package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/sahilchouksey/studyshare-api/dto"
	"github.com/sahilchouksey/studyshare-api/utils/notefile"
)

// PreviewKind classifies how a note can be shown inline
type PreviewKind string

const (
	PreviewPDF          PreviewKind = "pdf"
	PreviewText         PreviewKind = "text"
	PreviewWord         PreviewKind = "word"
	PreviewPresentation PreviewKind = "presentation"
	PreviewNone         PreviewKind = "none"
)

// Preview is the inline rendering of a note. Text holds the decoded body
// for text notes; Message is shown instead when there is nothing to render.
type Preview struct {
	Kind    PreviewKind
	Source  string
	Text    string
	Message string
}

const (
	msgInvalidFileData     = "Invalid file data."
	msgTextNotPreviewable  = "Could not preview this text file."
	msgWordNotSupported    = "DOC/DOCX preview is not supported in browser. Please download to view."
	msgSlidesNotSupported  = "PPT/PPTX preview is not supported in browser. Please download to view."
	msgPreviewNotAvailable = "Preview not available for this file type."
)

// PreviewNote decides how note is previewed. PDFs are embedded from their
// data URI, text files are decoded, office documents are download only.
func PreviewNote(note dto.Note) Preview {
	switch {
	case strings.Contains(note.FileType, "pdf"):
		return Preview{Kind: PreviewPDF, Source: note.FileData}
	case strings.Contains(note.FileType, "text"):
		return previewText(note.FileData)
	case strings.Contains(note.FileType, "word"):
		return Preview{Kind: PreviewWord, Message: msgWordNotSupported}
	case strings.Contains(note.FileType, "presentation"):
		return Preview{Kind: PreviewPresentation, Message: msgSlidesNotSupported}
	default:
		return Preview{Kind: PreviewNone, Message: msgPreviewNotAvailable}
	}
}

func previewText(data string) Preview {
	_, payload, found := strings.Cut(data, ",")
	if !found || payload == "" {
		return Preview{Kind: PreviewText, Message: msgInvalidFileData}
	}

	_, content, err := notefile.DecodeDataURI(data)
	if err != nil || !utf8.Valid(content) {
		return Preview{Kind: PreviewText, Message: msgTextNotPreviewable}
	}
	return Preview{Kind: PreviewText, Text: string(content)}
}
