package core

import (
	"strings"
	"time"

	"citetool/models"
)

// citationTag marks a comment line as carrying citation metadata.
const citationTag = "[CITATION]"

const isoDateLayout = "2006-01-02"

// labelSource etc. are the four recognized field labels. Labels the parser
// does not recognize are ignored without closing the open record.
const (
	labelSource      = "Source"
	labelAuthor      = "Author"
	labelDate        = "Date"
	labelDescription = "Description"
)

// stripCommentWrapper removes the comment marker from a line according to
// the given syntax and returns the remaining text. The second return value
// is false when the line does not start with any recognized marker.
//
// A "*" continuation marker is accepted inside block-comment styles so that
// conventional multiline comments ("/* ... * ... */") parse line by line,
// and a trailing block-close marker is trimmed from the end of the line.
func stripCommentWrapper(line string, syntax CommentSyntax) (string, bool) {
	trimmed := strings.TrimSpace(line)

	var markers []string
	if syntax.BlockOpen != "" {
		markers = append(markers, syntax.BlockOpen)
	}
	if syntax.LinePrefix != "" {
		markers = append(markers, syntax.LinePrefix)
	}
	if syntax.BlockOpen != "" {
		markers = append(markers, "*")
	}

	for _, marker := range markers {
		if !strings.HasPrefix(trimmed, marker) {
			continue
		}
		rest := trimmed[len(marker):]
		if syntax.BlockClose != "" {
			rest = strings.TrimSuffix(strings.TrimSpace(rest), syntax.BlockClose)
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// parseCitationLine splits the text remaining after the comment wrapper
// into a citation label and value. ok is false when the text does not carry
// the citation tag at all.
func parseCitationLine(text string) (label, value string, ok bool) {
	if !strings.HasPrefix(text, citationTag) {
		return "", "", false
	}
	rest := strings.TrimSpace(text[len(citationTag):])
	label, value, found := strings.Cut(rest, ":")
	if !found {
		return "", "", true // tagged but labelless; treated as unrecognized
	}
	return strings.TrimSpace(label), strings.TrimSpace(value), true
}

// collapseWhitespace normalizes internal whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractFromString scans content line by line and returns the citation
// records found, in source order. Consecutive citation lines accumulate
// into one record; a Source label while the open record already has a
// non-empty source starts a new record; repeated other labels overwrite
// within the block. A non-citation, non-blank line closes the open record.
// Blank lines inside a comment block do not close it. Records whose fields
// are all empty are discarded as noise.
func ExtractFromString(content string, syntax CommentSyntax) []models.CitationRecord {
	var records []models.CitationRecord
	var current models.CitationRecord
	open := false

	emit := func() {
		if open && current.HasContent() {
			records = append(records, current)
		}
		current = models.CitationRecord{}
		open = false
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lineNumber := i + 1

		if strings.TrimSpace(line) == "" {
			// Blank-line formatting inside comment blocks is tolerated.
			continue
		}

		text, isComment := stripCommentWrapper(line, syntax)
		if !isComment {
			emit()
			continue
		}
		if text == "" {
			// Bare comment marker, e.g. a lone "/*" or "#". Treated like a
			// blank line within the block.
			continue
		}

		label, value, tagged := parseCitationLine(text)
		if !tagged {
			emit()
			continue
		}

		switch label {
		case labelSource:
			if open && current.SourceURL != "" {
				// A fresh Source line is the start-of-block marker.
				emit()
			}
			if !open {
				current.LineNumber = lineNumber
				open = true
			}
			current.SourceURL = value
		case labelAuthor:
			if !open {
				current.LineNumber = lineNumber
				open = true
			}
			current.Author = value
		case labelDate:
			if !open {
				current.LineNumber = lineNumber
				open = true
			}
			current.Date = value
			_, err := time.Parse(isoDateLayout, value)
			current.DateValid = err == nil && value != ""
		case labelDescription:
			if !open {
				current.LineNumber = lineNumber
				open = true
			}
			current.Description = collapseWhitespace(value)
		default:
			// Unrecognized label inside a block: ignore the line, keep the
			// rest of the block.
		}
	}

	emit()
	return records
}
