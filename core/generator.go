package core

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"citetool/models"
)

// Supported output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"
)

const documentTitle = "Code Citations"

// Render turns a scan result into one concrete output representation.
// Files appear in the order given by the result (already path-sorted) and
// citations in line order. An empty result renders a valid, empty document
// in every format. Backends perform no I/O.
func Render(result models.ScanResult, format string) (string, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(result), nil
	case FormatHTML:
		return renderHTML(result), nil
	case FormatJSON:
		return renderJSON(result)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// markdownEscaper neutralizes the Markdown structural characters that could
// let file-derived text corrupt the document layout.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func renderMarkdown(result models.ScanResult) string {
	var b strings.Builder
	b.WriteString("# " + documentTitle + "\n\n")

	if len(result.Files) == 0 {
		b.WriteString("No citations found.\n")
		return b.String()
	}

	for _, file := range result.Files {
		fmt.Fprintf(&b, "### %s\n\n", escapeMarkdown(file.FilePath))
		for _, citation := range file.Citations {
			fmt.Fprintf(&b, "- Citation (line %d)\n", citation.LineNumber)
			if citation.SourceURL != "" {
				fmt.Fprintf(&b, "  - **Source**: %s\n", escapeMarkdown(citation.SourceURL))
			}
			if citation.Author != "" {
				fmt.Fprintf(&b, "  - **Author**: %s\n", escapeMarkdown(citation.Author))
			}
			if citation.Date != "" {
				fmt.Fprintf(&b, "  - **Date**: %s\n", escapeMarkdown(citation.Date))
			}
			if citation.Description != "" {
				fmt.Fprintf(&b, "  - **Description**: %s\n", escapeMarkdown(citation.Description))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

const htmlHeader = `<!DOCTYPE html>
<html lang='en'>
<head>
    <meta charset='UTF-8'>
    <meta name='viewport' content='width=device-width, initial-scale=1.0'>
    <title>Code Citations</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        h1 { color: #333; border-bottom: 2px solid #333; }
        h2 { color: #666; border-bottom: 1px solid #ccc; }
        h3 { color: #888; }
        ul { list-style-type: none; padding-left: 0; }
        li { margin: 5px 0; }
        strong { color: #333; }
        .citation { margin-bottom: 20px; }
    </style>
</head>
<body>
    <h1>Code Citations</h1>
`

// renderHTML emits a standalone HTML document. Every field value is
// entity-escaped before insertion; citation text is untrusted, file-derived
// content.
func renderHTML(result models.ScanResult) string {
	var b strings.Builder
	b.WriteString(htmlHeader)

	if len(result.Files) == 0 {
		b.WriteString("    <p>No citations found.</p>\n")
	}

	for _, file := range result.Files {
		fmt.Fprintf(&b, "    <h2>%s</h2>\n", html.EscapeString(file.FilePath))
		for i, citation := range file.Citations {
			b.WriteString("    <div class='citation'>\n")
			fmt.Fprintf(&b, "        <h3>Citation %d</h3>\n", i+1)
			b.WriteString("        <ul>\n")
			if citation.SourceURL != "" {
				fmt.Fprintf(&b, "            <li><strong>Source:</strong> %s</li>\n", html.EscapeString(citation.SourceURL))
			}
			if citation.Author != "" {
				fmt.Fprintf(&b, "            <li><strong>Author:</strong> %s</li>\n", html.EscapeString(citation.Author))
			}
			if citation.Date != "" {
				fmt.Fprintf(&b, "            <li><strong>Date:</strong> %s</li>\n", html.EscapeString(citation.Date))
			}
			if citation.Description != "" {
				fmt.Fprintf(&b, "            <li><strong>Description:</strong> %s</li>\n", html.EscapeString(citation.Description))
			}
			b.WriteString("        </ul>\n")
			b.WriteString("    </div>\n")
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// citationJSON is the machine-readable citation shape. The JSON document is
// the authoritative contract; Markdown and HTML are projections of it.
type citationJSON struct {
	Source      string `json:"source"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	DateValid   bool   `json:"date_valid"`
	Description string `json:"description"`
	Line        int    `json:"line"`
}

type fileJSON struct {
	File      string         `json:"file"`
	Citations []citationJSON `json:"citations"`
}

type documentJSON struct {
	Title string     `json:"title"`
	Files []fileJSON `json:"files"`
}

func renderJSON(result models.ScanResult) (string, error) {
	doc := documentJSON{
		Title: documentTitle,
		Files: make([]fileJSON, 0, len(result.Files)),
	}
	for _, file := range result.Files {
		entry := fileJSON{
			File:      file.FilePath,
			Citations: make([]citationJSON, 0, len(file.Citations)),
		}
		for _, citation := range file.Citations {
			entry.Citations = append(entry.Citations, citationJSON{
				Source:      citation.SourceURL,
				Author:      citation.Author,
				Date:        citation.Date,
				DateValid:   citation.DateValid,
				Description: citation.Description,
				Line:        citation.LineNumber,
			})
		}
		doc.Files = append(doc.Files, entry)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling citation document: %w", err)
	}
	return string(data) + "\n", nil
}
