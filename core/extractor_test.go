package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citetool/models"
)

func TestExtractFromStringFullBlock(t *testing.T) {
	content := `package main

// [CITATION] Source: https://example.com/article
// [CITATION] Author: Jane Doe
// [CITATION] Date: 2024-03-15
// [CITATION] Description: Binary search implementation
func search() {}
`
	records := ExtractFromString(content, SyntaxForExtension(".go"))
	require.Len(t, records, 1)
	assert.Equal(t, models.CitationRecord{
		SourceURL:   "https://example.com/article",
		Author:      "Jane Doe",
		Date:        "2024-03-15",
		DateValid:   true,
		Description: "Binary search implementation",
		LineNumber:  3,
	}, records[0])
}

func TestExtractFromStringMultipleBlocks(t *testing.T) {
	content := `# [CITATION] Source: https://a.example.com
# [CITATION] Author: First Author

x = 1

# [CITATION] Source: https://b.example.com
# [CITATION] Description: second block
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 2)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Equal(t, "First Author", records[0].Author)
	assert.Equal(t, 1, records[0].LineNumber)
	assert.Equal(t, "https://b.example.com", records[1].SourceURL)
	assert.Equal(t, "second block", records[1].Description)
	assert.Equal(t, 6, records[1].LineNumber)
}

func TestExtractFromStringNewSourceStartsNewRecord(t *testing.T) {
	// Two consecutive Source lines with no code in between still split into
	// two records.
	content := `# [CITATION] Source: https://a.example.com
# [CITATION] Source: https://b.example.com
# [CITATION] Author: Only On Second
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 2)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Empty(t, records[0].Author)
	assert.Equal(t, "https://b.example.com", records[1].SourceURL)
	assert.Equal(t, "Only On Second", records[1].Author)
}

func TestExtractFromStringDuplicateLabelOverwrites(t *testing.T) {
	content := `# [CITATION] Author: First
# [CITATION] Author: Second
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "Second", records[0].Author)
	assert.Equal(t, 1, records[0].LineNumber)
}

func TestExtractFromStringNonCommentLineClosesBlock(t *testing.T) {
	content := `# [CITATION] Source: https://a.example.com
print("code")
# [CITATION] Author: Late Author
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 2)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Empty(t, records[0].Author)
	assert.Equal(t, "Late Author", records[1].Author)
	assert.Empty(t, records[1].SourceURL)
}

func TestExtractFromStringBlankLinesDoNotCloseBlock(t *testing.T) {
	content := `# [CITATION] Source: https://a.example.com

# [CITATION] Author: Still Same Block
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Equal(t, "Still Same Block", records[0].Author)
}

func TestExtractFromStringPlainCommentClosesBlock(t *testing.T) {
	content := `# [CITATION] Source: https://a.example.com
# just a regular comment
# [CITATION] Author: After Regular Comment
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 2)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Empty(t, records[0].Author)
	assert.Equal(t, "After Regular Comment", records[1].Author)
}

func TestExtractFromStringUnknownLabelIgnored(t *testing.T) {
	content := `# [CITATION] Source: https://a.example.com
# [CITATION] License: MIT
# [CITATION] Author: Jane
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://a.example.com", records[0].SourceURL)
	assert.Equal(t, "Jane", records[0].Author)
}

func TestExtractFromStringAllEmptyDiscarded(t *testing.T) {
	content := `# [CITATION] Source:
# [CITATION] Author:
# [CITATION] Date:
# [CITATION] Description:
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	assert.Empty(t, records)
}

func TestExtractFromStringPartialBlock(t *testing.T) {
	content := `# [CITATION] Description: only a description
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "only a description", records[0].Description)
	assert.Empty(t, records[0].SourceURL)
	assert.False(t, records[0].DateValid)
}

func TestExtractFromStringDateValidity(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		valid bool
	}{
		{"iso date", "2024-03-15", true},
		{"textual date kept raw", "March 15, 2024", false},
		{"impossible day", "2024-02-31", false},
		{"wrong separator", "2024/03/15", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ExtractFromString("# [CITATION] Date: "+tt.date+"\n", SyntaxForExtension(".py"))
			require.Len(t, records, 1)
			assert.Equal(t, tt.date, records[0].Date)
			assert.Equal(t, tt.valid, records[0].DateValid)
		})
	}
}

func TestExtractFromStringDescriptionWhitespaceCollapsed(t *testing.T) {
	records := ExtractFromString("# [CITATION] Description: uses    the\tclassic   approach\n", SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "uses the classic approach", records[0].Description)
}

func TestExtractFromStringBlockCommentStyle(t *testing.T) {
	content := `/*
 * [CITATION] Source: https://c.example.com
 * [CITATION] Author: Block Author
 */
int main() { return 0; }
`
	records := ExtractFromString(content, SyntaxForExtension(".c"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://c.example.com", records[0].SourceURL)
	assert.Equal(t, "Block Author", records[0].Author)
	assert.Equal(t, 2, records[0].LineNumber)
}

func TestExtractFromStringHTMLComments(t *testing.T) {
	content := `<html>
<!-- [CITATION] Source: https://h.example.com -->
<!-- [CITATION] Description: layout borrowed from a template -->
<body></body>
</html>
`
	records := ExtractFromString(content, SyntaxForExtension(".html"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://h.example.com", records[0].SourceURL)
	assert.Equal(t, "layout borrowed from a template", records[0].Description)
	assert.Equal(t, 2, records[0].LineNumber)
}

func TestExtractFromStringUnknownExtensionUsesSlashes(t *testing.T) {
	content := `// [CITATION] Source: https://u.example.com
`
	records := ExtractFromString(content, SyntaxForExtension(".unknownext"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://u.example.com", records[0].SourceURL)
}

func TestExtractFromStringValueContainingColons(t *testing.T) {
	// Only the first colon after the label separates label from value.
	records := ExtractFromString("# [CITATION] Source: https://example.com:8080/path\n", SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com:8080/path", records[0].SourceURL)
}

func TestExtractFromStringCRLFContent(t *testing.T) {
	content := "# [CITATION] Source: https://a.example.com\r\n# [CITATION] Author: CRLF Author\r\n"
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	require.Len(t, records, 1)
	assert.Equal(t, "CRLF Author", records[0].Author)
}

func TestExtractFromStringNoCitations(t *testing.T) {
	content := `# regular comment
x = 1
# another comment
`
	records := ExtractFromString(content, SyntaxForExtension(".py"))
	assert.Empty(t, records)
}

func TestExtractFromStringEmptyContent(t *testing.T) {
	assert.Empty(t, ExtractFromString("", SyntaxForExtension(".go")))
}
