package docgen

import (
	"bytes"
	"strings"
	"testing"
)

func sampleDocument() Document {
	return Document{
		Title:  "Monthly Report",
		Period: "2026-09-01 to 2026-09-30",
		Sections: []Section{
			{
				Title:   "Revenue",
				Headers: []string{"Day", "Revenue", "Transactions"},
				Rows: [][]string{
					{"2026-09-01", "100.00", "4"},
					{"2026-09-02", "50.50", "2"},
				},
			},
			{
				Title:   "Bookings",
				Headers: []string{"Status", "Count"},
				Rows: [][]string{
					{"confirmed", "12"},
					{"cancelled", "3"},
				},
			},
		},
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleDocument())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	content := string(data)

	for _, want := range []string{"Revenue", "Day,Revenue,Transactions", "2026-09-01,100.00,4", "Bookings", "confirmed,12"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected csv to contain %q, got:\n%s", want, content)
		}
	}

	// Sections are separated by a blank line.
	if !strings.Contains(content, "\n\nBookings") {
		t.Errorf("expected blank line before second section, got:\n%s", content)
	}
}

func TestRenderCSVEmptyDocument(t *testing.T) {
	data, err := RenderCSV(Document{Title: "Empty"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data) != 0 {
		t.Errorf("expected empty output for document without sections, got %q", string(data))
	}
}

func TestRenderExcel(t *testing.T) {
	data, err := RenderExcel(sampleDocument())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(data) == 0 {
		t.Error("expected non-empty excel output")
	}

	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("expected excel output to be a zip archive")
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(sampleDocument())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected pdf output to start with the pdf magic bytes")
	}
}

func TestSheetName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		index    int
		expected string
	}{
		{
			name:     "regular title",
			title:    "Revenue",
			index:    0,
			expected: "Revenue",
		},
		{
			name:     "empty title falls back to index",
			title:    "",
			index:    2,
			expected: "Sheet3",
		},
		{
			name:     "long title is truncated to the excel limit",
			title:    strings.Repeat("a", 40),
			index:    0,
			expected: strings.Repeat("a", 28) + "~1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sheetName(tt.title, tt.index)
			if result != tt.expected {
				t.Errorf("expected sheetName(%q, %d) to be %q, got %q", tt.title, tt.index, tt.expected, result)
			}
		})
	}
}

func TestSheetNameLongTitlesStayUnique(t *testing.T) {
	prefix := strings.Repeat("b", 40)

	first := sheetName(prefix+" monthly", 0)
	second := sheetName(prefix+" weekly", 1)

	if first == second {
		t.Errorf("expected distinct sheet names for titles sharing a prefix, got %q twice", first)
	}

	for _, name := range []string{first, second} {
		if len(name) > 31 {
			t.Errorf("expected sheet name within the excel limit, got %d characters: %q", len(name), name)
		}
	}
}
