package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Title: "Hallazgos",
		Columns: []Column{
			{Key: "title", Label: "Título", Weight: 2},
			{Key: "classification", Label: "Clasificación"},
		},
		Rows: []map[string]string{
			{"title": "Conciliación bancaria tardía", "classification": "Importante"},
			{"title": "Accesos sin revisión, \"críticos\"", "classification": "Crítico"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter(false).Render(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Título,Clasificación", lines[0])
	assert.Equal(t, `"Accesos sin revisión, ""críticos""",Crítico`, lines[2])
}

func TestCSVExporterBOM(t *testing.T) {
	out, err := NewCSVExporter(true).Render(sampleTable())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, utf8BOM))
}

func TestExportersRequireColumns(t *testing.T) {
	_, err := NewCSVExporter(false).Render(Table{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Table{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	table := sampleTable()
	for i := 0; i < 120; i++ {
		table.Rows = append(table.Rows, map[string]string{"title": strings.Repeat("texto largo ", 20), "classification": "Menor"})
	}
	out, err := NewPDFExporter().Render(table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsUseWeights(t *testing.T) {
	widths := columnWidths([]Column{{Weight: 3}, {}}, 200)
	assert.InDelta(t, 150, widths[0], 0.001)
	assert.InDelta(t, 50, widths[1], 0.001)
}

func TestWrapTextSplitsOnWidth(t *testing.T) {
	pdf := newTestPDF()
	lines := wrapText(pdf, "uno dos tres cuatro cinco seis siete ocho", 20)
	assert.Greater(t, len(lines), 1)
	assert.Equal(t, "uno dos tres cuatro cinco seis siete ocho", strings.Join(lines, " "))
	assert.Equal(t, []string{""}, wrapText(pdf, "   ", 20))
}

func newTestPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 8)
	return pdf
}
