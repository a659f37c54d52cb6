package batch

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyanlabs/logocrop/pkg/logo"
)

func TestWriteReport(t *testing.T) {
	s := &Summary{
		Rows: []Row{
			{
				Filename: "acme.png", Width: 100, Height: 100,
				Result: &logo.Result{
					Box:          image.Rect(39, 39, 61, 61),
					ContentWidth: 20, ContentHeight: 20,
					OutputWidth: 22, OutputHeight: 22,
				},
			},
			{Filename: "blank.png", Width: 50, Height: 50, PassThrough: true},
			{Filename: "broken.jpg", Err: errors.New("decoding image: bad header")},
		},
		Processed:     1,
		PassedThrough: 1,
		Failed:        1,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "acme.png")
	assert.Contains(t, out, "22x22")
	assert.Contains(t, out, "no content, kept original")
	assert.Contains(t, out, "ERROR: decoding image: bad header")
	assert.Contains(t, out, "Processed: 1  Pass-through: 1  Failed: 1")
}

func TestWriteAnalysisReport(t *testing.T) {
	s := &AnalysisSummary{
		Rows: []AnalysisRow{
			{
				Filename: "acme.png",
				Analysis: &logo.Analysis{
					Width: 100, Height: 100,
					ContentPct: 4.0,
					PadLeft:    40, PadRight: 40, PadTop: 40, PadBottom: 40,
					NeedsCrop: true,
				},
			},
			{Filename: "blank.png"},
		},
		NeedsCrop: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAnalysisReport(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "YES")
	assert.Contains(t, out, "40/40/40/40")
	assert.Contains(t, out, "no content detected")
	assert.Contains(t, out, "Needing crop: 1")
}
