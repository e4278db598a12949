// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2img/internal/pdftest"
	"github.com/pdiddy/pdf2img/pkg/types"
)

func TestMuPDFRenderDimensions(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.Write(t, dir, "doc.pdf",
		pdftest.Size{W: 72, H: 144},
		pdftest.Size{W: 72, H: 72},
	)

	doc, err := NewMuPDF().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.PageCount())

	tests := []struct {
		name         string
		index        int
		scale        float64
		wantW, wantH int
	}{
		{"base resolution", 0, 1, 72, 144},
		{"double", 0, 2, 144, 288},
		{"150 dpi square page", 1, 150.0 / 72.0, 150, 150},
		{"300 dpi square page", 1, 300.0 / 72.0, 300, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := doc.RenderPage(tt.index, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestMuPDFRenderOutOfRange(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "one.pdf", pdftest.Letter)

	doc, err := NewMuPDF().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.RenderPage(1, 1)
	var rangeErr *PageRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.Index)
	assert.Equal(t, 1, rangeErr.Count)

	_, err = doc.RenderPage(-1, 1)
	require.ErrorAs(t, err, &rangeErr)
}

func TestMuPDFOpenCorrupt(t *testing.T) {
	path := pdftest.WriteCorrupt(t, t.TempDir(), "broken.pdf")

	_, err := NewMuPDF().Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

// fakeRuntime implements container.Runtime, answering Exec with a PNG.
type fakeRuntime struct {
	png      []byte
	err      error
	commands [][]string
	stdin    []byte
}

func (f *fakeRuntime) Name() string             { return "docker" }
func (f *fakeRuntime) Available() bool          { return true }
func (f *fakeRuntime) ImageExists(string) error { return nil }
func (f *fakeRuntime) Pull(string) error        { return nil }

func (f *fakeRuntime) Exec(_ string, command []string, stdin io.Reader, stdout io.Writer) error {
	f.commands = append(f.commands, command)
	f.stdin, _ = io.ReadAll(stdin)
	if f.err != nil {
		return f.err
	}
	_, err := stdout.Write(f.png)
	return err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestPopplerRenderPage(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "doc.pdf", pdftest.Letter, pdftest.Letter, pdftest.Letter)
	rt := &fakeRuntime{png: pngBytes(t, 20, 10)}
	p := NewPoppler(rt, "poppler:test")
	p.pageCount = func(string) (int, error) { return 3, nil }

	doc, err := p.Open(path)
	require.NoError(t, err)
	defer doc.Close()
	require.Equal(t, 3, doc.PageCount())

	img, err := doc.RenderPage(2, 150.0/72.0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())

	require.Len(t, rt.commands, 1)
	assert.Equal(t, "pdftoppm -r 150 -f 3 -l 3 -png -singlefile -", strings.Join(rt.commands[0], " "))
	assert.True(t, bytes.HasPrefix(rt.stdin, []byte("%PDF-")), "document should be streamed on stdin")
}

func TestPopplerRenderErrors(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "doc.pdf", pdftest.Letter)

	t.Run("container failure", func(t *testing.T) {
		p := NewPoppler(&fakeRuntime{err: errors.New("exit status 1")}, "poppler:test")
		p.pageCount = func(string) (int, error) { return 1, nil }
		doc, err := p.Open(path)
		require.NoError(t, err)

		_, err = doc.RenderPage(0, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rendering page 1 with poppler")
	})

	t.Run("non-png output", func(t *testing.T) {
		p := NewPoppler(&fakeRuntime{png: []byte("garbage")}, "poppler:test")
		p.pageCount = func(string) (int, error) { return 1, nil }
		doc, err := p.Open(path)
		require.NoError(t, err)

		_, err = doc.RenderPage(0, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding pdftoppm output")
	})

	t.Run("out of range", func(t *testing.T) {
		rt := &fakeRuntime{}
		p := NewPoppler(rt, "poppler:test")
		p.pageCount = func(string) (int, error) { return 1, nil }
		doc, err := p.Open(path)
		require.NoError(t, err)

		_, err = doc.RenderPage(5, 1)
		var rangeErr *PageRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Empty(t, rt.commands, "no container should run for an invalid index")
	})
}

func TestPopplerOpenUsesPDFCPU(t *testing.T) {
	dir := t.TempDir()
	p := NewPoppler(&fakeRuntime{}, "poppler:test")

	good := pdftest.Write(t, dir, "good.pdf", pdftest.Letter, pdftest.Letter)
	doc, err := p.Open(good)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.PageCount())
	require.NoError(t, doc.Close())

	bad := pdftest.WriteCorrupt(t, dir, "bad.pdf")
	_, err = p.Open(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening")
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(types.ConversionConfig{Backend: "ghostscript"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestNewDefaultsToMuPDF(t *testing.T) {
	r, err := New(types.ConversionConfig{})
	require.NoError(t, err)
	assert.Equal(t, types.BackendMuPDF, r.Name())
}

func TestPdftoppmCommandFractionalDPI(t *testing.T) {
	cmd := pdftoppmCommand(1, 100.5)
	assert.Equal(t, []string{"pdftoppm", "-r", "100.5", "-f", "1", "-l", "1", "-png", "-singlefile", "-"}, cmd)
	assert.Equal(t, "-", cmd[len(cmd)-1], "input from stdin and no output root, so the PNG goes to stdout")
}
