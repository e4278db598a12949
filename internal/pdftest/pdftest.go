// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Size is a page size in PDF points (1/72 inch).
type Size struct {
	W, H float64
}

// Letter is US Letter in points.
var Letter = Size{W: 612, H: 792}

// Build returns a PDF with one blank page per entry in pages. Objects are
// numbered catalog=1, page tree=2, pages from 3, and the xref table carries
// exact byte offsets so strict parsers accept the file without repair.
func Build(pages ...Size) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0, len(pages)+2)

	obj := func(format string, args ...any) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n", len(offsets))
		fmt.Fprintf(&buf, format, args...)
		buf.WriteString("\nendobj\n")
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	obj("<< /Type /Catalog /Pages 2 0 R >>")

	var kids bytes.Buffer
	for i := range pages {
		fmt.Fprintf(&kids, "%d 0 R ", i+3)
	}
	obj("<< /Type /Pages /Kids [ %s] /Count %d >>", kids.String(), len(pages))

	for _, p := range pages {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Resources << >> >>", p.W, p.H)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// Write stores a PDF with the given pages as name inside dir and returns its path.
func Write(t testing.TB, dir, name string, pages ...Size) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteCorrupt stores bytes that carry a .pdf name but are not a PDF.
func WriteCorrupt(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("this is not a pdf document\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
