package pedmodels

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// PED reads the six leading columns of a pedigree file, one row at a time.
// Blank lines and lines starting with '#' are skipped.
type PED struct {
	path    string
	scanner *bufio.Scanner
	tabs    bool
	line    int
	err     error
}

// OpenPED opens a local or gs:// pedigree file, transparently decompressing
// it, and detects whether its columns are tab or whitespace delimited.
func OpenPED(path string, client *storage.Client) (*PED, error) {
	raw, _, err := OpenSeeker(ExpandHome(path), client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	defer raw.Close()

	rc, err := MaybeDecompressReadCloser(raw)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	// Pedigrees are small; buffer the whole thing so the delimiter can be
	// sniffed without rewinding a possibly remote stream.
	contents, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	p := NewPEDReader(bytes.NewReader(contents))
	p.path = path
	return p, nil
}

// NewPEDReader wraps an in-memory or already-opened pedigree stream.
func NewPEDReader(r io.Reader) *PED {
	contents, err := io.ReadAll(r)

	p := &PED{
		err:     err,
		tabs:    DetermineDelimiter(bytes.NewReader(contents)) == '\t',
		scanner: bufio.NewScanner(bytes.NewReader(contents)),
	}

	return p
}

// Close is a nop: the input is fully buffered when the reader is created.
func (p *PED) Close() error {
	return nil
}

func (p *PED) Err() error {
	if p.err != nil {
		return p.err
	}

	return p.scanner.Err()
}

// Read returns the next row, or nil at the end of the input or on error (see
// Err).
func (p *PED) Read() *PEDRow {
	if p.err != nil {
		return nil
	}

	for p.scanner.Scan() {
		p.line++

		data := strings.TrimSpace(p.scanner.Text())
		if data == "" || strings.HasPrefix(data, "#") {
			continue
		}

		var cols []string
		if p.tabs {
			cols = strings.Split(data, "\t")
			for i := range cols {
				cols[i] = strings.TrimSpace(cols[i])
			}
		} else {
			cols = strings.Fields(data)
		}

		if len(cols) < Phenotype+1 {
			p.err = pfx.Err(fmt.Errorf("%s line %d: expected at least %d columns, found %d", p.path, p.line, Phenotype+1, len(cols)))
			return nil
		}

		return &PEDRow{
			FamilyID:     cols[FamilyID],
			IndividualID: cols[IndividualID],
			PaternalID:   cols[PaternalID],
			MaternalID:   cols[MaternalID],
			Sex:          cols[Sex],
			Phenotype:    cols[Phenotype],
			Line:         p.line,
		}
	}

	return nil
}

// ReadAll drains the reader.
func (p *PED) ReadAll() ([]PEDRow, error) {
	out := make([]PEDRow, 0)
	for row := p.Read(); row != nil; row = p.Read() {
		out = append(out, *row)
	}

	return out, p.Err()
}
