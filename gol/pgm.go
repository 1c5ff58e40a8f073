package gol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"uk.ac.bris.cs/sharedlife/engine"
)

// WritePGM writes g as a binary PGM image, one byte per cell.
func WritePGM(w io.Writer, g *engine.Grid) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P5\n%d %d\n255\n", g.Width(), g.Height()); err != nil {
		return err
	}
	for _, c := range g.Cells() {
		if err := bw.WriteByte(byte(c)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPGM reads a binary PGM image. Any non-zero pixel is an alive cell.
func ReadPGM(r io.Reader) (*engine.Grid, error) {
	br := bufio.NewReader(r)
	var header []string
	for len(header) < 4 {
		token, err := readToken(br)
		if err != nil {
			return nil, fmt.Errorf("pgm header: %w", err)
		}
		header = append(header, token)
	}
	if header[0] != "P5" {
		return nil, fmt.Errorf("pgm: not a binary pgm (%q)", header[0])
	}
	width, err := strconv.Atoi(header[1])
	if err != nil || width < 1 {
		return nil, fmt.Errorf("pgm: bad width %q", header[1])
	}
	height, err := strconv.Atoi(header[2])
	if err != nil || height < 1 {
		return nil, fmt.Errorf("pgm: bad height %q", header[2])
	}
	if header[3] != "255" {
		return nil, fmt.Errorf("pgm: unsupported maxval %q", header[3])
	}
	if err := engine.CheckSize(width, height); err != nil {
		return nil, fmt.Errorf("pgm: %w", err)
	}

	pixels := make([]byte, width*height)
	if _, err := io.ReadFull(br, pixels); err != nil {
		return nil, fmt.Errorf("pgm: reading %dx%d pixels: %w", width, height, err)
	}
	cells := make([]engine.Cell, len(pixels))
	for i, p := range pixels {
		if p != 0 {
			cells[i] = engine.Alive
		}
	}
	return engine.GridFromCells(width, height, cells)
}

// readToken returns the next whitespace separated header token, skipping
// comments, and consumes exactly one whitespace byte after it.
func readToken(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		switch {
		case b == '#' && sb.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
		default:
			sb.WriteByte(b)
		}
	}
}

func loadPGM(path string) (*engine.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPGM(f)
}

// savePGM writes g to dir as WIDTHxHEIGHTxTURN.pgm and returns the file name.
func savePGM(dir string, g *engine.Grid, turn int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%vx%vx%v", g.Width(), g.Height(), turn)
	f, err := os.Create(filepath.Join(dir, filename+".pgm"))
	if err != nil {
		return "", err
	}
	if err := WritePGM(f, g); err != nil {
		f.Close()
		return "", err
	}
	return filename, f.Close()
}
