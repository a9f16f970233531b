package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxTiles bounds the grid size accepted by Decode.
const MaxTiles = 1 << 24

// Decode grows tile storage as the body is read, starting from at most
// decodeChunk tiles, so memory follows the data actually present rather
// than the header's claim.
const decodeChunk = 4096

const noteKeyword = "note"

// Encode writes the map in the text layout used inside map files:
//
//	<width> <height> <floors>
//	<floor> <horizWall> <vertWall> <glyph> ... (one row per y, x ascending)
//	(blank line after each floor)
//
// Tiles with notes follow as "note <x> <y> <z> <quoted text>" lines. A map
// without notes has no trailer at all.
func Encode(w io.Writer, m *Map) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)

	buf = strconv.AppendInt(buf, int64(m.width), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(m.height), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(m.floors), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for z := 0; z < m.floors; z++ {
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				t := m.at(x, y, z)
				buf = buf[:0]
				for _, v := range [4]int{t.floor, t.horizWall, t.vertWall, t.glyph} {
					buf = strconv.AppendInt(buf, int64(v), 10)
					buf = append(buf, ' ')
				}
				if _, err := bw.Write(buf); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	for z := 0; z < m.floors; z++ {
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				note := m.at(x, y, z).note
				if note == "" {
					continue
				}
				if _, err := fmt.Fprintf(bw, "%s %d %d %d %s\n", noteKeyword, x, y, z, strconv.Quote(note)); err != nil {
					return err
				}
			}
		}
	}

	return bw.Flush()
}

// Decode parses a map written by Encode. Integers are read as whitespace
// separated tokens, so column alignment and trailing spaces do not matter.
// The returned map is named UntitledName.
func Decode(r io.Reader) (*Map, error) {
	tr := &tokenReader{r: bufio.NewReader(r)}

	var dims [3]int
	for i := range dims {
		v, err := tr.readInt()
		if err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		dims[i] = v
	}
	width, height, floors := dims[0], dims[1], dims[2]
	if width <= 0 || height <= 0 || floors <= 0 {
		return nil, fmt.Errorf("%w: header %dx%dx%d", ErrInvalidDimensions, width, height, floors)
	}
	if width > MaxTiles || height > MaxTiles || floors > MaxTiles ||
		int64(width)*int64(height) > int64(MaxTiles/floors) {
		return nil, fmt.Errorf("%w: header %dx%dx%d exceeds %d tiles", ErrMalformedFile, width, height, floors, MaxTiles)
	}

	total := width * height * floors
	tiles := make([]Tile, 0, min(total, decodeChunk))
	for i := 0; i < total; i++ {
		x, y, z := i%width, (i/width)%height, i/(width*height)
		var v [4]int
		for j := range v {
			var err error
			if v[j], err = tr.readInt(); err != nil {
				return nil, fmt.Errorf("reading tile (%d,%d,%d): %w", x, y, z, err)
			}
		}
		t := Tile{floor: v[0], horizWall: v[1], vertWall: v[2], glyph: v[3]}
		if err := checkTile(t); err != nil {
			return nil, fmt.Errorf("tile (%d,%d,%d): %w", x, y, z, err)
		}
		tiles = append(tiles, t)
	}
	m := newMap(width, height, floors, tiles)

	if err := decodeNotes(tr, m); err != nil {
		return nil, err
	}

	return m, nil
}

// checkTile rejects swatch indices the palette does not define.
func checkTile(t Tile) error {
	switch {
	case t.floor >= FloorTypes:
		return fmt.Errorf("%w: floor %d", ErrMalformedFile, t.floor)
	case t.glyph >= GlyphTypes:
		return fmt.Errorf("%w: glyph %d", ErrMalformedFile, t.glyph)
	case !IsStoredWall(t.horizWall):
		return fmt.Errorf("%w: wall %d", ErrMalformedFile, t.horizWall)
	case !IsStoredWall(t.vertWall):
		return fmt.Errorf("%w: wall %d", ErrMalformedFile, t.vertWall)
	}
	return nil
}

// decodeNotes reads the optional note trailer until end of input.
func decodeNotes(tr *tokenReader, m *Map) error {
	for {
		tok, err := tr.readToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if tok != noteKeyword {
			return fmt.Errorf("%w: unexpected token %q after tiles", ErrMalformedFile, tok)
		}

		var pos [3]int
		for i := range pos {
			if pos[i], err = tr.readInt(); err != nil {
				return fmt.Errorf("reading note position: %w", err)
			}
		}
		if !m.InBounds(pos[0], pos[1], pos[2]) {
			return fmt.Errorf("%w: note at (%d,%d,%d) outside map", ErrMalformedFile, pos[0], pos[1], pos[2])
		}

		line, err := tr.readLine()
		if err != nil {
			return err
		}
		text, err := strconv.Unquote(strings.TrimSpace(line))
		if err != nil {
			return fmt.Errorf("%w: note at (%d,%d,%d): %v", ErrMalformedFile, pos[0], pos[1], pos[2], err)
		}
		m.at(pos[0], pos[1], pos[2]).SetNote(text)
	}
}

// tokenReader splits a stream into whitespace separated tokens.
type tokenReader struct {
	r *bufio.Reader
}

// readToken returns the next token, or io.EOF if only whitespace remains.
func (tr *tokenReader) readToken() (string, error) {
	var sb strings.Builder
	for {
		b, err := tr.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if sb.Len() > 0 {
					return sb.String(), nil
				}
				return "", io.EOF
			}
			return "", wrapReadErr(err)
		}
		if isSpace(b) {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

// readInt returns the next token as a non-negative integer.
func (tr *tokenReader) readInt() (int, error) {
	tok, err := tr.readToken()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: unexpected end of data", ErrMalformedFile)
	}
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", ErrMalformedFile, tok)
	}
	return v, nil
}

// readLine returns the rest of the current line without its terminator.
func (tr *tokenReader) readLine() (string, error) {
	line, err := tr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", wrapReadErr(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// wrapReadErr classifies a failed read. A stream cut short is a malformed
// file; anything else is an i/o failure.
func wrapReadErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated stream", ErrMalformedFile)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
