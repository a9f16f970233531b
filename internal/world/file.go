package world

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/dungeonmapper/internal/telemetry"
)

// Save writes the map to path as a gzip-compressed map file and renames the
// map after the file. The data is written to a temporary file in the same
// directory first, so a failed save leaves any existing file untouched.
func Save(ctx context.Context, m *Map, path string) (err error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.save")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	span.SetAttributes(
		attribute.String("map.path", path),
		attribute.Int("map.width", m.width),
		attribute.Int("map.height", m.height),
		attribute.Int("map.floors", m.floors),
		attribute.Int("map.notes", m.NoteCount()),
	)

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, tmpPath, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := gzip.NewWriter(f)
	if err = Encode(zw, m); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err = zw.Close(); err != nil {
		return fmt.Errorf("%w: compressing %s: %w", ErrIO, path, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: syncing %s: %w", ErrIO, path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIO, path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, path, err)
	}

	m.name = BaseName(path)
	return nil
}

// Load reads a gzip-compressed map file. The map is named after the file.
func Load(ctx context.Context, path string) (m *Map, err error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.load")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.String("map.path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s is not gzip-compressed", ErrMalformedFile, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}
	defer zr.Close()

	m, err = Decode(zr)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	m.name = BaseName(path)

	span.SetAttributes(
		attribute.Int("map.width", m.width),
		attribute.Int("map.height", m.height),
		attribute.Int("map.floors", m.floors),
		attribute.Int("map.notes", m.NoteCount()),
	)
	return m, nil
}
