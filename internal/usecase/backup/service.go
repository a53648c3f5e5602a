// Package backup encodes and decodes notebook snapshots, migrating older formats on the way in.
package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/eslsoft/vocnote/internal/entity"
)

const (
	formatVersion = entity.SnapshotVersion
	exportIndent  = "  "
)

// Migration rewrites a decoded document from one format version to the next.
type Migration func(doc map[string]any) error

// Service converts snapshots to and from their JSON text form.
type Service struct {
	migrations map[int]Migration
	indent     string
}

type Option func(*Service)

// WithMigration registers the migration that upgrades documents of version from.
func WithMigration(from int, m Migration) Option {
	return func(s *Service) {
		if m != nil {
			s.migrations[from] = m
		}
	}
}

// WithIndent sets the indentation used by Export. An empty indent writes compact JSON.
func WithIndent(indent string) Option {
	return func(s *Service) {
		s.indent = indent
	}
}

// NewService constructs a codec with the built-in migrations.
func NewService(opts ...Option) *Service {
	svc := &Service{
		migrations: defaultMigrations(),
		indent:     exportIndent,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Encode serializes a snapshot in compact form for durable storage.
func (s *Service) Encode(snap *entity.Snapshot) ([]byte, error) {
	out := snap.Clone()
	out.Version = formatVersion
	out.Normalize()
	return json.Marshal(out)
}

// Export writes the full snapshot as human readable text.
func (s *Service) Export(ctx context.Context, w io.Writer, snap *entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := snap.Clone()
	out.Version = formatVersion
	out.Normalize()

	writer := bufio.NewWriter(w)
	enc := json.NewEncoder(writer)
	enc.SetIndent("", s.indent)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return writer.Flush()
}

// Import reads a snapshot written by Export or by an older release.
func (s *Service) Import(ctx context.Context, r io.Reader) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return s.Decode(data)
}

// Decode parses, migrates and validates a snapshot. Every failure wraps entity.ErrParse.
func (s *Service) Decode(data []byte) (*entity.Snapshot, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, parseError(err)
	}

	version, err := documentVersion(doc)
	if err != nil {
		return nil, parseError(err)
	}
	if version > formatVersion {
		return nil, parseError(fmt.Errorf("unsupported format version %d", version))
	}
	for v := version; v < formatVersion; v++ {
		migrate, ok := s.migrations[v]
		if !ok {
			return nil, parseError(fmt.Errorf("no migration from format version %d", v))
		}
		if err := migrate(doc); err != nil {
			return nil, parseError(fmt.Errorf("migrate from version %d: %w", v, err))
		}
	}
	doc["version"] = formatVersion

	merged, err := mergeWithDefaults(doc)
	if err != nil {
		return nil, parseError(err)
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, parseError(err)
	}
	var snap entity.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, parseError(err)
	}
	snap.Normalize()
	if err := snap.Check(); err != nil {
		return nil, parseError(err)
	}
	return &snap, nil
}

func decodeDocument(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after document")
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be an object, got %T", raw)
	}
	return doc, nil
}

func documentVersion(doc map[string]any) (int, error) {
	raw, ok := doc["version"]
	if !ok || raw == nil {
		return 0, nil
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("version must be a number, got %T", raw)
	}
	v, err := num.Int64()
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid version %s", num)
	}
	return int(v), nil
}

// mergeWithDefaults lays doc over the default snapshot. Objects on both sides merge key by key;
// any other loaded value replaces the default.
func mergeWithDefaults(doc map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(entity.DefaultSnapshot())
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	for key, loaded := range doc {
		loadedObj, loadedIsObj := loaded.(map[string]any)
		defaultObj, defaultIsObj := result[key].(map[string]any)
		if loadedIsObj && defaultIsObj {
			merged := make(map[string]any, len(defaultObj)+len(loadedObj))
			for k, v := range defaultObj {
				merged[k] = v
			}
			for k, v := range loadedObj {
				merged[k] = v
			}
			result[key] = merged
			continue
		}
		result[key] = loaded
	}
	return result, nil
}

func parseError(err error) error {
	return fmt.Errorf("%w: %w", entity.ErrParse, err)
}
