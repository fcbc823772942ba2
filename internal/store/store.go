// Package store persists the scan baseline index between runs, with
// numeric fields kept as strings so the serialized form round-trips
// exactly regardless of format.
package store

import (
	"os"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/Mushinako/uniqfiles/internal/scan"
)

// Row is the on-disk representation of one FileRecord. Size and MTime are
// kept as decimal strings, matching the source implementation's db.py
// convention, so that large sizes and exact mtime floats are not subject to
// a serializer's own numeric formatting.
type Row struct {
	Path  string `yaml:"path" msgpack:"path"`
	Size  string `yaml:"size" msgpack:"size"`
	MTime string `yaml:"mtime" msgpack:"mtime"`
	MD5   string `yaml:"md5" msgpack:"md5"`
	SHA1  string `yaml:"sha1" msgpack:"sha1"`
}

// Store loads and saves a baseline index keyed by path.
type Store interface {
	Load() (map[string]scan.FileRecord, error)
	Save(records map[string]scan.FileRecord) error
}

func recordToRow(r scan.FileRecord) Row {
	return Row{
		Path:  r.Path,
		Size:  strconv.FormatUint(r.Size, 10),
		MTime: strconv.FormatFloat(r.MTime, 'f', -1, 64),
		MD5:   r.MD5,
		SHA1:  r.SHA1,
	}
}

func rowToRecord(row Row) (scan.FileRecord, error) {
	size, err := strconv.ParseUint(row.Size, 10, 64)
	if err != nil {
		return scan.FileRecord{}, err
	}
	mtime, err := strconv.ParseFloat(row.MTime, 64)
	if err != nil {
		return scan.FileRecord{}, err
	}
	return scan.FileRecord{
		Path:  row.Path,
		Size:  size,
		MTime: mtime,
		MD5:   row.MD5,
		SHA1:  row.SHA1,
	}, nil
}

func rowsToMap(rows []Row) (map[string]scan.FileRecord, error) {
	out := make(map[string]scan.FileRecord, len(rows))
	for _, row := range rows {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, err
		}
		out[rec.Path] = rec
	}
	return out, nil
}

func mapToRows(records map[string]scan.FileRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordToRow(rec))
	}
	return rows
}

// YAMLStore persists the index as a YAML document of rows.
type YAMLStore struct {
	Path string
}

func (s *YAMLStore) Load() (map[string]scan.FileRecord, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return map[string]scan.FileRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rowsToMap(rows)
}

func (s *YAMLStore) Save(records map[string]scan.FileRecord) error {
	data, err := yaml.Marshal(mapToRows(records))
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// MsgpackStore persists the index as a msgpack-encoded array of rows, for
// callers that prefer a compact binary baseline over a human-readable one.
type MsgpackStore struct {
	Path string
}

func (s *MsgpackStore) Load() (map[string]scan.FileRecord, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return map[string]scan.FileRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	var rows []Row
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rowsToMap(rows)
}

func (s *MsgpackStore) Save(records map[string]scan.FileRecord) error {
	data, err := msgpack.Marshal(mapToRows(records))
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}
