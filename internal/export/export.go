// Package export writes entry data out of the session: tag listings as
// CSV or NDJSON, and extracted binary payloads as files.
package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"exiftui/internal/model"
)

var (
	ErrEmptyName = errors.New("please enter a name")
	ErrEmptyExt  = errors.New("please enter an extension")
	ErrExists    = errors.New("file with this name already exists")
)

// DefaultBinaryDir is where extracted payloads land unless overridden.
func DefaultBinaryDir() string {
	if d := xdg.UserDirs.Download; d != "" {
		return d
	}
	return "."
}

// SaveBinary writes data to dir/name.ext, refusing empty names, empty
// extensions, and existing files. A leading dot on ext is stripped. On
// any refusal no file is touched.
func SaveBinary(dir, name, ext string, data []byte) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return "", ErrEmptyExt
	}
	path := filepath.Join(dir, name+"."+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrExists
		}
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ToCSV writes the entries of one file as CSV rows.
func ToCSV(path, source string, entries []*model.Entry) error {
	if len(entries) == 0 {
		return errors.New("no entries")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"file", "family", "short_name", "name", "id", "value", "num", "index"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			source,
			e.Table.String(),
			e.ShortName,
			e.Name,
			"",
			e.Value.Render(),
			e.NumOrValue().Render(),
			"",
		}
		if e.ID != nil {
			row[4] = fmt.Sprint(*e.ID)
		}
		if e.Index != nil {
			row[7] = fmt.Sprint(*e.Index)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

type jsonEntry struct {
	File      string   `json:"file"`
	Family    string   `json:"family"`
	ShortName string   `json:"shortName"`
	Name      string   `json:"name"`
	ID        *uint64  `json:"id,omitempty"`
	Value     string   `json:"value"`
	Num       string   `json:"num,omitempty"`
	Index     *uint64  `json:"index,omitempty"`
	BinaryKB  *float64 `json:"binaryKB,omitempty"`
}

// ToNDJSON writes the entries of one file as newline-delimited JSON.
func ToNDJSON(path, source string, entries []*model.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	bw := bufio.NewWriter(f)
	defer bw.Flush()
	for _, e := range entries {
		je := jsonEntry{
			File:      source,
			Family:    e.Table.String(),
			ShortName: e.ShortName,
			Name:      e.Name,
			ID:        e.ID,
			Value:     e.Value.Render(),
			Index:     e.Index,
			BinaryKB:  e.BinarySizeKB,
		}
		if e.Num != nil {
			je.Num = e.Num.Render()
		}
		b, _ := json.Marshal(je)
		if _, err := bw.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}
