// Package exiftool shells out to the exiftool binary and decodes its
// JSON output into entry sets, preserving the tool's own tag order.
package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"exiftui/internal/model"
	"exiftui/internal/util/logx"
)

// ErrNoData is returned when exiftool produced no entries for the
// given inputs.
var ErrNoData = errors.New("exiftool produced no data")

// Runner invokes a specific exiftool binary.
type Runner struct {
	Bin string // defaults to "exiftool" in PATH
}

func (r Runner) bin() string {
	if r.Bin != "" {
		return r.Bin
	}
	return "exiftool"
}

// Run extracts metadata for the given paths. Directories are expanded
// by exiftool itself; recursive adds -r. A nonzero exit is tolerated
// when exiftool still produced output (it exits nonzero when some of
// several inputs fail).
func (r Runner) Run(ctx context.Context, paths []string, recursive bool) ([]model.FileEntrySet, error) {
	args := make([]string, 0, len(paths)+6)
	args = append(args, paths...)
	args = append(args, "-j", "-G4", "-l", "-D", "-t")
	if recursive {
		args = append(args, "-r")
	}
	cmd := exec.CommandContext(ctx, r.bin(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	logx.Debugf("exiftool: running %s %s", r.bin(), strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if stdout.Len() == 0 {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return nil, fmt.Errorf("run %s: %w", r.bin(), err)
			}
			return nil, fmt.Errorf("run %s: %s", r.bin(), msg)
		}
		logx.Warnf("exiftool: nonzero exit with partial output: %v", err)
	}
	files, err := Parse(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoData
	}
	return files, nil
}

// ExtractBinary pulls the raw payload of one tag with -b. The caller is
// responsible for checking the tag actually carries binary data.
func (r Runner) ExtractBinary(ctx context.Context, path, shortName string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.bin(), path, "-"+shortName, "-b")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("extract %s: %w", shortName, err)
		}
		return nil, fmt.Errorf("extract %s: %s", shortName, msg)
	}
	return stdout.Bytes(), nil
}

// rawTag mirrors one tag object from exiftool -j -l -D -t output.
type rawTag struct {
	Desc  string          `json:"desc"`
	ID    json.RawMessage `json:"id"`
	Table string          `json:"table"`
	Val   json.RawMessage `json:"val"`
	Num   json.RawMessage `json:"num"`
	Index *uint64         `json:"index"`
}

// Parse decodes an exiftool JSON document into one entry set per file.
// Tags keep the order exiftool wrote them in, which is why this walks
// tokens instead of decoding into a map.
func Parse(data []byte) ([]model.FileEntrySet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("parse exiftool output: %w", err)
	}
	var files []model.FileEntrySet
	for dec.More() {
		fs, err := parseFile(dec)
		if err != nil {
			return nil, err
		}
		files = append(files, fs)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, fmt.Errorf("parse exiftool output: %w", err)
	}
	return files, nil
}

func parseFile(dec *json.Decoder) (model.FileEntrySet, error) {
	var fs model.FileEntrySet
	if err := expectDelim(dec, '{'); err != nil {
		return fs, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fs, err
		}
		key, ok := tok.(string)
		if !ok {
			return fs, fmt.Errorf("unexpected token %v in tag object", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fs, err
		}
		if strings.Contains(key, "SourceFile") {
			var path string
			if err := json.Unmarshal(raw, &path); err == nil {
				fs.Path = path
			}
			continue
		}
		if len(raw) == 0 || raw[0] != '{' {
			// non-object fields carry nothing we display
			continue
		}
		entry, err := parseEntry(key, raw)
		if err != nil {
			return fs, fmt.Errorf("%s: tag %q: %w", fs.Path, key, err)
		}
		fs.Entries = append(fs.Entries, entry)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fs, err
	}
	return fs, nil
}

func parseEntry(key string, raw json.RawMessage) (model.Entry, error) {
	var rt rawTag
	if err := json.Unmarshal(raw, &rt); err != nil {
		return model.Entry{}, err
	}
	if rt.Table == "" || len(rt.Val) == 0 {
		return model.Entry{}, errors.New("missing table or val")
	}

	e := model.Entry{
		Name:  rt.Desc,
		Table: parseTable(rt.Table),
		ID:    parseID(rt.ID),
		Index: rt.Index,
	}
	if i := strings.Index(key, ":"); i >= 0 {
		e.Instance = key[:i]
		e.ShortName = key[i+1:]
	} else {
		e.ShortName = key
	}

	var err error
	if e.Value, err = parseValue(rt.Val); err != nil {
		return model.Entry{}, fmt.Errorf("val: %w", err)
	}
	if len(rt.Num) > 0 {
		if e.Num, err = parseValue(rt.Num); err != nil {
			return model.Entry{}, fmt.Errorf("num: %w", err)
		}
	}
	if s, ok := e.Value.(model.Scalar); ok {
		e.BinarySizeKB = binarySizeKB(string(s))
	}
	return e, nil
}

func parseTable(s string) model.Table {
	if i := strings.Index(s, "::"); i >= 0 {
		return model.Table{Group: s[:i], Subgroup: s[i+2:]}
	}
	return model.Table{Group: s}
}

// parseID keeps only unsigned integer ids; exiftool reports string ids
// for some composite tags, which render as Unknown.
func parseID(raw json.RawMessage) *uint64 {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseValue normalizes a val/num field: numbers and booleans become
// their textual form, arrays keep their decoded elements.
func parseValue(raw json.RawMessage) (model.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case string:
		return model.Scalar(t), nil
	case json.Number:
		return model.Scalar(t.String()), nil
	case bool:
		return model.Scalar(strconv.FormatBool(t)), nil
	case []any:
		return model.List(t), nil
	case nil:
		return model.Scalar(""), nil
	}
	return nil, fmt.Errorf("unsupported value %s", raw)
}

// binarySizeKB detects exiftool's "(Binary data N bytes, use -b option
// to extract)" placeholder and returns the size in KiB.
func binarySizeKB(val string) *float64 {
	if !strings.Contains(val, "bytes") {
		return nil
	}
	var digits strings.Builder
	for _, ch := range val {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	n, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return nil
	}
	kb := n / 1024
	return &kb
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// AnyNestedDir reports whether any of the given directories contains a
// subdirectory, which is when a recursive scan would change the result.
func AnyNestedDir(paths []string) bool {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, de := range entries {
			if de.IsDir() {
				return true
			}
		}
	}
	return false
}

// Demo returns a bundled entry set so the interface can be explored
// without exiftool installed.
func Demo() ([]model.FileEntrySet, error) {
	files, err := Parse(demoJSON)
	if err != nil {
		return nil, fmt.Errorf("demo fixture: %w", err)
	}
	for i := range files {
		files[i].Path = filepath.Join("demo", filepath.Base(files[i].Path))
	}
	return files, nil
}
