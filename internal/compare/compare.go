// Package compare joins the entry sets of several files into rows keyed
// by tag identity, so values can be laid out side by side.
package compare

import "exiftui/internal/model"

// Row is one tag across all loaded files. Representative supplies the
// name and family shown in the leftmost columns; PerFile holds each
// file's entry for the key, nil where the file lacks it.
type Row struct {
	Representative *model.Entry
	PerFile        []*model.Entry
}

// Differs reports whether the row should survive a differences-only
// filter: it differs unless every file either lacks the tag or carries
// an entry equal to the first file's.
func (r Row) Differs() bool {
	first := r.PerFile[0]
	for _, e := range r.PerFile[1:] {
		if first == nil && e == nil {
			continue
		}
		if first == nil || e == nil || !first.Equal(e) {
			return true
		}
	}
	return false
}

// Build computes the compare rows for the given files. Keys are ordered
// by first appearance: all of file 0's keys in extraction order, then
// keys new to file 1, and so on. Within one file a duplicated key keeps
// only its last entry.
func Build(files []model.FileEntrySet) []Row {
	indexes := make([]map[model.Key]*model.Entry, len(files))
	for i := range files {
		indexes[i] = files[i].ByKey()
	}

	seen := make(map[model.Key]struct{})
	var rows []Row
	for i := range files {
		for j := range files[i].Entries {
			k := files[i].Entries[j].Key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			r := Row{PerFile: make([]*model.Entry, len(files))}
			for fi, idx := range indexes {
				if e, ok := idx[k]; ok {
					r.PerFile[fi] = e
					if r.Representative == nil {
						r.Representative = e
					}
				}
			}
			rows = append(rows, r)
		}
	}
	return rows
}
