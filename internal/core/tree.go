package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LeafMarker is the value files carry when a tree is rendered as key-value data.
const LeafMarker = "file"

// TreeEntry is a single node of a DirectoryTree. Directory names end with "/".
// Children is nil for files; directories always carry a non-nil subtree, which
// is empty when the depth bound was reached or the directory could not be read.
type TreeEntry struct {
	Name     string
	Children *DirectoryTree
}

// IsDir reports whether the entry is a directory.
func (e TreeEntry) IsDir() bool {
	return e.Children != nil
}

// DirectoryTree is an ordered, depth-bounded view of a directory.
type DirectoryTree struct {
	Entries []TreeEntry
}

// Lookup returns the entry with the given name, if present.
func (t *DirectoryTree) Lookup(name string) (TreeEntry, bool) {
	if t == nil {
		return TreeEntry{}, false
	}
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TreeEntry{}, false
}

// Find walks a slash separated path ("src/", "src/app.py") through the tree.
// Directory segments may be given with or without their trailing slash.
func (t *DirectoryTree) Find(p string) (TreeEntry, bool) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	cur := t
	var entry TreeEntry
	for i, part := range parts {
		var ok bool
		entry, ok = cur.Lookup(part + "/")
		if !ok {
			if i != len(parts)-1 {
				return TreeEntry{}, false
			}
			entry, ok = cur.Lookup(part)
			if !ok {
				return TreeEntry{}, false
			}
		}
		cur = entry.Children
	}
	return entry, true
}

// ToMap converts the tree into nested maps; files map to LeafMarker.
func (t *DirectoryTree) ToMap() map[string]any {
	out := make(map[string]any)
	if t == nil {
		return out
	}
	for _, e := range t.Entries {
		if e.IsDir() {
			out[e.Name] = e.Children.ToMap()
		} else {
			out[e.Name] = LeafMarker
		}
	}
	return out
}

// MarshalJSON writes the tree as a JSON object that keeps entry order.
func (t DirectoryTree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if e.IsDir() {
			sub, err := e.Children.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(sub)
		} else {
			buf.WriteString(`"` + LeafMarker + `"`)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
