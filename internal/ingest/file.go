// Package ingest reads bill exports of either container kind and turns them
// into canonical transactions, one file at a time.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the container format of an export.
type Kind int

// Container kinds. KindAuto defers the decision to the file name.
const (
	KindAuto Kind = iota
	KindDelimited
	KindWorkbook
)

func (k Kind) String() string {
	switch k {
	case KindDelimited:
		return "delimited"
	case KindWorkbook:
		return "workbook"
	default:
		return "auto"
	}
}

// KindFromName guesses the container kind from the file extension.
func KindFromName(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return KindWorkbook
	default:
		return KindDelimited
	}
}

// File is one export handed to the pipeline. Either Data is set, or the file
// was created with FromPath and is read when the pipeline reaches it.
type File struct {
	Name string
	Data []byte
	path string
	Kind Kind
}

// FromPath returns a File whose content is read lazily from path.
func FromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		path: path,
	}
}

func (f File) kind() Kind {
	if f.Kind != KindAuto {
		return f.Kind
	}
	return KindFromName(f.Name)
}

func (f File) load() ([]byte, error) {
	if f.path == "" {
		return f.Data, nil
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return data, nil
}
