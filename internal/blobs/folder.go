package blobs

import (
	"fmt"
	"strings"
)

// Folder names a top-level blob folder. Audio uploads live under music,
// story artwork under images.
type Folder string

const (
	FolderMusic  Folder = "music"
	FolderImages Folder = "images"
)

// ParseFolder normalizes and validates a folder name.
func ParseFolder(value string) (Folder, error) {
	folder := Folder(strings.ToLower(strings.TrimSpace(value)))
	if err := folder.Validate(); err != nil {
		return "", err
	}
	return folder, nil
}

// Validate reports whether the folder is one of the known values.
func (f Folder) Validate() error {
	switch f {
	case FolderMusic, FolderImages:
		return nil
	default:
		return fmt.Errorf("unknown blob folder %q", string(f))
	}
}
