package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// inboxDir is the drop folder for statement files awaiting import.
const inboxDir = "import"

// processedDir is where imported statement files are moved.
const processedDir = "import/processed"

// InboxFile describes a statement file waiting in the import inbox.
type InboxFile struct {
	Name string
	Path string
	Size int64
}

// supportedExt reports whether name has a statement file extension.
func supportedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".xlsx", ".xls":
		return true
	}
	return false
}

// ScanInbox returns the importable statement files in
// <dataRoot>/import/, skipping subdirectories and unsupported
// extensions. A missing inbox is treated as empty.
func ScanInbox(dataRoot string) ([]InboxFile, error) {
	dir := filepath.Join(dataRoot, inboxDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []InboxFile
	for _, e := range entries {
		if e.IsDir() || !supportedExt(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, InboxFile{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves an inbox file to import/processed/ so a rerun
// does not import it twice.
func MarkProcessed(dataRoot, fileName string) error {
	dstDir := filepath.Join(dataRoot, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	src := filepath.Join(dataRoot, inboxDir, fileName)
	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
