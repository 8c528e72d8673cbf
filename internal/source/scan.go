package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is an image file discovered on disk.
type File struct {
	// AbsPath is the path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned directory.
	RelPath string
	// ID is the relative path without extension, slash separated.
	ID string
	// Format is the normalized source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// FormatOf returns the normalized format name for path's extension.
func FormatOf(path string) string {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return format
}

// Scan walks dir and returns every image file in it, sorted by relative
// path. Hidden directories are skipped.
func Scan(dir string) ([]File, error) {
	var files []File

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImage(path) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		files = append(files, File{
			AbsPath: path,
			RelPath: rel,
			ID:      strings.TrimSuffix(rel, filepath.Ext(rel)),
			Format:  FormatOf(path),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}
