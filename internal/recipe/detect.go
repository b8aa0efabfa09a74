package recipe

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var recipeExts = map[string]bool{
	".yaml": true,
	".yml":  true,
}

// IsRecipeExt returns true if the extension is a recipe file format.
func IsRecipeExt(ext string) bool {
	return recipeExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of recipe formats.
func SupportedExtsList() string {
	return ".yaml, .yml"
}

// Scan returns the recipe files in dir sorted alphabetically
// (case-insensitive).
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsRecipeExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}
