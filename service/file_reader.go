package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/pydocscan/domain"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectDocstringFiles finds docstring body files in the given paths.
// Directories are walked and filtered by the include and exclude patterns;
// a file named explicitly is kept unless an exclude pattern matches it.
func (f *FileReaderImpl) CollectDocstringFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if !f.isExcluded(path, excludePatterns) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped so one bad directory does not
			// abort the whole run.
			return nil
		}
		if path == dirPath {
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !recursive || strings.HasPrefix(d.Name(), ".") || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			if f.isExcluded(rel, excludePatterns) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if f.shouldIncludeFile(rel, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile checks if a file should be included based on patterns
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if f.isExcluded(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if f.matchesPattern(pattern, path) {
			return true
		}
	}
	return false
}

func (f *FileReaderImpl) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if f.matchesPattern(pattern, path) {
			return true
		}
	}
	return false
}

// matchesPattern matches a doublestar pattern against the path, its base
// name, and every trailing run of its segments, so "cache/**" also
// excludes "/abs/project/cache/x.txt".
func (f *FileReaderImpl) matchesPattern(pattern, path string) bool {
	path = filepath.ToSlash(path)
	if matched, _ := doublestar.Match(pattern, path); matched {
		return true
	}
	if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
		return true
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i := 1; i < len(segments); i++ {
		if matched, _ := doublestar.Match(pattern, strings.Join(segments[i:], "/")); matched {
			return true
		}
	}
	return false
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	skipDirs := []string{
		"__pycache__",
		"node_modules",
		"venv",
		"env",
		"build",
		"dist",
		"*.egg-info",
	}

	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if matched, _ := filepath.Match(skipDir, dirLower); matched {
			return true
		}
	}
	return false
}

// ValidatePaths validates that all provided paths exist and are accessible.
// The stdin marker is always valid.
func (f *FileReaderImpl) ValidatePaths(paths []string) error {
	for _, path := range paths {
		if path == domain.StdinPath {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return domain.NewFileNotFoundError(path, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}
	}
	return nil
}
