package app

import "github.com/ludo-technologies/pydocscan/domain"

// ResolveFilePaths turns the request paths into the list of docstring files
// to parse. The stdin marker is passed through untouched; a list that
// already names only existing files is returned as is; anything else is
// collected through the file reader with the given filters.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	if len(paths) == 1 && paths[0] == domain.StdinPath {
		return paths, nil
	}
	for _, path := range paths {
		if path == domain.StdinPath {
			return nil, domain.NewInvalidInputError("stdin (-) cannot be combined with other paths", nil)
		}
	}

	allFiles := true
	for _, path := range paths {
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}
	if allFiles {
		return paths, nil
	}

	return fileReader.CollectDocstringFiles(paths, recursive, includePatterns, excludePatterns)
}
