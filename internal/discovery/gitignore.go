package discovery

import (
	"bufio"
	"os"
	"path"
	"strings"
)

// readGitignore parses a .gitignore file into doublestar patterns rooted
// at dir (the gitignore file's directory, relative to the scan root).
// Negation (!pattern) entries are dropped rather than un-excluded, since
// the walk applies exclude patterns independently of discovery order.
func readGitignore(filePath, dir string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		line = strings.TrimSuffix(line, "/")
		if strings.Contains(line, "/") {
			if dir == "." {
				patterns = append(patterns, line, line+"/**")
			} else {
				patterns = append(patterns, path.Join(dir, line), path.Join(dir, line)+"/**")
			}
		} else {
			patterns = append(patterns, "**/"+line, "**/"+line+"/**")
		}
	}
	return patterns, scanner.Err()
}
