package system

import (
	"bufio"
	"io"
	"strings"
)

const prettyNameKey = "PRETTY_NAME="

// parsePrettyName finds the PRETTY_NAME entry of an os-release file
func parsePrettyName(r io.Reader) (string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, prettyNameKey) {
			continue
		}
		name := strings.Trim(strings.TrimPrefix(line, prettyNameKey), `"`)
		return name, true
	}
	return "", false
}
