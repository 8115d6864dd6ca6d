package scanner

import (
	"log"
	"os"
	"strings"
)

// DefaultBaseCode is scanned when no catalog file is available. The run must
// never fail because the catalog is missing.
const DefaultBaseCode = "BAG"

// LoadCatalog reads the newline-delimited base-code list. Blank lines and
// lines starting with # are ignored. A missing or empty catalog falls back to
// the single default code.
func LoadCatalog(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Catalog %s not readable (%v), falling back to %s", path, err, DefaultBaseCode)
		return []string{DefaultBaseCode}
	}

	var codes []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}

	if len(codes) == 0 {
		log.Printf("Catalog %s is empty, falling back to %s", path, DefaultBaseCode)
		return []string{DefaultBaseCode}
	}
	return codes
}
