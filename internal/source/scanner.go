package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/facastdev/facast/internal/model"
)

// Conventional file names looked up per indicator, in preference order.
// The first entries match what `facast fetch` writes; the rest cover the
// raw spreadsheet exports the tool grew up with.
var candidateNames = map[model.Indicator][]string{
	model.Electricity: {"electricity.csv", "consumo-energetico.csv"},
	model.Water:       {"water.csv", "consumo-agua.csv"},
	model.Materials:   {"materials.csv", "materiales.csv"},
	model.Services:    {"services.csv", "servicios.csv"},
}

// Discover locates the consumption CSVs under dataDir. Missing indicators
// are simply absent from the result; the caller degrades per indicator.
func Discover(dataDir string) []SourceFile {
	var files []SourceFile
	for _, ind := range model.AllIndicators {
		if f, ok := findFile(dataDir, ind); ok {
			files = append(files, f)
		}
	}
	return files
}

func findFile(dataDir string, ind model.Indicator) (SourceFile, bool) {
	for _, name := range candidateNames[ind] {
		path := filepath.Join(dataDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return SourceFile{Path: path, Indicator: ind}, true
		}
	}
	// Fall back to any CSV whose name contains the indicator keyword, which
	// catches exports like "TA07-G4 - Consumo agua.csv".
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return SourceFile{}, false
	}
	keyword := indicatorKeyword(ind)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), keyword) {
			return SourceFile{Path: filepath.Join(dataDir, e.Name()), Indicator: ind}, true
		}
	}
	return SourceFile{}, false
}

func indicatorKeyword(ind model.Indicator) string {
	switch ind {
	case model.Electricity:
		return "energetic"
	case model.Water:
		return "agua"
	case model.Materials:
		return "materiales"
	case model.Services:
		return "servicios"
	}
	return ""
}

// DefaultFileName returns the name `facast fetch` writes for an indicator.
func DefaultFileName(ind model.Indicator) string {
	return candidateNames[ind][0]
}
