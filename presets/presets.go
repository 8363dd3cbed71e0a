// Package presets resolves human-readable disk size names (the sort of
// thing a user would type on a --preset flag) to a block count, so the
// command-line tool doesn't force everyone to do their own division by
// 4096. The table is loaded once from an embedded CSV file at package
// init time.
package presets

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

//go:embed disk-presets.csv
var presetsCSV string

type presetRow struct {
	Name   string `csv:"Name"`
	Blocks uint32 `csv:"Blocks"`
}

var byName map[string]uint32

func init() {
	byName = make(map[string]uint32)
	reader := strings.NewReader(presetsCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row presetRow) error {
		if _, exists := byName[row.Name]; exists {
			return fmt.Errorf("duplicate disk size preset %q", row.Name)
		}
		byName[row.Name] = row.Blocks
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}

// Lookup resolves a preset name to its block count. It returns an
// error if the name isn't recognized.
func Lookup(name string) (uint32, error) {
	blocks, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("no disk size preset named %q", name)
	}
	return blocks, nil
}

// Names returns every known preset name, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
