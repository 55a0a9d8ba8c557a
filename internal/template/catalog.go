package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
	"gopkg.in/yaml.v3"
)

// BuiltinPath marks the entry for the built-in default template.
const BuiltinPath = "(built-in)"

// Entry is one loadable template with its position in a listing.
type Entry struct {
	Index    int
	Path     string
	Template domain.SurveyTemplate
}

// Stem returns the file name without extension, or the template id for the
// built-in entry.
func (e Entry) Stem() string {
	if e.Path == BuiltinPath {
		return e.Template.ID
	}
	return strings.TrimSuffix(filepath.Base(e.Path), filepath.Ext(e.Path))
}

// Load reads and validates a survey template YAML file. Scales left out of
// the file default to 1-10.
func Load(path string) (*domain.SurveyTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a survey template document. Unknown keys are rejected.
func Parse(data []byte) (*domain.SurveyTemplate, error) {
	t := domain.SurveyTemplate{
		ProblemRating: domain.ProblemRating{
			AcuityScale:              domain.DefaultScale,
			StrategicImportanceScale: domain.DefaultScale,
		},
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &t, nil
}

// Marshal renders t as YAML.
func Marshal(t domain.SurveyTemplate) ([]byte, error) {
	return yaml.Marshal(t)
}

// LoadDir lists the built-in default followed by every valid *.yaml or *.yml
// file in dir, sorted by file name. Invalid files are skipped, as is a file
// that reuses the built-in id. A missing dir yields only the built-in entry.
func LoadDir(dir string) ([]Entry, error) {
	entries := []Entry{{Index: 1, Path: BuiltinPath, Template: domain.DefaultSurveyTemplate()}}
	if dir == "" {
		return entries, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	seen := map[string]bool{entries[0].Template.ID: true}
	for _, file := range files {
		t, err := Load(file)
		if err != nil {
			continue
		}
		if seen[strings.ToLower(t.ID)] {
			continue
		}
		seen[strings.ToLower(t.ID)] = true
		entries = append(entries, Entry{Index: len(entries) + 1, Path: file, Template: *t})
	}
	return entries, nil
}
