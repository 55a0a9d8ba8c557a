package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a workshop import: one
// workshop with its roster and the problems raised in it.
type ImportSchema struct {
	Workshop     WorkshopImport      `json:"workshop"`
	Participants []ParticipantImport `json:"participants,omitempty"`
	Problems     []ProblemImport     `json:"problems,omitempty"`
}

// WorkshopImport defines the workshop-level fields in the import file.
type WorkshopImport struct {
	Title               string  `json:"title"`
	Description         string  `json:"description,omitempty"`
	Facilitator         string  `json:"facilitator,omitempty"`
	Date                string  `json:"date"`
	Status              string  `json:"status,omitempty"`
	SurveyScheduledDate *string `json:"survey_scheduled_date,omitempty"`
}

type ParticipantImport struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role,omitempty"`
	SubmittedSurvey bool   `json:"submitted_survey,omitempty"`
}

// ProblemImport defines one problem. Focal overrides the quadrant suggestion
// when set.
type ProblemImport struct {
	Description         string       `json:"description"`
	Acuity              *int         `json:"acuity"`
	StrategicImportance *int         `json:"strategic_importance"`
	SubmittedBy         string       `json:"submitted_by,omitempty"`
	Focal               *bool        `json:"focal,omitempty"`
	Notes               []NoteImport `json:"notes,omitempty"`
}

type NoteImport struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

// LoadImportSchema reads and parses a workshop import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema decodes an import document. Unknown fields are rejected.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema ImportSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
