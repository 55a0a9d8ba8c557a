package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
)

// candidate is one entity an identifier argument may refer to.
type candidate struct {
	id    string
	label string
}

// resolveID matches input against candidates by, in order: exact id, exact
// label (case-insensitive), then id prefix. A prefix or label shared by more
// than one candidate is ambiguous.
func resolveID(kind, input string, cands []candidate) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, c := range cands {
		if c.id == input {
			return c.id, nil
		}
	}

	var matches []string
	for _, c := range cands {
		if c.label != "" && strings.EqualFold(c.label, input) {
			matches = append(matches, c.id)
		}
	}
	if len(matches) == 0 {
		for _, c := range cands {
			if strings.HasPrefix(c.id, input) {
				matches = append(matches, c.id)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", &domain.NotFoundError{Entity: kind, ID: input}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveWorkshopID(ctx context.Context, app *App, input string) (string, error) {
	workshops, err := app.Workshops.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(workshops))
	for _, w := range workshops {
		cands = append(cands, candidate{id: w.ID, label: w.Title})
	}
	return resolveID("workshop", input, cands)
}

func resolveProblemID(ctx context.Context, app *App, input string) (string, error) {
	problems, err := app.Problems.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(problems))
	for _, p := range problems {
		cands = append(cands, candidate{id: p.ID})
	}
	return resolveID("problem", input, cands)
}

func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	cands := make([]candidate, 0, len(projects))
	for _, p := range projects {
		cands = append(cands, candidate{id: p.ID, label: p.Title})
	}
	return resolveID("project", input, cands)
}

// resolveSurveyID searches the surveys of every workshop.
func resolveSurveyID(ctx context.Context, app *App, input string) (string, error) {
	workshops, err := app.Workshops.List(ctx)
	if err != nil {
		return "", err
	}
	var cands []candidate
	for _, w := range workshops {
		surveys, err := app.Surveys.ListByWorkshop(ctx, w.ID)
		if err != nil {
			return "", err
		}
		for _, s := range surveys {
			cands = append(cands, candidate{id: s.ID})
		}
	}
	return resolveID("survey", input, cands)
}

// resolveParticipantID matches a roster entry by id, id prefix, email or name.
func resolveParticipantID(w *domain.Workshop, input string) (string, error) {
	cands := make([]candidate, 0, len(w.Participants))
	for _, p := range w.Participants {
		cands = append(cands, candidate{id: p.ID, label: p.Email})
	}
	if id, err := resolveID("participant", input, cands); err == nil {
		return id, nil
	}
	byName := make([]candidate, 0, len(w.Participants))
	for _, p := range w.Participants {
		byName = append(byName, candidate{id: p.ID, label: p.Name})
	}
	return resolveID("participant", input, byName)
}
