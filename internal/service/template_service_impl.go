package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/atelier/internal/domain"
	tmpl "github.com/alexanderramin/atelier/internal/template"
)

type templateService struct {
	templateDir string
}

func NewTemplateService(templateDir string) TemplateService {
	return &templateService{templateDir: templateDir}
}

func (s *templateService) List(ctx context.Context) ([]tmpl.Entry, error) {
	entries, err := tmpl.LoadDir(s.templateDir)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return entries, nil
}

// Get resolves a template by file stem, file name, id, title or the index
// shown by List, all case-insensitive.
func (s *templateService) Get(ctx context.Context, name string) (*tmpl.Entry, error) {
	input := strings.TrimSpace(name)
	if input == "" {
		return nil, &domain.ValidationError{Field: "template", Reason: "is required"}
	}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entry := &entries[i]
		if strings.EqualFold(entry.Stem(), input) ||
			strings.EqualFold(filepath.Base(entry.Path), input) ||
			strings.EqualFold(entry.Template.ID, input) ||
			strings.EqualFold(entry.Template.Title, input) {
			return entry, nil
		}
	}

	if index, err := strconv.Atoi(input); err == nil {
		for i := range entries {
			if entries[i].Index == index {
				return &entries[i], nil
			}
		}
	}
	return nil, &domain.NotFoundError{Entity: "template", ID: name}
}
