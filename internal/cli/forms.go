package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/atelier/internal/cli/formatter"
	"github.com/alexanderramin/atelier/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

// atelierHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func atelierHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// parseDate parses a required YYYY-MM-DD flag value.
func parseDate(flag, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
	}
	return d, nil
}

// dateFlag is a YYYY-MM-DD flag value. The zero value means unset.
type dateFlag struct {
	t time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d *dateFlag) Set(s string) error {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	d.t = t
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// validateAnswer checks raw form input against a survey question. Blank is
// accepted for optional questions.
func validateAnswer(q domain.SurveyQuestion) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if q.Required {
				return fmt.Errorf("an answer is required")
			}
			return nil
		}
		v, err := answerValue(q, s)
		if err != nil {
			return err
		}
		return q.CheckAnswer(v)
	}
}

// answerValue converts raw input for q: numeric question types need a
// finite number, every other type keeps the text as given.
func answerValue(q domain.SurveyQuestion, raw string) (domain.AnswerValue, error) {
	if !q.Type.Numeric() {
		return domain.TextValue(raw), nil
	}
	v := domain.ParseAnswerValue(raw)
	if _, ok := v.Number(); !ok {
		return domain.AnswerValue{}, &domain.ValidationError{Field: q.ID, Reason: fmt.Sprintf("expects a number, got %q", raw)}
	}
	return v, nil
}

// surveyResponseForm builds one field per question. Raw answers land in
// values, keyed by question id.
func surveyResponseForm(s *domain.Survey, values map[string]*string) *huh.Form {
	fields := make([]huh.Field, 0, len(s.Questions))
	for _, q := range s.Questions {
		v := new(string)
		values[q.ID] = v
		title := q.Text
		if q.Required {
			title += " *"
		}
		if q.Type == domain.QuestionMultipleChoice {
			opts := huh.NewOptions(q.Options...)
			if !q.Required {
				opts = append([]huh.Option[string]{huh.NewOption("(skip)", "")}, opts...)
			}
			fields = append(fields, huh.NewSelect[string]().Title(title).Options(opts...).Value(v))
			continue
		}
		input := huh.NewInput().Title(title).Value(v).Validate(validateAnswer(q))
		if q.Type.Numeric() && q.MinValue != nil && q.MaxValue != nil {
			input = input.Placeholder(fmt.Sprintf("%g-%g", *q.MinValue, *q.MaxValue))
		}
		fields = append(fields, input)
	}
	return huh.NewForm(huh.NewGroup(fields...).Title(s.Title).Description(s.Instructions)).
		WithTheme(atelierHuhTheme())
}

// collectAnswers turns filled form values into answers in question order,
// dropping blanks.
func collectAnswers(s *domain.Survey, values map[string]*string) ([]domain.Answer, error) {
	var answers []domain.Answer
	for _, q := range s.Questions {
		raw := strings.TrimSpace(*values[q.ID])
		if raw == "" {
			continue
		}
		v, err := answerValue(q, raw)
		if err != nil {
			return nil, err
		}
		answers = append(answers, domain.Answer{QuestionID: q.ID, Value: v})
	}
	return answers, nil
}

// parseAnswerFlags parses repeated --answer id=value flags against the
// survey's questions.
func parseAnswerFlags(s *domain.Survey, flags []string) ([]domain.Answer, error) {
	answers := make([]domain.Answer, 0, len(flags))
	for _, f := range flags {
		id, raw, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --answer %q: use QUESTION_ID=VALUE", f)
		}
		id = strings.TrimSpace(id)
		q, err := s.Question(id)
		if err != nil {
			return nil, err
		}
		v, err := answerValue(*q, raw)
		if err != nil {
			return nil, err
		}
		answers = append(answers, domain.Answer{QuestionID: id, Value: v})
	}
	return answers, nil
}

// passwordForm prompts for a password without echo.
func passwordForm(title string, value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(value),
		),
	).WithTheme(atelierHuhTheme()).WithShowHelp(false)
}
