package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Question ids produced by Instantiate.
const (
	QuestionIDAcuity              = "acuity"
	QuestionIDStrategicImportance = "strategic-importance"
	problemQuestionPrefix         = "problem-"
)

// Bounds of a scale-typed question.
const (
	ScaleQuestionMin = 0
	ScaleQuestionMax = 10
)

// ProblemQuestionID returns the id of the i-th (1-based) problem description question.
func ProblemQuestionID(i int) string {
	return fmt.Sprintf("%s%d", problemQuestionPrefix, i)
}

// IsProblemQuestionID reports whether id names a problem description question.
func IsProblemQuestionID(id string) bool {
	return strings.HasPrefix(id, problemQuestionPrefix)
}

type ProblemIdentification struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	MaxProblems int    `yaml:"max_problems"`
}

type ProblemRating struct {
	Title                    string `yaml:"title"`
	Description              string `yaml:"description"`
	AcuityScale              Scale  `yaml:"acuity_scale"`
	StrategicImportanceScale Scale  `yaml:"strategic_importance_scale"`
}

// SurveyTemplate is immutable configuration consumed by Instantiate.
type SurveyTemplate struct {
	ID                    string                `yaml:"id"`
	Title                 string                `yaml:"title"`
	Description           string                `yaml:"description"`
	Instructions          string                `yaml:"instructions"`
	ProblemIdentification ProblemIdentification `yaml:"problem_identification"`
	ProblemRating         ProblemRating         `yaml:"problem_rating"`
}

// DefaultSurveyTemplate is the built-in market problems survey.
func DefaultSurveyTemplate() SurveyTemplate {
	return SurveyTemplate{
		ID:           "default",
		Title:        "Market Problems Survey",
		Description:  "Help us identify and evaluate key problems in your market",
		Instructions: "Please identify up to three significant problems in your market and rate their importance.",
		ProblemIdentification: ProblemIdentification{
			Title:       "Problem Identification",
			Description: "What are the most significant problems you observe in your market? Please provide detailed descriptions.",
			MaxProblems: 3,
		},
		ProblemRating: ProblemRating{
			Title:                    "Problem Evaluation",
			Description:              "Please rate each identified problem on two dimensions.",
			AcuityScale:              Scale{Min: 1, Max: 10, Label: "Acuity (Severity)"},
			StrategicImportanceScale: Scale{Min: 1, Max: 10, Label: "Strategic Importance"},
		},
	}
}

// Validate checks the template can produce a usable survey.
func (t *SurveyTemplate) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return validationErr("id", "is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return validationErr("title", "is required")
	}
	if t.ProblemIdentification.MaxProblems < 1 {
		return validationErr("problem_identification.max_problems", "must be at least 1")
	}
	if err := t.ProblemRating.AcuityScale.Validate(); err != nil {
		return fmt.Errorf("acuity_scale: %w", err)
	}
	if err := t.ProblemRating.StrategicImportanceScale.Validate(); err != nil {
		return fmt.Errorf("strategic_importance_scale: %w", err)
	}
	return nil
}

// FitsRatingModel checks that every rating the template can collect is a
// valid problem score under m, so harvested responses always score.
func (t *SurveyTemplate) FitsRatingModel(m RatingModel) error {
	if !m.Acuity.Covers(t.ProblemRating.AcuityScale) {
		return validationErr("acuity_scale", fmt.Sprintf("[%d,%d] must lie within the problem scale [%d,%d]",
			t.ProblemRating.AcuityScale.Min, t.ProblemRating.AcuityScale.Max, m.Acuity.Min, m.Acuity.Max))
	}
	if !m.StrategicImportance.Covers(t.ProblemRating.StrategicImportanceScale) {
		return validationErr("strategic_importance_scale", fmt.Sprintf("[%d,%d] must lie within the problem scale [%d,%d]",
			t.ProblemRating.StrategicImportanceScale.Min, t.ProblemRating.StrategicImportanceScale.Max,
			m.StrategicImportance.Min, m.StrategicImportance.Max))
	}
	return nil
}

type SurveyQuestion struct {
	ID       string
	Text     string
	Type     QuestionType
	Required bool
	MinValue *float64
	MaxValue *float64
	Options  []string
}

// Validate checks the question's shape for its type.
func (q *SurveyQuestion) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return validationErr("question.id", "is required")
	}
	if strings.TrimSpace(q.Text) == "" {
		return validationErr("question.text", "is required")
	}
	if !ValidQuestionTypes[q.Type] {
		return validationErr("question.type", fmt.Sprintf("unknown type %q", q.Type))
	}
	if q.MinValue != nil && q.MaxValue != nil && *q.MinValue >= *q.MaxValue {
		return validationErr("question.range", "minValue must be less than maxValue")
	}
	switch q.Type {
	case QuestionScale:
		if q.MinValue == nil || q.MaxValue == nil {
			return validationErr("question.range", "scale questions need minValue and maxValue")
		}
		if *q.MinValue < ScaleQuestionMin || *q.MaxValue > ScaleQuestionMax {
			return validationErr("question.range", fmt.Sprintf("scale bounds must lie within [%d,%d]", ScaleQuestionMin, ScaleQuestionMax))
		}
	case QuestionMultipleChoice:
		if len(q.Options) == 0 {
			return validationErr("question.options", "multiple choice questions need options")
		}
	}
	return nil
}

// CheckAnswer validates a single answer value against the question.
func (q *SurveyQuestion) CheckAnswer(v AnswerValue) error {
	if q.Type.Numeric() {
		n, ok := v.Number()
		if !ok {
			return validationErr(q.ID, "expects a numeric answer")
		}
		if !isFinite(n) {
			return validationErr(q.ID, "expects a finite number")
		}
		lo, hi := q.bounds()
		if n < lo || n > hi {
			return &OutOfRangeError{Field: q.ID, Value: n, Min: lo, Max: hi}
		}
		return nil
	}
	s, ok := v.Text()
	if !ok {
		return validationErr(q.ID, "expects a text answer")
	}
	if q.Type == QuestionMultipleChoice && !slices.Contains(q.Options, s) {
		return validationErr(q.ID, fmt.Sprintf("%q is not one of %s", s, strings.Join(q.Options, ", ")))
	}
	return nil
}

func (q *SurveyQuestion) bounds() (float64, float64) {
	lo, hi := float64(-1<<53), float64(1<<53)
	if q.MinValue != nil {
		lo = *q.MinValue
	}
	if q.MaxValue != nil {
		hi = *q.MaxValue
	}
	return lo, hi
}

type SurveyResponse struct {
	ID            string
	SurveyID      string
	ParticipantID string
	Answers       []Answer
	SubmittedAt   time.Time
}

// Value returns the answer to questionID, if any.
func (r *SurveyResponse) Value(questionID string) (AnswerValue, bool) {
	for _, a := range r.Answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return AnswerValue{}, false
}

type Survey struct {
	ID           string
	WorkshopID   string
	TemplateID   string
	Title        string
	Description  string
	Instructions string
	Questions    []SurveyQuestion
	Responses    []SurveyResponse
	Status       SurveyStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Instantiate builds a draft survey with one description question per allowed
// problem followed by the acuity and strategic importance rating questions.
func Instantiate(id, workshopID string, tmpl SurveyTemplate, now time.Time) (*Survey, error) {
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	pi, pr := tmpl.ProblemIdentification, tmpl.ProblemRating
	questions := make([]SurveyQuestion, 0, pi.MaxProblems+2)
	for i := 1; i <= pi.MaxProblems; i++ {
		questions = append(questions, SurveyQuestion{
			ID:       ProblemQuestionID(i),
			Text:     fmt.Sprintf("Problem %d: describe a significant problem you observe", i),
			Type:     QuestionText,
			Required: i == 1,
		})
	}
	questions = append(questions,
		ratingQuestion(QuestionIDAcuity, pr.AcuityScale, "Acuity (Severity)"),
		ratingQuestion(QuestionIDStrategicImportance, pr.StrategicImportanceScale, "Strategic Importance"),
	)
	return &Survey{
		ID:           id,
		WorkshopID:   workshopID,
		TemplateID:   tmpl.ID,
		Title:        tmpl.Title,
		Description:  tmpl.Description,
		Instructions: tmpl.Instructions,
		Questions:    questions,
		Status:       SurveyDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func ratingQuestion(id string, s Scale, fallbackLabel string) SurveyQuestion {
	lo, hi := float64(s.Min), float64(s.Max)
	return SurveyQuestion{
		ID:       id,
		Text:     CoalesceStr(s.Label, fallbackLabel),
		Type:     QuestionRating,
		Required: true,
		MinValue: &lo,
		MaxValue: &hi,
	}
}

// Question returns the question with the given id.
func (s *Survey) Question(id string) (*SurveyQuestion, error) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], nil
		}
	}
	return nil, &NotFoundError{Entity: "question", ID: id}
}

// AddQuestion appends a question. Questions are fixed once the survey leaves draft.
func (s *Survey) AddQuestion(q SurveyQuestion, now time.Time) error {
	if s.Status != SurveyDraft {
		return &InvalidStateError{Entity: "survey", ID: s.ID, State: string(s.Status), Op: "add question to"}
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if _, err := s.Question(q.ID); err == nil {
		return validationErr("question.id", fmt.Sprintf("duplicate question id %q", q.ID))
	}
	s.Questions = append(s.Questions, q)
	s.UpdatedAt = now
	return nil
}

// Activate opens the survey for responses.
func (s *Survey) Activate(now time.Time) error {
	if s.Status != SurveyDraft {
		return &InvalidTransitionError{Entity: "survey", From: string(s.Status), To: string(SurveyActive)}
	}
	if len(s.Questions) == 0 {
		return &InvalidStateError{Entity: "survey", ID: s.ID, State: string(s.Status), Op: "activate empty"}
	}
	s.Status = SurveyActive
	s.UpdatedAt = now
	return nil
}

// Close stops accepting responses.
func (s *Survey) Close(now time.Time) error {
	if s.Status != SurveyActive {
		return &InvalidTransitionError{Entity: "survey", From: string(s.Status), To: string(SurveyClosed)}
	}
	s.Status = SurveyClosed
	s.UpdatedAt = now
	return nil
}

// HasResponseFrom reports whether participantID already responded.
func (s *Survey) HasResponseFrom(participantID string) bool {
	for _, r := range s.Responses {
		if r.ParticipantID == participantID {
			return true
		}
	}
	return false
}

// ValidateAnswers checks a candidate answer set: every answer must target a
// known question exactly once, carry the right kind of value, and every
// required question must be answered.
func (s *Survey) ValidateAnswers(answers []Answer) error {
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		q, err := s.Question(a.QuestionID)
		if err != nil {
			return validationErr("answers", fmt.Sprintf("unknown question %q", a.QuestionID))
		}
		if seen[a.QuestionID] {
			return validationErr("answers", fmt.Sprintf("question %q answered more than once", a.QuestionID))
		}
		seen[a.QuestionID] = true
		if a.Value.IsEmpty() {
			continue
		}
		if err := q.CheckAnswer(a.Value); err != nil {
			return &ValidationError{Field: "answers", Reason: err.Error()}
		}
	}
	for _, q := range s.Questions {
		if !q.Required {
			continue
		}
		if !s.answered(answers, q.ID) {
			return validationErr("answers", fmt.Sprintf("required question %q has no answer", q.ID))
		}
	}
	return nil
}

func (s *Survey) answered(answers []Answer, questionID string) bool {
	for _, a := range answers {
		if a.QuestionID == questionID && !a.Value.IsEmpty() {
			return true
		}
	}
	return false
}

// AddResponse validates and appends a response. It rejects a second response
// from the same participant.
func (s *Survey) AddResponse(r SurveyResponse) error {
	if s.Status != SurveyActive {
		return &InvalidStateError{Entity: "survey", ID: s.ID, State: string(s.Status), Op: "record response for"}
	}
	if s.HasResponseFrom(r.ParticipantID) {
		return &DuplicateResponseError{SurveyID: s.ID, ParticipantID: r.ParticipantID}
	}
	if err := s.ValidateAnswers(r.Answers); err != nil {
		return err
	}
	r.SurveyID = s.ID
	s.Responses = append(s.Responses, r)
	return nil
}

// AverageRating is the mean of every numeric answer to questionID. It is 0
// when there are none.
func (s *Survey) AverageRating(questionID string) float64 {
	var sum float64
	var n int
	for _, r := range s.Responses {
		v, ok := r.Value(questionID)
		if !ok {
			continue
		}
		if f, ok := v.Number(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ProblemDescriptions returns the non-empty problem description answers of a
// response in question order.
func (s *Survey) ProblemDescriptions(r *SurveyResponse) []string {
	var out []string
	for _, q := range s.Questions {
		if !IsProblemQuestionID(q.ID) {
			continue
		}
		v, ok := r.Value(q.ID)
		if !ok {
			continue
		}
		if text, ok := v.Text(); ok && strings.TrimSpace(text) != "" {
			out = append(out, strings.TrimSpace(text))
		}
	}
	return out
}
