package domain

type WorkshopStatus string

const (
	WorkshopTodo       WorkshopStatus = "TODO"
	WorkshopInProgress WorkshopStatus = "IN_PROGRESS"
	WorkshopComplete   WorkshopStatus = "COMPLETE"
)

// Next returns the successor state. ok is false for the terminal state.
func (s WorkshopStatus) Next() (next WorkshopStatus, ok bool) {
	switch s {
	case WorkshopTodo:
		return WorkshopInProgress, true
	case WorkshopInProgress:
		return WorkshopComplete, true
	default:
		return "", false
	}
}

func (s WorkshopStatus) Valid() bool {
	return s == WorkshopTodo || s == WorkshopInProgress || s == WorkshopComplete
}

type SurveyStatus string

const (
	SurveyDraft  SurveyStatus = "draft"
	SurveyActive SurveyStatus = "active"
	SurveyClosed SurveyStatus = "closed"
)

type QuestionType string

const (
	QuestionRating         QuestionType = "rating"
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multipleChoice"
	QuestionNumber         QuestionType = "number"
	QuestionScale          QuestionType = "scale"
)

// ValidQuestionTypes is the canonical set of accepted question type strings.
var ValidQuestionTypes = map[QuestionType]bool{
	QuestionRating: true, QuestionText: true, QuestionMultipleChoice: true,
	QuestionNumber: true, QuestionScale: true,
}

// Numeric reports whether answers to this question type carry a number.
func (t QuestionType) Numeric() bool {
	return t == QuestionRating || t == QuestionNumber || t == QuestionScale
}

type ProjectStatus string

const (
	ProjectDiscovery   ProjectStatus = "discovery"
	ProjectDevelopment ProjectStatus = "development"
	ProjectLive        ProjectStatus = "live"
	ProjectCompleted   ProjectStatus = "completed"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectDiscovery: true, ProjectDevelopment: true, ProjectLive: true, ProjectCompleted: true,
}

// FocalSource records whether a problem's focal flag came from the quadrant
// suggestion or from a reviewer.
type FocalSource string

const (
	FocalDerived FocalSource = "derived"
	FocalManual  FocalSource = "manual"
)
