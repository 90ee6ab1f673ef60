package survey

import (
	"time"

	"github.com/google/uuid"
)

type QuestionKind string

const (
	KindFreeText QuestionKind = "FREE_TEXT"
	KindScale    QuestionKind = "SCALE"
)

const (
	ScaleMin = 1
	ScaleMax = 5
)

type Survey struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(160);not null"`
	Description string    `gorm:"type:text"`
	OpensAt     time.Time `gorm:"not null"`
	ClosesAt    time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

func (Survey) TableName() string {
	return "surveys"
}

// IsOpen reports whether the survey accepts responses at t.
func (s Survey) IsOpen(t time.Time) bool {
	return !t.Before(s.OpensAt) && t.Before(s.ClosesAt)
}

type Question struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SurveyID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Prompt   string       `gorm:"type:text;not null"`
	Kind     QuestionKind `gorm:"type:varchar(20);not null"`
	Position int          `gorm:"type:int;not null"`
}

func (Question) TableName() string {
	return "survey_questions"
}

// Response is one employee's submitted answer set for one survey.
type Response struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SurveyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_survey_responses_survey_employee"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_survey_responses_survey_employee"`
	SubmittedAt time.Time `gorm:"not null"`

	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE"`
}

func (Response) TableName() string {
	return "survey_responses"
}

type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResponseID uuid.UUID `gorm:"type:uuid;not null;index"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	TextValue  *string   `gorm:"type:text"`
	ScaleValue *int      `gorm:"type:int"`
}

func (Answer) TableName() string {
	return "survey_answers"
}
