package survey

type CreateQuestionRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Kind   string `json:"kind" binding:"required,oneof=FREE_TEXT SCALE"`
}

type CreateSurveyRequest struct {
	Title       string                  `json:"title" binding:"required,max=160"`
	Description string                  `json:"description"`
	OpensAt     string                  `json:"opens_at" binding:"required"`
	ClosesAt    string                  `json:"closes_at" binding:"required"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type SubmitAnswerRequest struct {
	QuestionID string  `json:"question_id" binding:"required,uuid"`
	TextValue  *string `json:"text_value"`
	ScaleValue *int    `json:"scale_value"`
}

type SubmitResponseRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"required,min=1,dive"`
}

type QuestionResponse struct {
	ID       string `json:"id"`
	Prompt   string `json:"prompt"`
	Kind     string `json:"kind"`
	Position int    `json:"position"`
}

type SurveyResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	OpensAt     string             `json:"opens_at"`
	ClosesAt    string             `json:"closes_at"`
	Open        bool               `json:"open"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   string             `json:"created_at"`
}

type SubmittedResponse struct {
	ID          string `json:"id"`
	SurveyID    string `json:"survey_id"`
	SubmittedAt string `json:"submitted_at"`
}

// QuestionAggregate is the admin view of one question's answers.
type QuestionAggregate struct {
	QuestionID   string      `json:"question_id"`
	Prompt       string      `json:"prompt"`
	Kind         string      `json:"kind"`
	AnswerCount  int         `json:"answer_count"`
	AverageScale *string     `json:"average_scale,omitempty"`
	Distribution map[int]int `json:"distribution,omitempty"`
	TextAnswers  []string    `json:"text_answers,omitempty"`
}

type SurveyAggregateResponse struct {
	SurveyID      string              `json:"survey_id"`
	Title         string              `json:"title"`
	ResponseCount int                 `json:"response_count"`
	Questions     []QuestionAggregate `json:"questions"`
}
