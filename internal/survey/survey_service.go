package survey

import (
	"context"
	"errors"
	"strings"
	"time"

	surveyerrors "plugohris/internal/survey/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=survey_service.go -destination=mock/survey_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSurveyRequest) (SurveyResponse, error)
	GetAll(ctx context.Context) ([]SurveyResponse, error)
	GetByID(ctx context.Context, id string) (SurveyResponse, error)
	Delete(ctx context.Context, id string) error
	SubmitResponse(ctx context.Context, surveyID, employeeID string, req SubmitResponseRequest) (SubmittedResponse, error)
	GetAggregates(ctx context.Context, surveyID string) (SurveyAggregateResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("survey.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("survey.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateSurveyRequest) (SurveyResponse, error) {
	opensAt, err := time.Parse(time.RFC3339, req.OpensAt)
	if err != nil {
		return SurveyResponse{}, surveyerrors.ErrInvalidTimeFormat
	}
	closesAt, err := time.Parse(time.RFC3339, req.ClosesAt)
	if err != nil {
		return SurveyResponse{}, surveyerrors.ErrInvalidTimeFormat
	}
	if !closesAt.After(opensAt) {
		return SurveyResponse{}, surveyerrors.ErrInvalidWindow
	}

	sv := &Survey{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OpensAt:     opensAt.UTC(),
		ClosesAt:    closesAt.UTC(),
	}
	for i, q := range req.Questions {
		sv.Questions = append(sv.Questions, Question{
			ID:       uuid.New(),
			SurveyID: sv.ID,
			Prompt:   q.Prompt,
			Kind:     QuestionKind(q.Kind),
			Position: i + 1,
		})
	}

	if err := s.repo.Create(ctx, sv); err != nil {
		s.logger.Error("create survey persist failed", zap.Error(err))
		return SurveyResponse{}, err
	}

	s.logger.Info("create survey success",
		zap.String("survey_id", sv.ID.String()),
		zap.Int("question_count", len(sv.Questions)),
	)
	return mapToResponse(*sv, true), nil
}

func (s *service) GetAll(ctx context.Context) ([]SurveyResponse, error) {
	surveys, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]SurveyResponse, len(surveys))
	for i, sv := range surveys {
		resp[i] = mapToResponse(sv, false)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SurveyResponse, error) {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return SurveyResponse{}, err
	}
	return mapToResponse(*sv, true), nil
}

// Delete refuses to remove a survey that already collected responses.
func (s *service) Delete(ctx context.Context, id string) error {
	sv, err := s.findSurvey(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.repo.CountResponses(ctx, sv.ID.String())
	if err != nil {
		return err
	}
	if count > 0 {
		return surveyerrors.ErrSurveyHasResponses
	}
	return s.repo.Delete(ctx, sv.ID.String())
}

func (s *service) SubmitResponse(ctx context.Context, surveyID, employeeID string, req SubmitResponseRequest) (SubmittedResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SubmittedResponse{}, surveyerrors.ErrEmployeeMissing
	}

	sv, err := s.findSurvey(ctx, surveyID)
	if err != nil {
		return SubmittedResponse{}, err
	}
	if !sv.IsOpen(time.Now().UTC()) {
		return SubmittedResponse{}, surveyerrors.ErrSurveyClosed
	}

	already, err := s.repo.HasResponse(ctx, sv.ID.String(), empID.String())
	if err != nil {
		return SubmittedResponse{}, err
	}
	if already {
		return SubmittedResponse{}, surveyerrors.ErrAlreadyResponded
	}

	answers, err := buildAnswers(sv, req.Answers)
	if err != nil {
		return SubmittedResponse{}, err
	}

	resp := &Response{
		ID:          uuid.New(),
		SurveyID:    sv.ID,
		EmployeeID:  empID,
		SubmittedAt: time.Now().UTC(),
		Answers:     answers,
	}
	if err := s.repo.CreateResponse(ctx, resp); err != nil {
		s.logger.Error("submit survey response persist failed", zap.Error(err))
		return SubmittedResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("submit survey response success",
		zap.String("survey_id", sv.ID.String()),
		zap.String("employee_id", empID.String()),
	)
	return SubmittedResponse{
		ID:          resp.ID.String(),
		SurveyID:    sv.ID.String(),
		SubmittedAt: resp.SubmittedAt.Format(time.RFC3339),
	}, nil
}

// buildAnswers validates one answer per question, scale bounds, and
// non-empty text.
func buildAnswers(sv *Survey, submitted []SubmitAnswerRequest) ([]Answer, error) {
	questions := make(map[string]Question, len(sv.Questions))
	for _, q := range sv.Questions {
		questions[q.ID.String()] = q
	}

	if len(submitted) != len(sv.Questions) {
		return nil, surveyerrors.ErrIncompleteResponse
	}

	answered := make(map[string]bool, len(submitted))
	answers := make([]Answer, 0, len(submitted))
	for _, a := range submitted {
		q, ok := questions[a.QuestionID]
		if !ok {
			return nil, surveyerrors.ErrUnknownQuestion
		}
		if answered[a.QuestionID] {
			return nil, surveyerrors.ErrIncompleteResponse
		}
		answered[a.QuestionID] = true

		answer := Answer{
			ID:         uuid.New(),
			QuestionID: q.ID,
		}
		switch q.Kind {
		case KindScale:
			if a.ScaleValue == nil || *a.ScaleValue < ScaleMin || *a.ScaleValue > ScaleMax {
				return nil, surveyerrors.ErrInvalidScaleValue
			}
			answer.ScaleValue = a.ScaleValue
		case KindFreeText:
			if a.TextValue == nil || strings.TrimSpace(*a.TextValue) == "" {
				return nil, surveyerrors.ErrInvalidTextValue
			}
			answer.TextValue = a.TextValue
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

func (s *service) GetAggregates(ctx context.Context, surveyID string) (SurveyAggregateResponse, error) {
	sv, err := s.findSurvey(ctx, surveyID)
	if err != nil {
		return SurveyAggregateResponse{}, err
	}
	responses, err := s.repo.ListResponses(ctx, sv.ID.String())
	if err != nil {
		return SurveyAggregateResponse{}, err
	}

	byQuestion := make(map[string][]Answer)
	for _, resp := range responses {
		for _, a := range resp.Answers {
			key := a.QuestionID.String()
			byQuestion[key] = append(byQuestion[key], a)
		}
	}

	agg := SurveyAggregateResponse{
		SurveyID:      sv.ID.String(),
		Title:         sv.Title,
		ResponseCount: len(responses),
		Questions:     make([]QuestionAggregate, 0, len(sv.Questions)),
	}
	for _, q := range sv.Questions {
		answers := byQuestion[q.ID.String()]
		qa := QuestionAggregate{
			QuestionID:  q.ID.String(),
			Prompt:      q.Prompt,
			Kind:        string(q.Kind),
			AnswerCount: len(answers),
		}
		switch q.Kind {
		case KindScale:
			qa.Distribution = make(map[int]int)
			sum := 0
			for _, a := range answers {
				if a.ScaleValue == nil {
					continue
				}
				qa.Distribution[*a.ScaleValue]++
				sum += *a.ScaleValue
			}
			if len(answers) > 0 {
				avg := decimal.NewFromInt(int64(sum)).
					Div(decimal.NewFromInt(int64(len(answers)))).
					StringFixed(2)
				qa.AverageScale = &avg
			}
		case KindFreeText:
			for _, a := range answers {
				if a.TextValue != nil {
					qa.TextAnswers = append(qa.TextAnswers, *a.TextValue)
				}
			}
		}
		agg.Questions = append(agg.Questions, qa)
	}
	return agg, nil
}

func (s *service) findSurvey(ctx context.Context, id string) (*Survey, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, surveyerrors.ErrInvalidSurveyID
	}
	sv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, surveyerrors.ErrSurveyNotFound
		}
		return nil, err
	}
	return sv, nil
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_survey_responses_survey_employee" {
			return surveyerrors.ErrAlreadyResponded
		}
	}
	return err
}

func mapToResponse(sv Survey, includeQuestions bool) SurveyResponse {
	resp := SurveyResponse{
		ID:          sv.ID.String(),
		Title:       sv.Title,
		Description: sv.Description,
		OpensAt:     sv.OpensAt.UTC().Format(time.RFC3339),
		ClosesAt:    sv.ClosesAt.UTC().Format(time.RFC3339),
		Open:        sv.IsOpen(time.Now().UTC()),
		CreatedAt:   sv.CreatedAt.Format(time.RFC3339),
	}
	if includeQuestions {
		for _, q := range sv.Questions {
			resp.Questions = append(resp.Questions, QuestionResponse{
				ID:       q.ID.String(),
				Prompt:   q.Prompt,
				Kind:     string(q.Kind),
				Position: q.Position,
			})
		}
	}
	return resp
}
