package service

import (
	"context"
	"errors"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/util"
	"school_exam_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionService manages a competency's question tree: prompts,
// answer options and the answer key. Every operation resolves the
// competency by slug, checks the caller owns it, and invalidates the
// cached question payload afterwards.
type QuestionService struct {
	CompetencyRepo *repository.CompetencyRepository
	QuestionRepo   *repository.QuestionRepository
	AnswerRepo     *repository.AnswerRepository
	KeyRepo        *repository.KeyRepository
	Redis          *redis.Client
}

func NewQuestionService(
	competencyRepo *repository.CompetencyRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	keyRepo *repository.KeyRepository,
	rdb *redis.Client,
) *QuestionService {
	return &QuestionService{
		CompetencyRepo: competencyRepo,
		QuestionRepo:   questionRepo,
		AnswerRepo:     answerRepo,
		KeyRepo:        keyRepo,
		Redis:          rdb,
	}
}

func (s *QuestionService) ListQuestions(claims *util.Claims, slug string) ([]model.Question, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	return s.QuestionRepo.ListByCompetency(competency.ID)
}

func (s *QuestionService) GetQuestion(claims *util.Claims, slug string, questionID uint) (*model.Question, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	return s.questionOf(competency, questionID)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, claims *util.Claims, slug, prompt string, order int) (*model.Question, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		CompetencyID: competency.ID,
		Prompt:       prompt,
		Order:        order,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return question, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, claims *util.Claims, slug string, questionID uint, prompt string, order int) (*model.Question, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}

	question, err := s.questionOf(competency, questionID)
	if err != nil {
		return nil, err
	}

	question.Prompt = prompt
	question.Order = order
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return question, nil
}

// DeleteQuestion cascades to the question's options and key.
func (s *QuestionService) DeleteQuestion(ctx context.Context, claims *util.Claims, slug string, questionID uint) error {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return err
	}

	if _, err := s.questionOf(competency, questionID); err != nil {
		return err
	}

	if err := s.QuestionRepo.Delete(questionID); err != nil {
		return err
	}

	s.invalidateCache(ctx, slug)
	return nil
}

func (s *QuestionService) ListOptions(claims *util.Claims, slug string, questionID uint) ([]model.AnswerOption, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.questionOf(competency, questionID); err != nil {
		return nil, err
	}
	return s.AnswerRepo.ListByQuestion(questionID)
}

func (s *QuestionService) CreateOption(ctx context.Context, claims *util.Claims, slug string, questionID uint, label, text string) (*model.AnswerOption, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.questionOf(competency, questionID); err != nil {
		return nil, err
	}

	option := &model.AnswerOption{
		QuestionID: questionID,
		Label:      label,
		Text:       text,
	}
	if err := s.AnswerRepo.Create(option); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return option, nil
}

func (s *QuestionService) UpdateOption(ctx context.Context, claims *util.Claims, slug string, questionID, optionID uint, label, text string) (*model.AnswerOption, error) {
	option, err := s.optionOf(claims, slug, questionID, optionID)
	if err != nil {
		return nil, err
	}

	option.Label = label
	option.Text = text
	if err := s.AnswerRepo.Update(option); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return option, nil
}

func (s *QuestionService) DeleteOption(ctx context.Context, claims *util.Claims, slug string, questionID, optionID uint) error {
	if _, err := s.optionOf(claims, slug, questionID, optionID); err != nil {
		return err
	}

	if err := s.AnswerRepo.Delete(optionID); err != nil {
		return err
	}

	s.invalidateCache(ctx, slug)
	return nil
}

// AssignKey marks an option as the correct answer of its question.
// Assigning correctness is its own operation; editing an option's
// text never moves the key.
func (s *QuestionService) AssignKey(ctx context.Context, claims *util.Claims, slug string, questionID, optionID uint) (*model.AnswerKey, error) {
	if _, err := s.optionOf(claims, slug, questionID, optionID); err != nil {
		return nil, err
	}

	key, err := s.KeyRepo.Assign(questionID, optionID)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return key, nil
}

func (s *QuestionService) RemoveKey(ctx context.Context, claims *util.Claims, slug string, questionID uint) error {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return err
	}
	if _, err := s.questionOf(competency, questionID); err != nil {
		return err
	}

	if _, err := s.KeyRepo.FindByQuestion(questionID); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrKeyNotFound
	} else if err != nil {
		return err
	}

	if err := s.KeyRepo.Delete(questionID); err != nil {
		return err
	}

	s.invalidateCache(ctx, slug)
	return nil
}

func (s *QuestionService) ownedCompetency(claims *util.Claims, slug string) (*model.Competency, error) {
	competency, err := s.CompetencyRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCompetencyNotFound
	} else if err != nil {
		return nil, err
	}
	if claims.Role == model.Teacher && competency.TeacherID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return competency, nil
}

// questionOf rejects questions that exist but hang off a different
// competency than the one in the URL.
func (s *QuestionService) questionOf(competency *model.Competency, questionID uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	} else if err != nil {
		return nil, err
	}
	if question.CompetencyID != competency.ID {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) optionOf(claims *util.Claims, slug string, questionID, optionID uint) (*model.AnswerOption, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	if _, err := s.questionOf(competency, questionID); err != nil {
		return nil, err
	}

	option, err := s.AnswerRepo.FindByID(optionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAnswerNotFound
	} else if err != nil {
		return nil, err
	}
	if option.QuestionID != questionID {
		return nil, util.ErrAnswerNotFound
	}
	return option, nil
}

func (s *QuestionService) invalidateCache(ctx context.Context, slug string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionCacheKey(slug)).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
