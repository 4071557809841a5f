package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/util"
	"school_exam_backend/pkg/logger"
	"school_exam_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const questionCacheTTL = 10 * time.Minute

// ExamService runs a student's attempt at a competency test: serves
// the question set, opens attempts, grades final submissions and
// persists the immutable result.
type ExamService struct {
	CompetencyRepo *repository.CompetencyRepository
	AttemptRepo    *repository.AttemptRepository
	ResultRepo     *repository.ResultRepository
	Redis          *redis.Client
	Policy         *config.TestPolicy
}

func NewExamService(
	competencyRepo *repository.CompetencyRepository,
	attemptRepo *repository.AttemptRepository,
	resultRepo *repository.ResultRepository,
	rdb *redis.Client,
	policy *config.TestPolicy,
) *ExamService {
	return &ExamService{
		CompetencyRepo: competencyRepo,
		AttemptRepo:    attemptRepo,
		ResultRepo:     resultRepo,
		Redis:          rdb,
		Policy:         policy,
	}
}

type TestOptionView struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type TestQuestionView struct {
	ID      uint             `json:"id"`
	Prompt  string           `json:"prompt"`
	Options []TestOptionView `json:"options"`
}

// StudentTestView is what the test page renders. Keys never appear
// here.
type StudentTestView struct {
	Slug          string             `json:"slug"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Duration      int                `json:"duration"`
	QuestionCount int                `json:"questionCount"`
	Status        string             `json:"status"` // not_started, in_progress, completed
	StartedAt     *time.Time         `json:"startedAt,omitempty"`
	RemainingTime int                `json:"remainingTime"`
	Questions     []TestQuestionView `json:"questions,omitempty"`
	Score         *int               `json:"score,omitempty"`
	ResultID      *uint              `json:"resultId,omitempty"`
}

// GetTestView assembles the test page for one student: competency
// info, the question set without keys, and the state of the student's
// current attempt.
func (s *ExamService) GetTestView(ctx context.Context, studentID uint, slug string) (*StudentTestView, error) {
	competency, err := s.loadCompetency(ctx, slug)
	if err != nil {
		return nil, err
	}

	view := &StudentTestView{
		Slug:          competency.Slug,
		Title:         competency.Title,
		Description:   competency.Description,
		Duration:      competency.Duration,
		QuestionCount: len(competency.Questions),
		Status:        "not_started",
		RemainingTime: competency.Duration * 60,
	}

	attempt, err := s.AttemptRepo.FindInProgress(studentID, competency.ID)
	switch {
	case err == nil:
		view.Status = string(model.AttemptInProgress)
		view.StartedAt = &attempt.StartedAt
		view.RemainingTime = remainingSeconds(competency.Duration, attempt.StartedAt)
		view.Questions = questionViews(competency.Questions)
		return view, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	// no open attempt; surface the latest result if one exists
	results, err := s.ResultRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].CompetencyID == competency.ID {
			view.Status = string(model.AttemptCompleted)
			view.RemainingTime = 0
			view.Score = &results[i].Score
			view.ResultID = &results[i].ID
			break
		}
	}

	return view, nil
}

// StartTest opens an attempt. An open attempt is resumed rather than
// duplicated; a completed result blocks a new attempt unless retakes
// are enabled.
func (s *ExamService) StartTest(studentID uint, slug string) (*model.TestAttempt, error) {
	competency, err := s.CompetencyRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCompetencyNotFound
	} else if err != nil {
		return nil, err
	}

	if attempt, err := s.AttemptRepo.FindInProgress(studentID, competency.ID); err == nil {
		return attempt, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completed, err := s.ResultRepo.HasCompleted(studentID, competency.ID)
	if err != nil {
		return nil, err
	}
	if completed && !s.Policy.AllowRetake() {
		return nil, util.ErrTestAlreadyCompleted
	}

	lastAttempt, err := s.ResultRepo.MaxAttemptNumber(studentID, competency.ID)
	if err != nil {
		return nil, err
	}

	attempt := &model.TestAttempt{
		StudentID:     studentID,
		CompetencyID:  competency.ID,
		AttemptNumber: lastAttempt + 1,
		Status:        model.AttemptInProgress,
		StartedAt:     time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitTest grades the full answer sheet and persists exactly one
// result for the attempt. The unique index on results is the final
// arbiter against concurrent duplicate submissions; a loser of that
// race gets ErrTestAlreadyCompleted and writes nothing.
func (s *ExamService) SubmitTest(ctx context.Context, studentID uint, slug string, selections map[uint]uint) (*model.Result, error) {
	competency, err := s.loadCompetency(ctx, slug)
	if err != nil {
		return nil, err
	}

	attempt, err := s.AttemptRepo.FindInProgress(studentID, competency.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTestNotStarted
	} else if err != nil {
		return nil, err
	}

	if !s.Policy.AllowRetake() {
		completed, err := s.ResultRepo.HasCompleted(studentID, competency.ID)
		if err != nil {
			return nil, err
		}
		if completed {
			return nil, util.ErrTestAlreadyCompleted
		}
	}

	sheet, err := GradeSubmission(competency.Questions, selections, s.Policy.RequireAllAnswered())
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		StudentID:     studentID,
		CompetencyID:  competency.ID,
		AttemptNumber: attempt.AttemptNumber,
		Score:         sheet.Score,
		CompletedAt:   time.Now(),
		Answers:       sheet.Answers,
	}

	if err := s.ResultRepo.CreateWithAnswers(result, attempt.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrTestAlreadyCompleted
		}
		return nil, err
	}

	monitoring.SubmissionsGraded.WithLabelValues(competency.Slug).Inc()
	logger.Log.Info("test submission graded",
		zap.Uint("student_id", studentID),
		zap.String("competency", competency.Slug),
		zap.Int("score", sheet.Score),
		zap.Int("correct", sheet.Correct),
		zap.Int("total", sheet.Total),
	)

	return result, nil
}

// StudentResults lists the calling student's own results.
func (s *ExamService) StudentResults(studentID uint) ([]model.Result, error) {
	return s.ResultRepo.ListByStudent(studentID)
}

// StudentResultDetail loads one result and refuses access across
// student identities.
func (s *ExamService) StudentResultDetail(studentID, resultID uint) (*model.Result, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	} else if err != nil {
		return nil, err
	}
	if result.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	return result, nil
}

// TeacherResults lists all results of one competency, restricted to
// its owning teacher (admins pass the role gate upstream and are
// exempt from the ownership check).
func (s *ExamService) TeacherResults(claims *util.Claims, slug string) ([]model.Result, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}
	return s.ResultRepo.ListByCompetency(competency.ID)
}

// TeacherResultDetail drills into one student's graded sheet.
func (s *ExamService) TeacherResultDetail(claims *util.Claims, slug string, resultID uint) (*model.Result, error) {
	competency, err := s.ownedCompetency(claims, slug)
	if err != nil {
		return nil, err
	}

	result, err := s.ResultRepo.FindByID(resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResultNotFound
	} else if err != nil {
		return nil, err
	}
	if result.CompetencyID != competency.ID {
		return nil, util.ErrResultNotFound
	}
	return result, nil
}

func (s *ExamService) ownedCompetency(claims *util.Claims, slug string) (*model.Competency, error) {
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

// loadCompetency serves the question tree from redis when warm; the
// question service invalidates the key on every curriculum mutation.
func (s *ExamService) loadCompetency(ctx context.Context, slug string) (*model.Competency, error) {
	cacheKey := questionCacheKey(slug)

	if s.Redis != nil {
		if payload, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var competency model.Competency
			if err := json.Unmarshal(payload, &competency); err == nil {
				return &competency, nil
			}
		}
	}

	competency, err := s.CompetencyRepo.FindBySlugWithQuestions(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCompetencyNotFound
	} else if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(competency); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.String("slug", slug), zap.Error(err))
			}
		}
	}

	return competency, nil
}

func questionCacheKey(slug string) string {
	return "tes:questions:" + slug
}

func remainingSeconds(durationMinutes int, startedAt time.Time) int {
	if durationMinutes <= 0 {
		return 0
	}
	remaining := durationMinutes*60 - int(time.Since(startedAt).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func questionViews(questions []model.Question) []TestQuestionView {
	views := make([]TestQuestionView, len(questions))
	for i, q := range questions {
		options := make([]TestOptionView, len(q.Options))
		for j, o := range q.Options {
			options[j] = TestOptionView{ID: o.ID, Label: o.Label, Text: o.Text}
		}
		views[i] = TestQuestionView{ID: q.ID, Prompt: q.Prompt, Options: options}
	}
	return views
}
