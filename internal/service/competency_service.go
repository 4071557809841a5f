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

type CompetencyService struct {
	CompetencyRepo *repository.CompetencyRepository
	Redis          *redis.Client
}

func NewCompetencyService(competencyRepo *repository.CompetencyRepository, rdb *redis.Client) *CompetencyService {
	return &CompetencyService{
		CompetencyRepo: competencyRepo,
		Redis:          rdb,
	}
}

func (s *CompetencyService) List() ([]model.Competency, error) {
	return s.CompetencyRepo.FindAll()
}

func (s *CompetencyService) ListByTeacher(teacherID uint) ([]model.Competency, error) {
	return s.CompetencyRepo.FindByTeacher(teacherID)
}

func (s *CompetencyService) GetBySlug(slug string) (*model.Competency, error) {
	competency, err := s.CompetencyRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCompetencyNotFound
	}
	return competency, err
}

// GetForStaff is GetBySlug narrowed to the caller: teachers only reach
// their own competencies, admins reach all.
func (s *CompetencyService) GetForStaff(claims *util.Claims, slug string) (*model.Competency, error) {
	competency, err := s.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.Teacher && competency.TeacherID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return competency, nil
}

// Create derives the slug from the title, suffixing until unique.
func (s *CompetencyService) Create(teacherID uint, title, description string, duration int) (*model.Competency, error) {
	slug, err := s.uniqueSlug(title)
	if err != nil {
		return nil, err
	}

	competency := &model.Competency{
		Slug:        slug,
		Title:       title,
		Description: description,
		Duration:    duration,
		TeacherID:   teacherID,
	}
	if err := s.CompetencyRepo.Create(competency); err != nil {
		return nil, err
	}
	return competency, nil
}

// Update edits title, description and duration. The slug is left
// untouched so links already handed out keep resolving.
func (s *CompetencyService) Update(ctx context.Context, claims *util.Claims, slug, title, description string, duration int) (*model.Competency, error) {
	competency, err := s.GetForStaff(claims, slug)
	if err != nil {
		return nil, err
	}

	competency.Title = title
	competency.Description = description
	competency.Duration = duration
	if err := s.CompetencyRepo.Update(competency); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slug)
	return competency, nil
}

// Delete cascades the question tree but refuses while results exist:
// results are the audit trail and outlive curriculum edits.
func (s *CompetencyService) Delete(ctx context.Context, claims *util.Claims, slug string) error {
	competency, err := s.GetForStaff(claims, slug)
	if err != nil {
		return err
	}

	count, err := s.CompetencyRepo.CountResults(competency.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrHasResults
	}

	if err := s.CompetencyRepo.Delete(competency.ID); err != nil {
		return err
	}

	s.invalidateCache(ctx, slug)
	return nil
}

func (s *CompetencyService) invalidateCache(ctx context.Context, slug string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionCacheKey(slug)).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

func (s *CompetencyService) uniqueSlug(title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "kompetensi"
	}

	candidate := base
	for n := 2; ; n++ {
		exists, err := s.CompetencyRepo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = util.SlugWithSuffix(base, n)
	}
}
