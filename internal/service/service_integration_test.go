package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/repository"
	"school_exam_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB connects to the MySQL instance named by
// SCHOOL_EXAM_TEST_DSN and migrates the schema. Tests that call it are
// skipped unless SCHOOL_EXAM_INTEGRATION=1.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("SCHOOL_EXAM_INTEGRATION") != "1" {
		t.Skip("set SCHOOL_EXAM_INTEGRATION=1 to run integration tests")
	}

	dsn := os.Getenv("SCHOOL_EXAM_TEST_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/school_exam_test?charset=utf8mb4&parseTime=true&loc=Local"
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test db")

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Competency{},
		&model.Question{},
		&model.AnswerOption{},
		&model.AnswerKey{},
		&model.TestAttempt{},
		&model.Result{},
		&model.ResultAnswer{},
	))

	return db
}

func strptr(s string) *string { return &s }

func TestUserDirectory_DBIntegration(t *testing.T) {
	db := openTestDB(t)
	users := NewUserService(repository.NewUserRepository(db), NewStorageService(&config.Config{
		Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
	}))

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("itest_guru_%d", suffix)
	email := fmt.Sprintf("itest_%d@example.com", suffix)

	created, fields, err := users.CreateWithRole(UserInput{
		Name:     "Guru Integrasi",
		Username: username,
		Email:    strptr(email),
	}, model.Teacher)
	require.NoError(t, err)
	require.True(t, fields.Empty(), "unexpected field errors: %v", fields)

	stored, err := users.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(DefaultPassword)),
		"new account must carry the bcrypt hash of the default password")

	// same username again comes back as a field error, not a DB error
	_, fields, err = users.CreateWithRole(UserInput{
		Name:     "Guru Kedua",
		Username: username,
	}, model.Teacher)
	require.NoError(t, err)
	require.Contains(t, fields, "username")

	// update without a password keeps the stored hash
	fields, err = users.Update(created.ID, model.Teacher, UserInput{
		Name:     "Guru Integrasi Baru",
		Username: username,
		Email:    strptr(email),
	})
	require.NoError(t, err)
	require.True(t, fields.Empty())

	after, err := users.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guru Integrasi Baru", after.Name)
	assert.Equal(t, stored.Password, after.Password)

	// update with a password replaces it
	fields, err = users.Update(created.ID, model.Teacher, UserInput{
		Name:     after.Name,
		Username: username,
		Email:    strptr(email),
		Password: "rahasia-baru",
	})
	require.NoError(t, err)
	require.True(t, fields.Empty())

	after, err = users.GetByID(created.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(after.Password), []byte("rahasia-baru")))

	// role mismatch behaves like a missing record
	err = users.Delete(context.Background(), created.ID, model.Student)
	assert.True(t, errors.Is(err, util.ErrUserNotFound))

	require.NoError(t, users.Delete(context.Background(), created.ID, model.Teacher))
	_, err = users.GetByID(created.ID)
	assert.True(t, errors.Is(err, util.ErrUserNotFound))

	// the soft-deleted row still holds the unique index, so reusing
	// its username is a field error, never a raw duplicate-key error
	_, fields, err = users.CreateWithRole(UserInput{
		Name:     "Guru Pengganti",
		Username: username,
	}, model.Teacher)
	require.NoError(t, err)
	require.Contains(t, fields, "username")
}

// seedTest creates a teacher, a student and a two-question competency
// with keys, returning the pieces the exam flow needs.
func seedTest(t *testing.T, db *gorm.DB) (teacher, student *model.User, competency *model.Competency) {
	t.Helper()
	suffix := time.Now().UnixNano()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	teacher = &model.User{
		Name:     "Guru Ujian",
		Username: fmt.Sprintf("itest_pengajar_%d", suffix),
		Password: string(hash),
		Role:     model.Teacher,
	}
	require.NoError(t, db.Create(teacher).Error)

	student = &model.User{
		Name:     "Siswa Ujian",
		Username: fmt.Sprintf("itest_siswa_%d", suffix),
		Password: string(hash),
		Role:     model.Student,
	}
	require.NoError(t, db.Create(student).Error)

	competency = &model.Competency{
		Slug:      fmt.Sprintf("itest-ujian-%d", suffix),
		Title:     "Ujian Integrasi",
		Duration:  30,
		TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(competency).Error)

	for i := 1; i <= 2; i++ {
		question := &model.Question{
			CompetencyID: competency.ID,
			Prompt:       fmt.Sprintf("Pertanyaan %d", i),
			Order:        i,
		}
		require.NoError(t, db.Create(question).Error)

		var correctID uint
		for _, label := range []string{"A", "B"} {
			option := &model.AnswerOption{QuestionID: question.ID, Label: label, Text: "Jawaban " + label}
			require.NoError(t, db.Create(option).Error)
			if label == "A" {
				correctID = option.ID
			}
		}
		require.NoError(t, db.Create(&model.AnswerKey{QuestionID: question.ID, AnswerOptionID: correctID}).Error)
	}

	return teacher, student, competency
}

func TestExamFlow_DBIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	teacher, student, competency := seedTest(t, db)

	competencyRepo := repository.NewCompetencyRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	resultRepo := repository.NewResultRepository(db)

	policy := config.NewTestPolicy(config.TestConfig{AllowRetake: false, RequireAllAnswered: true})
	exam := NewExamService(competencyRepo, attemptRepo, resultRepo, nil, policy)

	attempt, err := exam.StartTest(student.ID, competency.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, model.AttemptInProgress, attempt.Status)

	// starting again resumes the open attempt instead of stacking one
	resumed, err := exam.StartTest(student.ID, competency.Slug)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, resumed.ID)

	loaded, err := competencyRepo.FindBySlugWithQuestions(competency.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 2)

	// answer the first question right, the second wrong
	selections := map[uint]uint{}
	for i, q := range loaded.Questions {
		require.NotNil(t, q.Key)
		if i == 0 {
			selections[q.ID] = q.Key.AnswerOptionID
		} else {
			for _, o := range q.Options {
				if o.ID != q.Key.AnswerOptionID {
					selections[q.ID] = o.ID
					break
				}
			}
		}
	}

	result, err := exam.SubmitTest(ctx, student.ID, competency.Slug, selections)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Len(t, result.Answers, 2)

	done, err := attemptRepo.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptCompleted, done.Status)

	// a second hand-in has no open attempt left to submit against
	_, err = exam.SubmitTest(ctx, student.ID, competency.Slug, selections)
	assert.True(t, errors.Is(err, util.ErrTestNotStarted))

	// with retakes disabled the completed result also blocks a restart
	_, err = exam.StartTest(student.ID, competency.Slug)
	assert.True(t, errors.Is(err, util.ErrTestAlreadyCompleted))

	// the composite unique index rejects a concurrent duplicate at the
	// storage layer
	dup := &model.Result{
		StudentID:     student.ID,
		CompetencyID:  competency.ID,
		AttemptNumber: result.AttemptNumber,
		Score:         0,
		CompletedAt:   time.Now(),
	}
	err = resultRepo.CreateWithAnswers(dup, attempt.ID)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	var count int64
	require.NoError(t, db.Model(&model.Result{}).
		Where("student_id = ? AND competency_id = ?", student.ID, competency.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "exactly one result row survives")

	// cross-student review is denied
	intruder := &model.User{
		Name:     "Siswa Lain",
		Username: fmt.Sprintf("itest_lain_%d", time.Now().UnixNano()),
		Password: student.Password,
		Role:     model.Student,
	}
	require.NoError(t, db.Create(intruder).Error)

	_, err = exam.StudentResultDetail(intruder.ID, result.ID)
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	own, err := exam.StudentResultDetail(student.ID, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, own.ID)

	// a teacher who does not own the competency is refused as well
	otherTeacher := &model.User{
		Name:     "Guru Lain",
		Username: fmt.Sprintf("itest_gurulain_%d", time.Now().UnixNano()),
		Password: teacher.Password,
		Role:     model.Teacher,
	}
	require.NoError(t, db.Create(otherTeacher).Error)

	_, err = exam.TeacherResults(&util.Claims{UserID: otherTeacher.ID, Role: model.Teacher}, competency.Slug)
	assert.True(t, errors.Is(err, util.ErrPermissionDenied))

	owned, err := exam.TeacherResults(&util.Claims{UserID: teacher.ID, Role: model.Teacher}, competency.Slug)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, student.ID, owned[0].StudentID)
}
