package service

import (
	"errors"
	"testing"

	"school_exam_backend/internal/model"
	"school_exam_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourQuestions builds a keyed question set with IDs 1..4, options
// 10..49, where option 10*q is always the correct one.
func fourQuestions() []model.Question {
	questions := make([]model.Question, 0, 4)
	for q := uint(1); q <= 4; q++ {
		question := model.Question{
			BaseModel: model.BaseModel{ID: q},
			Prompt:    "pertanyaan",
		}
		for o := uint(0); o < 4; o++ {
			question.Options = append(question.Options, model.AnswerOption{
				BaseModel: model.BaseModel{ID: q*10 + o},
				Label:     string(rune('A' + o)),
				Text:      "jawaban",
			})
		}
		question.Key = &model.AnswerKey{QuestionID: q, AnswerOptionID: q * 10}
		questions = append(questions, question)
	}
	return questions
}

func TestGradeSubmissionScoresPercentCorrect(t *testing.T) {
	questions := fourQuestions()

	tests := []struct {
		name       string
		selections map[uint]uint
		correct    int
		score      int
	}{
		{
			name:       "three of four",
			selections: map[uint]uint{1: 10, 2: 20, 3: 30, 4: 41},
			correct:    3,
			score:      75,
		},
		{
			name:       "all wrong",
			selections: map[uint]uint{1: 11, 2: 21, 3: 31, 4: 41},
			correct:    0,
			score:      0,
		},
		{
			name:       "all correct",
			selections: map[uint]uint{1: 10, 2: 20, 3: 30, 4: 40},
			correct:    4,
			score:      100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := GradeSubmission(questions, tt.selections, true)
			require.NoError(t, err)
			assert.Equal(t, 4, sheet.Total)
			assert.Equal(t, tt.correct, sheet.Correct)
			assert.Equal(t, tt.score, sheet.Score)
			assert.Len(t, sheet.Answers, 4)
		})
	}
}

func TestGradeSubmissionSnapshotsAnswers(t *testing.T) {
	questions := fourQuestions()

	sheet, err := GradeSubmission(questions, map[uint]uint{1: 10, 2: 21, 3: 30, 4: 40}, true)
	require.NoError(t, err)

	require.Len(t, sheet.Answers, 4)
	first := sheet.Answers[0]
	assert.Equal(t, uint(1), first.QuestionID)
	assert.Equal(t, "pertanyaan", first.Prompt)
	assert.Equal(t, uint(10), first.AnswerOptionID)
	assert.Equal(t, "A", first.OptionLabel)
	assert.True(t, first.IsCorrect)

	second := sheet.Answers[1]
	assert.False(t, second.IsCorrect)
	assert.Equal(t, "B", second.OptionLabel)
}

func TestGradeSubmissionRequireAll(t *testing.T) {
	questions := fourQuestions()
	partial := map[uint]uint{1: 10, 2: 20, 3: 30}

	_, err := GradeSubmission(questions, partial, true)
	assert.True(t, errors.Is(err, util.ErrIncompleteSubmission))

	// same sheet with the policy relaxed: the blank counts as wrong
	sheet, err := GradeSubmission(questions, partial, false)
	require.NoError(t, err)
	assert.Equal(t, 3, sheet.Correct)
	assert.Equal(t, 75, sheet.Score)
	assert.Len(t, sheet.Answers, 3)
}

func TestGradeSubmissionMembership(t *testing.T) {
	questions := fourQuestions()

	_, err := GradeSubmission(questions, map[uint]uint{99: 10}, false)
	assert.True(t, errors.Is(err, util.ErrQuestionNotFound))

	// option belongs to a different question
	_, err = GradeSubmission(questions, map[uint]uint{1: 20}, false)
	assert.True(t, errors.Is(err, util.ErrAnswerNotFound))

	_, err = GradeSubmission(nil, map[uint]uint{}, false)
	assert.True(t, errors.Is(err, util.ErrQuestionNotFound))
}

func TestGradeSubmissionUnkeyedQuestionNeverCorrect(t *testing.T) {
	questions := fourQuestions()
	questions[3].Key = nil

	sheet, err := GradeSubmission(questions, map[uint]uint{1: 10, 2: 20, 3: 30, 4: 40}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, sheet.Correct)
	assert.Equal(t, 75, sheet.Score)
}

func TestPercentRoundHalfUp(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 8, 13},  // 12.5 rounds up
		{1, 3, 33},  // 33.33 rounds down
		{2, 3, 67},  // 66.67 rounds up
		{1, 6, 17},  // 16.67 rounds up
		{5, 8, 63},  // 62.5 rounds up
		{4, 4, 100},
		{3, 4, 75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, percentRoundHalfUp(tt.correct, tt.total),
			"%d/%d", tt.correct, tt.total)
	}
}
