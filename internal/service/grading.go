package service

import (
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/util"
)

// GradedSheet is the outcome of grading one submission against a
// competency's answer keys.
type GradedSheet struct {
	Total   int
	Correct int
	Score   int
	Answers []model.ResultAnswer
}

// GradeSubmission checks every selection against the question set and
// its keys. selections maps question id -> chosen option id.
//
// Rules:
//   - every referenced question must belong to the question set and
//     every chosen option to its question, otherwise the matching
//     not-found sentinel is returned;
//   - requireAll rejects a sheet that leaves questions unanswered;
//   - an unanswered question (when allowed) counts as wrong;
//   - a question without a key can never be correct;
//   - score is percent correct, rounded half-up to an integer.
func GradeSubmission(questions []model.Question, selections map[uint]uint, requireAll bool) (*GradedSheet, error) {
	if len(questions) == 0 {
		return nil, util.ErrQuestionNotFound
	}

	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for questionID := range selections {
		if _, ok := byID[questionID]; !ok {
			return nil, util.ErrQuestionNotFound
		}
	}

	sheet := &GradedSheet{Total: len(questions)}

	for i := range questions {
		q := &questions[i]

		optionID, answered := selections[q.ID]
		if !answered {
			if requireAll {
				return nil, util.ErrIncompleteSubmission
			}
			continue
		}

		option := findOption(q, optionID)
		if option == nil {
			return nil, util.ErrAnswerNotFound
		}

		correct := q.Key != nil && q.Key.AnswerOptionID == option.ID
		if correct {
			sheet.Correct++
		}

		sheet.Answers = append(sheet.Answers, model.ResultAnswer{
			QuestionID:     q.ID,
			Prompt:         q.Prompt,
			AnswerOptionID: option.ID,
			OptionLabel:    option.Label,
			OptionText:     option.Text,
			IsCorrect:      correct,
		})
	}

	sheet.Score = percentRoundHalfUp(sheet.Correct, sheet.Total)
	return sheet, nil
}

// percentRoundHalfUp computes correct/total*100 rounded half-up, in
// integer arithmetic.
func percentRoundHalfUp(correct, total int) int {
	if total == 0 {
		return 0
	}
	return (correct*200 + total) / (2 * total)
}

func findOption(q *model.Question, optionID uint) *model.AnswerOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}
