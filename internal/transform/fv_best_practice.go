package transform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/TechnoServe/pima-integration/internal/mapping"
	"github.com/TechnoServe/pima-integration/internal/models"
	"github.com/TechnoServe/pima-integration/internal/resolver"
)

// FVBestPracticeTransformer maps one best practice section of a farm visit.
type FVBestPracticeTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewFVBestPracticeTransformer(r *resolver.Resolver, logger ectologger.Logger) *FVBestPracticeTransformer {
	return &FVBestPracticeTransformer{
		resolver: r,
		logger:   logger,
	}
}

// BestPracticeSubmissionID derives the best practice natural key.
func BestPracticeSubmissionID(p Payload, section string) string {
	return fmt.Sprintf("FVBP-%s-%s", p.SubmissionID(), section)
}

func (t *FVBestPracticeTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, section string) (*models.FVBestPractice, error) {
	farmVisitID, err := t.resolver.Resolve(ctx, cache, "Farm Visit", FarmVisitSubmissionID(p), "submission_id", "farm_visits")
	if err != nil {
		return nil, err
	}

	return &models.FVBestPractice{
		SubmissionID:     BestPracticeSubmissionID(p, section),
		FarmVisitID:      farmVisitID,
		BestPracticeType: mapping.FVBPTypeLabel[section],
		IsBPVerified:     false,
	}, nil
}

// FVBestPracticeAnswerTransformer maps one question answer under a best
// practice section.
type FVBestPracticeAnswerTransformer struct {
	resolver *resolver.Resolver
	logger   ectologger.Logger
}

func NewFVBestPracticeAnswerTransformer(r *resolver.Resolver, logger ectologger.Logger) *FVBestPracticeAnswerTransformer {
	return &FVBestPracticeAnswerTransformer{
		resolver: r,
		logger:   logger,
	}
}

// BestPracticeAnswer carries one exploded answer into the transformer.
// Multiselect answers produce one record per selected code.
type BestPracticeAnswer struct {
	Section     string
	Question    string
	Answer      string
	Multiselect bool
	// Other is the free text companion answer expanded when the coded answer
	// maps to "Other".
	Other string
}

func (t *FVBestPracticeAnswerTransformer) Transform(ctx context.Context, cache *resolver.Cache, p Payload, a BestPracticeAnswer) (*models.FVBestPracticeAnswer, error) {
	bestPracticeID, err := t.resolver.Resolve(ctx, cache, "FV Best Practice", BestPracticeSubmissionID(p, a.Section), "submission_id", "fv_best_practices")
	if err != nil {
		return nil, err
	}

	record := t.mapAnswer(p, a)
	record.FVBestPracticeID = bestPracticeID
	return record, nil
}

func (t *FVBestPracticeAnswerTransformer) mapAnswer(p Payload, a BestPracticeAnswer) *models.FVBestPracticeAnswer {
	visitType := p.Form().String("survey_type")

	var answerText *string
	var answerNumeric *float64
	var answerBoolean *bool

	switch {
	case mapping.FVBPVisitTypeFiltered[a.Question]:
		text := mapping.FVBPAnswerTextByVisitType[a.Question][visitType][a.Answer]
		answerText = expandOther(text, a.Other)

	// Stumping periods shift with the cohort's program year.
	case a.Question == "year_stumping":
		year := mapping.FVStumpingProgramYear[p.AppID()]
		text := mapping.FVYearStumpingText[year][a.Answer]
		answerText = StringPtr(text)

	case mapping.FVBPAnswerText[a.Question] != nil:
		text := mapping.FVBPAnswerText[a.Question][a.Answer]
		if text == "Yes" || text == "No" {
			answerBoolean = BoolPtr(text == "Yes")
		} else {
			answerText = expandOther(text, a.Other)
		}

	case mapping.FVQuestionText[a.Question] != nil:
		text := mapping.FVQuestionText[a.Question][a.Answer]
		answerText = expandOther(text, a.Other)

	case isYNQuestion(a.Question):
		answerBoolean = ParseYesNo(a.Answer)

	case !isPhotoQuestion(a.Question):
		if n, err := strconv.ParseFloat(a.Answer, 64); err == nil {
			answerNumeric = &n
		} else {
			answerText = StringPtr(a.Answer)
		}
	}

	submissionID := fmt.Sprintf("FVBPA-%s-%s", p.SubmissionID(), a.Question)
	if a.Multiselect {
		submissionID = fmt.Sprintf("FVBPA-%s-%s-%s", p.SubmissionID(), a.Question, a.Answer)
	}

	return &models.FVBestPracticeAnswer{
		SubmissionID:  submissionID,
		QuestionKey:   a.Question,
		AnswerText:    answerText,
		AnswerNumeric: answerNumeric,
		AnswerBoolean: answerBoolean,
	}
}

func expandOther(text, other string) *string {
	if text == "Other" {
		return StringPtr("Other: " + other)
	}
	return StringPtr(text)
}

func isYNQuestion(question string) bool {
	for _, suffix := range mapping.YNQuestionSuffixes {
		if strings.HasSuffix(question, suffix) {
			return true
		}
	}
	return false
}

func isPhotoQuestion(question string) bool {
	lower := strings.ToLower(question)
	return strings.Contains(lower, "photo") || strings.Contains(lower, "image")
}
