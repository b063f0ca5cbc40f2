package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/models"
	"github.com/studioclass/review-api/internal/observability"
	"github.com/studioclass/review-api/internal/repository"
)

// ErrSubmissionNotFound indicates the addressed submission does not exist.
var ErrSubmissionNotFound = errors.New("submission not found")

// FileRemover deletes a previously stored file by its public URL.
type FileRemover interface {
	Delete(ctx context.Context, fileURL string) error
}

// SubmissionService orchestrates the submission lifecycle: bot-originated
// creation, dashboard listing, teacher assessment and deletion, with a
// broadcast to live viewers after every mutation.
type SubmissionService interface {
	CreateFromWebhook(ctx context.Context, payload dto.WebhookSubmissionRequest) (models.Submission, error)
	List(ctx context.Context, query dto.ListSubmissionsQuery) ([]models.Submission, error)
	Assess(ctx context.Context, id, teacherName string, payload dto.AssessSubmissionRequest) (models.Submission, error)
	Delete(ctx context.Context, id string) (string, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	scorer      ScoringService
	broadcaster Broadcaster
	files       FileRemover
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(repo repository.SubmissionRepository, scorer ScoringService, broadcaster Broadcaster, files FileRemover, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: repo,
		scorer:      scorer,
		broadcaster: broadcaster,
		files:       files,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) CreateFromWebhook(ctx context.Context, payload dto.WebhookSubmissionRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	score := s.resolveScore(payload)

	studentName := strings.TrimSpace(payload.StudentName)
	if studentName == "" {
		studentName = fmt.Sprintf("Студент %s", payload.StudentID)
	}

	submission := models.Submission{
		StudentID:      payload.StudentID,
		StudentName:    studentName,
		FileName:       payload.FileName,
		FileURL:        payload.FileURL,
		FileType:       resolveFileType(payload.FileType, payload.FileName),
		ExtractedText:  payload.ExtractedText,
		TelegramFileID: payload.TelegramFileID,
		AIScore:        score.Score,
		AIComment:      score.Comment,
		TeacherGrades:  []models.TeacherGrade{},
		Status:         models.StatusPending,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.submissions.Insert(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.broadcaster.Broadcast(Event{Type: EventNewSubmission, Data: submission})
	observability.SubmissionEvents().WithLabelValues("created").Inc()
	s.logger.Info().Str("submission_id", submission.ID).Str("student", submission.StudentName).Msg("submission created")

	return submission, nil
}

// resolveScore prefers the score the bot already computed; anything less than a
// complete score/comment pair falls back to the canned table so a submission is
// never dropped for want of an evaluation.
func (s *submissionService) resolveScore(payload dto.WebhookSubmissionRequest) AIScore {
	if payload.AIScore != nil && payload.AIComment != nil && *payload.AIComment != "" {
		return AIScore{Score: *payload.AIScore, Comment: *payload.AIComment}
	}

	return s.scorer.Score(payload.ExtractedText, payload.FileName)
}

func (s *submissionService) List(ctx context.Context, query dto.ListSubmissionsQuery) ([]models.Submission, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, err
	}

	opts := repository.ListOptions{
		Status: query.Status,
		SortBy: query.SortBy,
		Order:  query.Order,
	}
	if opts.SortBy == "" {
		opts.SortBy = "createdAt"
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	return s.submissions.List(ctx, opts)
}

func (s *submissionService) Assess(ctx context.Context, id, teacherName string, payload dto.AssessSubmissionRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	now := s.now().UTC()
	patch := repository.AssessmentPatch{
		TeacherGrade:   payload.TeacherGrade,
		TeacherComment: payload.TeacherComment,
		Status:         payload.Status,
		AssessedBy:     teacherName,
		AssessedAt:     now,
	}

	if payload.NewGrade != nil {
		entry := models.TeacherGrade{
			ID:          payload.NewGrade.ID,
			TeacherName: teacherName,
			GradeLevel:  payload.NewGrade.GradeLevel,
			AssessedAt:  now,
		}
		if payload.TeacherGrade != nil {
			entry.Grade = *payload.TeacherGrade
		}
		if payload.TeacherComment != nil {
			entry.Comment = *payload.TeacherComment
		}
		if entry.GradeLevel == "" && payload.Status != nil {
			entry.GradeLevel = *payload.Status
		}
		patch.NewGrade = &entry
	}

	updated, err := s.submissions.UpdateAssessment(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	s.broadcaster.Broadcast(Event{Type: EventSubmissionUpdated, Data: updated})
	observability.SubmissionEvents().WithLabelValues("assessed").Inc()
	s.logger.Info().Str("submission_id", id).Str("teacher", teacherName).Msg("submission assessed")

	return updated, nil
}

func (s *submissionService) Delete(ctx context.Context, id string) (string, error) {
	removed, err := s.submissions.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrSubmissionNotFound
		}
		return "", err
	}

	// The record delete already succeeded; a failed file cleanup leaves an
	// orphaned file behind, which is an accepted trade-off.
	if removed.FileURL != "" && s.files != nil {
		if err := s.files.Delete(ctx, removed.FileURL); err != nil {
			s.logger.Warn().Err(err).Str("file_url", removed.FileURL).Msg("failed to delete submission file")
		}
	}

	s.broadcaster.Broadcast(Event{Type: EventSubmissionDeleted, Data: dto.DeleteSubmissionResponse{SubmissionID: removed.ID}})
	observability.SubmissionEvents().WithLabelValues("deleted").Inc()
	s.logger.Info().Str("submission_id", id).Msg("submission deleted")

	return removed.ID, nil
}

func resolveFileType(fileType, fileName string) string {
	if fileType != "" {
		return fileType
	}
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return models.FileTypeDocument
	}
	return models.FileTypeImage
}
