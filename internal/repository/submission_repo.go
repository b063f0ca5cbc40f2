package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studioclass/review-api/internal/models"
)

var (
	// ErrNotFound indicates the addressed submission does not exist.
	ErrNotFound = errors.New("submission not found")
	// ErrMissingFields indicates a create payload without the required identity fields.
	ErrMissingFields = errors.New("studentId and fileName are required")
)

// ListOptions narrows and orders the snapshot returned by List.
type ListOptions struct {
	Status string // exact status match; empty or "all" keeps every record
	SortBy string // createdAt, aiScore, studentName or status
	Order  string // asc or desc; desc when empty
}

// AssessmentPatch merges teacher grading input into an existing submission.
// Nil fields keep their prior values; NewGrade, when present, is appended to
// the history. AssessedAt/AssessedBy are always refreshed.
type AssessmentPatch struct {
	TeacherGrade   *int
	TeacherComment *string
	Status         *string
	NewGrade       *models.TeacherGrade
	AssessedBy     string
	AssessedAt     time.Time
}

// SubmissionRepository owns the authoritative submission collection.
type SubmissionRepository interface {
	Insert(ctx context.Context, submission *models.Submission) error
	List(ctx context.Context, opts ListOptions) ([]models.Submission, error)
	GetByID(ctx context.Context, id string) (models.Submission, error)
	UpdateAssessment(ctx context.Context, id string, patch AssessmentPatch) (models.Submission, error)
	Delete(ctx context.Context, id string) (models.Submission, error)
}

type memorySubmissionRepository struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

// NewMemorySubmissionRepository builds the in-memory store. State lives for the
// process lifetime only; a restart silently discards every record.
func NewMemorySubmissionRepository() SubmissionRepository {
	return &memorySubmissionRepository{}
}

func (r *memorySubmissionRepository) Insert(_ context.Context, submission *models.Submission) error {
	if strings.TrimSpace(submission.StudentID) == "" || strings.TrimSpace(submission.FileName) == "" {
		return ErrMissingFields
	}

	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.Status == "" {
		submission.Status = models.StatusPending
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	if submission.TeacherGrades == nil {
		submission.TeacherGrades = []models.TeacherGrade{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.submissions = append(r.submissions, cloneSubmission(*submission))

	return nil
}

func (r *memorySubmissionRepository) List(_ context.Context, opts ListOptions) ([]models.Submission, error) {
	r.mu.RLock()

	snapshot := make([]models.Submission, 0, len(r.submissions))
	for _, submission := range r.submissions {
		if opts.Status != "" && opts.Status != "all" && submission.Status != opts.Status {
			continue
		}
		snapshot = append(snapshot, cloneSubmission(submission))
	}

	r.mu.RUnlock()

	sortSubmissions(snapshot, opts.SortBy, opts.Order)

	return snapshot, nil
}

func (r *memorySubmissionRepository) GetByID(_ context.Context, id string) (models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, submission := range r.submissions {
		if submission.ID == id {
			return cloneSubmission(submission), nil
		}
	}

	return models.Submission{}, ErrNotFound
}

func (r *memorySubmissionRepository) UpdateAssessment(_ context.Context, id string, patch AssessmentPatch) (models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].ID != id {
			continue
		}

		submission := &r.submissions[i]

		if patch.NewGrade != nil {
			entry := *patch.NewGrade
			if entry.ID == "" {
				entry.ID = defaultGradeEntryID(id, patch.AssessedAt)
			}
			submission.TeacherGrades = append(submission.TeacherGrades, entry)
		}

		if patch.TeacherGrade != nil {
			grade := *patch.TeacherGrade
			submission.TeacherGrade = &grade
		}
		if patch.TeacherComment != nil {
			comment := *patch.TeacherComment
			submission.TeacherComment = &comment
		}
		if patch.Status != nil {
			submission.Status = *patch.Status
		}

		assessedAt := patch.AssessedAt
		assessedBy := patch.AssessedBy
		submission.AssessedAt = &assessedAt
		submission.AssessedBy = &assessedBy

		return cloneSubmission(*submission), nil
	}

	return models.Submission{}, ErrNotFound
}

func (r *memorySubmissionRepository) Delete(_ context.Context, id string) (models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].ID != id {
			continue
		}

		removed := cloneSubmission(r.submissions[i])
		r.submissions = append(r.submissions[:i], r.submissions[i+1:]...)

		return removed, nil
	}

	return models.Submission{}, ErrNotFound
}

func defaultGradeEntryID(submissionID string, at time.Time) string {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return fmt.Sprintf("%s-%d", submissionID, at.UnixMilli())
}

// cloneSubmission copies the record including its grade history so callers can
// never mutate stored state through a returned value.
func cloneSubmission(submission models.Submission) models.Submission {
	clone := submission
	clone.TeacherGrades = append([]models.TeacherGrade(nil), submission.TeacherGrades...)
	if submission.TeacherGrade != nil {
		grade := *submission.TeacherGrade
		clone.TeacherGrade = &grade
	}
	if submission.TeacherComment != nil {
		comment := *submission.TeacherComment
		clone.TeacherComment = &comment
	}
	if submission.AssessedAt != nil {
		at := *submission.AssessedAt
		clone.AssessedAt = &at
	}
	if submission.AssessedBy != nil {
		by := *submission.AssessedBy
		clone.AssessedBy = &by
	}
	return clone
}

func sortSubmissions(items []models.Submission, sortBy, order string) {
	asc := order == "asc"

	less := func(a, b models.Submission) bool {
		switch sortBy {
		case "aiScore":
			return a.AIScore < b.AIScore
		case "studentName":
			return a.StudentName < b.StudentName
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
