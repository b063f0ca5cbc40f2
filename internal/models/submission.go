package models

import "time"

const (
	// StatusPending indicates the submission has not been reviewed by a teacher yet.
	StatusPending = "pending"
	// StatusExcellent marks the highest teacher evaluation.
	StatusExcellent = "excellent"
	// StatusGood marks a positive teacher evaluation.
	StatusGood = "good"
	// StatusNeedsWork marks a submission the teacher sent back for rework.
	StatusNeedsWork = "needs_work"
)

const (
	// FileTypeImage covers photographed or exported artwork.
	FileTypeImage = "image"
	// FileTypeDocument covers PDF submissions.
	FileTypeDocument = "document"
)

// TeacherGrade is one append-only entry in a submission's grading history.
// Entries are never edited or removed once recorded.
type TeacherGrade struct {
	ID          string    `json:"id"`
	TeacherName string    `json:"teacherName"`
	Grade       int       `json:"grade"`
	GradeLevel  string    `json:"gradeLevel"`
	Comment     string    `json:"comment"`
	AssessedAt  time.Time `json:"assessedAt"`
}

// Submission represents one uploaded student artifact and its evaluation history.
// The record only references the stored file, it never holds the bytes.
type Submission struct {
	ID             string         `json:"id"`
	StudentID      string         `json:"studentId"`
	StudentName    string         `json:"studentName"`
	FileName       string         `json:"fileName"`
	FileURL        string         `json:"fileUrl"`
	FileType       string         `json:"fileType"`
	ExtractedText  string         `json:"extractedText,omitempty"`
	TelegramFileID string         `json:"telegramFileId,omitempty"`
	AIScore        int            `json:"aiScore"`
	AIComment      string         `json:"aiComment"`
	TeacherGrade   *int           `json:"teacherGrade"`
	TeacherComment *string        `json:"teacherComment"`
	TeacherGrades  []TeacherGrade `json:"teacherGrades"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	AssessedAt     *time.Time     `json:"assessedAt"`
	AssessedBy     *string        `json:"assessedBy"`
}

// IsAssessed reports whether a teacher has graded the submission at least once.
func (s Submission) IsAssessed() bool {
	return s.Status != StatusPending
}

// ValidStatus reports whether the value is one of the enumerated submission states.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusExcellent, StatusGood, StatusNeedsWork:
		return true
	default:
		return false
	}
}
