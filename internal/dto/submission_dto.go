package dto

import "github.com/studioclass/review-api/internal/models"

// WebhookSubmissionRequest is the bot-originated creation payload. The bot may
// have computed a score already; when both AIScore and AIComment are present
// they are stored verbatim, otherwise the canned scorer fills them in.
type WebhookSubmissionRequest struct {
	StudentID      string  `json:"studentId" validate:"required"`
	StudentName    string  `json:"studentName"`
	FileName       string  `json:"fileName" validate:"required"`
	FileURL        string  `json:"fileUrl"`
	FileType       string  `json:"fileType" validate:"omitempty,oneof=image document"`
	ExtractedText  string  `json:"extractedText"`
	TelegramFileID string  `json:"telegramFileId"`
	AIScore        *int    `json:"aiScore" validate:"omitempty,gte=0,lte=100"`
	AIComment      *string `json:"aiComment"`
}

// WebhookAck confirms a webhook submission was recorded.
type WebhookAck struct {
	SubmissionID string `json:"submissionId"`
}

// ListSubmissionsQuery describes the query string filters for the dashboard list.
type ListSubmissionsQuery struct {
	SortBy string `query:"sortBy" validate:"omitempty,oneof=createdAt aiScore studentName status"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Status string `query:"status" validate:"omitempty,oneof=all pending excellent good needs_work"`
}

// NewGradeRequest describes one history entry to append alongside an assessment.
type NewGradeRequest struct {
	ID         string `json:"id"`
	GradeLevel string `json:"gradeLevel" validate:"omitempty,oneof=excellent good needs_work"`
}

// AssessSubmissionRequest is a sparse patch: a present field always overwrites,
// including zero and empty-string values, while an omitted field keeps the
// prior value. The nil/non-nil distinction is the sole presence signal.
type AssessSubmissionRequest struct {
	TeacherGrade   *int             `json:"teacherGrade" validate:"omitempty,gte=0,lte=100"`
	TeacherComment *string          `json:"teacherComment"`
	Status         *string          `json:"status" validate:"omitempty,oneof=excellent good needs_work"`
	NewGrade       *NewGradeRequest `json:"newGrade"`
}

// DeleteSubmissionResponse reports the removed record's id.
type DeleteSubmissionResponse struct {
	SubmissionID string `json:"submissionId"`
}

// StatsResponse aggregates the dashboard overview numbers.
type StatsResponse struct {
	TotalSubmissions  int                 `json:"totalSubmissions"`
	PendingReview     int                 `json:"pendingReview"`
	StatusCounts      map[string]int      `json:"statusCounts"`
	AverageAIScore    int                 `json:"averageAiScore"`
	RecentSubmissions []models.Submission `json:"recentSubmissions"`
}

// UploadResponse describes a stored file reference.
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
