package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studioclass/review-api/internal/dto"
	"github.com/studioclass/review-api/internal/models"
)

func TestSubmissionLifecycle(t *testing.T) {
	ta := newTestApp(t)
	token := ta.loginToken(t, "teacher")

	id := ta.createSubmission(t, dto.WebhookSubmissionRequest{
		StudentID:   "42",
		StudentName: "Ana",
		FileName:    "poster.png",
		FileURL:     "/uploads/poster.png",
		FileType:    models.FileTypeImage,
	})

	// Fresh submission shows up as pending with a canned score attached.
	response, envelope := ta.doJSON(t, http.MethodGet, "/api/submissions", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var listed []models.Submission
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Len(t, listed, 1)
	require.Equal(t, id, listed[0].ID)
	require.Equal(t, models.StatusPending, listed[0].Status)
	require.GreaterOrEqual(t, listed[0].AIScore, 0)
	require.LessOrEqual(t, listed[0].AIScore, 100)
	require.Empty(t, listed[0].TeacherGrades)

	// Teacher grades it.
	grade := 88
	comment := "well balanced layout"
	status := models.StatusExcellent
	response, envelope = ta.doJSON(t, http.MethodPut, "/api/submissions/"+id+"/assess", token, dto.AssessSubmissionRequest{
		TeacherGrade:   &grade,
		TeacherComment: &comment,
		Status:         &status,
		NewGrade:       &dto.NewGradeRequest{GradeLevel: models.StatusExcellent},
	})
	require.Equal(t, http.StatusOK, response.StatusCode)

	var assessed models.Submission
	require.NoError(t, json.Unmarshal(envelope.Data, &assessed))
	require.Equal(t, models.StatusExcellent, assessed.Status)
	require.Equal(t, 88, *assessed.TeacherGrade)
	require.Equal(t, "teacher", *assessed.AssessedBy)
	require.Len(t, assessed.TeacherGrades, 1)

	// Teacher removes it.
	response, envelope = ta.doJSON(t, http.MethodDelete, "/api/submissions/"+id, token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var removed dto.DeleteSubmissionResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &removed))
	require.Equal(t, id, removed.SubmissionID)

	response, envelope = ta.doJSON(t, http.MethodGet, "/api/submissions", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Empty(t, listed)
}

func TestSubmissionEndpointsRequireToken(t *testing.T) {
	ta := newTestApp(t)

	response, envelope := ta.doJSON(t, http.MethodGet, "/api/submissions", "", nil)
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
	require.False(t, envelope.Success)

	response, _ = ta.doJSON(t, http.MethodDelete, "/api/submissions/anything", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestAssessUnknownSubmissionReturns404(t *testing.T) {
	ta := newTestApp(t)
	token := ta.loginToken(t, "teacher")

	grade := 80
	response, envelope := ta.doJSON(t, http.MethodPut, "/api/submissions/missing/assess", token, dto.AssessSubmissionRequest{TeacherGrade: &grade})
	require.Equal(t, http.StatusNotFound, response.StatusCode)
	require.Equal(t, "submission not found", envelope.Message)
}

func TestDeleteUnknownSubmissionReturns404(t *testing.T) {
	ta := newTestApp(t)
	token := ta.loginToken(t, "teacher")

	response, envelope := ta.doJSON(t, http.MethodDelete, "/api/submissions/missing", token, nil)
	require.Equal(t, http.StatusNotFound, response.StatusCode)
	require.False(t, envelope.Success)
}

func TestListSupportsSortAndFilterParams(t *testing.T) {
	ta := newTestApp(t)
	token := ta.loginToken(t, "teacher")

	ta.createSubmission(t, dto.WebhookSubmissionRequest{StudentID: "1", StudentName: "Ana", FileName: "a.png"})
	ta.createSubmission(t, dto.WebhookSubmissionRequest{StudentID: "2", StudentName: "Boris", FileName: "b.png"})

	response, envelope := ta.doJSON(t, http.MethodGet, "/api/submissions?sortBy=studentName&order=asc&status=pending", token, nil)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var listed []models.Submission
	require.NoError(t, json.Unmarshal(envelope.Data, &listed))
	require.Len(t, listed, 2)
	require.Equal(t, "Ana", listed[0].StudentName)
	require.Equal(t, "Boris", listed[1].StudentName)
}

func TestWebhookRejectsIncompletePayload(t *testing.T) {
	ta := newTestApp(t)

	response, envelope := ta.doJSON(t, http.MethodPost, "/api/webhook/submission", "", dto.WebhookSubmissionRequest{StudentName: "Ana"})
	require.Equal(t, http.StatusBadRequest, response.StatusCode)
	require.False(t, envelope.Success)
}
