package commentController_test

import (
	"fmt"
	"net/http"
	"testing"

	"scholaria/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app            *fiber.App
	lecturer       string
	student        string
	announcementID uint
}

func setupFixture(t *testing.T) fixture {
	t.Helper()

	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	student := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")

	status, body := testutil.DoJSON(t, app, "POST", "/api/v1/courses", lecturer, map[string]interface{}{
		"title":       "Computer Science",
		"code":        "CS101",
		"description": "Foundations of programming and algorithms.",
	})
	require.Equal(t, http.StatusCreated, status)
	courseID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	status, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = testutil.DoJSON(t, app, "POST", "/api/v1/announcements", lecturer, map[string]interface{}{
		"title":    "Discussion",
		"body":     "Share your questions about lecture one here.",
		"courseId": courseID,
	})
	require.Equal(t, http.StatusCreated, status)
	announcementID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	return fixture{app: app, lecturer: lecturer, student: student, announcementID: announcementID}
}

func (f fixture) addComment(t *testing.T, token, content string) uint {
	t.Helper()

	status, body := testutil.DoJSON(t, f.app, "POST", fmt.Sprintf("/api/v1/comments/%d", f.announcementID), token, map[string]interface{}{
		"content": content,
	})
	require.Equal(t, http.StatusCreated, status, "add comment failed: %v", body)
	return uint(body["data"].(map[string]interface{})["ID"].(float64))
}

func TestAddComment(t *testing.T) {
	f := setupFixture(t)

	status, body := testutil.DoJSON(t, f.app, "POST", fmt.Sprintf("/api/v1/comments/%d", f.announcementID), f.student, map[string]interface{}{
		"content": "When is the first assignment due?",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "When is the first assignment due?", data["content"])
	assert.Equal(t, false, data["isEdited"])
	assert.Equal(t, "Grace", data["user"].(map[string]interface{})["name"])
}

func TestAddCommentRequiresMembership(t *testing.T) {
	f := setupFixture(t)
	outsider := testutil.RegisterUser(t, f.app, "Eve", "eve@example.com", "student")

	status, _ := testutil.DoJSON(t, f.app, "POST", fmt.Sprintf("/api/v1/comments/%d", f.announcementID), outsider, map[string]interface{}{
		"content": "Let me in.",
	})
	require.Equal(t, http.StatusForbidden, status)

	// Missing announcement
	status, _ = testutil.DoJSON(t, f.app, "POST", "/api/v1/comments/9999", f.student, map[string]interface{}{
		"content": "Hello?",
	})
	require.Equal(t, http.StatusNotFound, status)
}

func TestCommentValidation(t *testing.T) {
	f := setupFixture(t)

	status, body := testutil.DoJSON(t, f.app, "POST", fmt.Sprintf("/api/v1/comments/%d", f.announcementID), f.student, map[string]interface{}{
		"content": "   ",
	})
	require.Equal(t, http.StatusBadRequest, status)
	errors := body["data"].(map[string]interface{})
	assert.Contains(t, errors, "content")
}

func TestGetCommentsOrderAndPagination(t *testing.T) {
	f := setupFixture(t)
	f.addComment(t, f.student, "First!")
	f.addComment(t, f.lecturer, "Welcome, everyone.")
	f.addComment(t, f.student, "Thanks.")

	status, body := testutil.DoJSON(t, f.app, "GET", fmt.Sprintf("/api/v1/comments/%d?page=1&limit=2", f.announcementID), f.student, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	comments := data["comments"].([]interface{})
	require.Len(t, comments, 2)
	assert.Equal(t, "First!", comments[0].(map[string]interface{})["content"])

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["pages"])
}

func TestUpdateComment(t *testing.T) {
	f := setupFixture(t)
	id := f.addComment(t, f.student, "Wen is it due?")

	status, body := testutil.DoJSON(t, f.app, "PUT", fmt.Sprintf("/api/v1/comments/%d", id), f.student, map[string]interface{}{
		"content": "When is it due?",
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "When is it due?", data["content"])
	assert.Equal(t, true, data["isEdited"])
	assert.NotNil(t, data["editedAt"])
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	f := setupFixture(t)
	id := f.addComment(t, f.student, "Original text.")

	// Not even the announcement's creator may edit someone else's comment
	status, _ := testutil.DoJSON(t, f.app, "PUT", fmt.Sprintf("/api/v1/comments/%d", id), f.lecturer, map[string]interface{}{
		"content": "Reworded by lecturer.",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestDeleteComment(t *testing.T) {
	f := setupFixture(t)
	other := testutil.RegisterUser(t, f.app, "Alan", "alan@example.com", "student")

	// Author can delete their own comment
	id := f.addComment(t, f.student, "Delete me.")
	status, _ := testutil.DoJSON(t, f.app, "DELETE", fmt.Sprintf("/api/v1/comments/%d", id), f.student, nil)
	require.Equal(t, http.StatusOK, status)

	// The announcement creator can moderate any comment
	id = f.addComment(t, f.student, "Off topic.")
	status, _ = testutil.DoJSON(t, f.app, "DELETE", fmt.Sprintf("/api/v1/comments/%d", id), f.lecturer, nil)
	require.Equal(t, http.StatusOK, status)

	// Another student cannot
	status, _ = testutil.DoJSON(t, f.app, "POST", "/api/v1/courses/1/enroll", other, nil)
	require.Equal(t, http.StatusOK, status)
	id = f.addComment(t, f.student, "Keep me.")
	status, _ = testutil.DoJSON(t, f.app, "DELETE", fmt.Sprintf("/api/v1/comments/%d", id), other, nil)
	require.Equal(t, http.StatusForbidden, status)
}
