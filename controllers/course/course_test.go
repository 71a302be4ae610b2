package courseController_test

import (
	"fmt"
	"net/http"
	"testing"

	"scholaria/database"
	"scholaria/models"
	"scholaria/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, app *fiber.App, token, title, code string) uint {
	t.Helper()

	status, body := testutil.DoJSON(t, app, "POST", "/api/v1/courses", token, map[string]interface{}{
		"title":       title,
		"code":        code,
		"description": "A course about " + title + " fundamentals.",
	})
	require.Equal(t, http.StatusCreated, status, "create course failed: %v", body)

	data := body["data"].(map[string]interface{})
	return uint(data["ID"].(float64))
}

func TestCreateCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")

	status, body := testutil.DoJSON(t, app, "POST", "/api/v1/courses", token, map[string]interface{}{
		"title":       "Computer Science",
		"code":        "cs101",
		"description": "Foundations of programming and algorithms.",
	})
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "CS101", data["code"], "codes are stored uppercased")
	assert.Equal(t, true, data["isActive"])
}

func TestCreateCourseRequiresLecturer(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")

	status, _ := testutil.DoJSON(t, app, "POST", "/api/v1/courses", token, map[string]interface{}{
		"title":       "Computer Science",
		"code":        "CS101",
		"description": "Foundations of programming and algorithms.",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestCourseCodeUnique(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	createCourse(t, app, token, "Computer Science", "CS101")

	status, body := testutil.DoJSON(t, app, "POST", "/api/v1/courses", token, map[string]interface{}{
		"title":       "Another Course",
		"code":        "CS101",
		"description": "Duplicate code should be rejected here.",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "code already exists")
}

func TestCourseCodeUniqueAcrossInactive(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	courseID := createCourse(t, app, token, "Computer Science", "CS101")

	// Soft-delete, then try to reuse the code
	status, _ := testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/courses/%d", courseID), token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := testutil.DoJSON(t, app, "POST", "/api/v1/courses", token, map[string]interface{}{
		"title":       "Another Course",
		"code":        "CS101",
		"description": "Code stays reserved by the inactive course.",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "code already exists")
}

func TestUpdateCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	other := testutil.RegisterUser(t, app, "Bob", "bob@example.com", "lecturer")

	courseID := createCourse(t, app, token, "Computer Science", "CS101")
	createCourse(t, app, other, "Databases", "DB201")

	// Owner can update
	status, body := testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/v1/courses/%d", courseID), token, map[string]interface{}{
		"title":       "Computer Science II",
		"code":        "CS102",
		"description": "A follow-up course on advanced topics.",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CS102", body["data"].(map[string]interface{})["code"])

	// Cannot take another course's code
	status, _ = testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/v1/courses/%d", courseID), token, map[string]interface{}{
		"title":       "Computer Science II",
		"code":        "DB201",
		"description": "A follow-up course on advanced topics.",
	})
	require.Equal(t, http.StatusBadRequest, status)

	// Non-owner lecturer gets 403
	status, _ = testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/v1/courses/%d", courseID), other, map[string]interface{}{
		"title":       "Hijacked",
		"code":        "CS999",
		"description": "This update must not be permitted.",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestSoftDeleteExcludesFromListing(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	courseID := createCourse(t, app, token, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/courses/%d", courseID), token, nil)
	require.Equal(t, http.StatusOK, status)

	// Record still exists, flagged inactive
	var course models.Course
	require.NoError(t, database.Database.Db.First(&course, courseID).Error)
	assert.False(t, course.IsActive)

	// Default listing excludes it
	status, body := testutil.DoJSON(t, app, "GET", "/api/v1/courses", token, nil)
	require.Equal(t, http.StatusOK, status)
	courses := body["data"].(map[string]interface{})["courses"].([]interface{})
	assert.Empty(t, courses)
}

func TestEnrollment(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	student := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusOK, status)

	// Second attempt is rejected and enrollment count stays at 1
	status, body := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Already enrolled")

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", testutil.UserID(t, "grace@example.com"), courseID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollRequiresStudentRole(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), lecturer, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestEnrollInactiveCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	student := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/v1/courses/%d", courseID), lecturer, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestCoursePagination(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")

	for i := 0; i < 15; i++ {
		createCourse(t, app, token, fmt.Sprintf("Course %02d", i), fmt.Sprintf("CS%03d", i))
	}

	status, body := testutil.DoJSON(t, app, "GET", "/api/v1/courses?page=2&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	courses := data["courses"].([]interface{})
	assert.Len(t, courses, 5)

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
	assert.Equal(t, float64(15), pagination["total"])
	assert.Equal(t, float64(2), pagination["pages"])

	// Past the last page: empty list, not an error
	status, body = testutil.DoJSON(t, app, "GET", "/api/v1/courses?page=5&limit=10", token, nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Empty(t, data["courses"])
}

func TestCourseSearch(t *testing.T) {
	app := testutil.SetupApp(t)
	token := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	createCourse(t, app, token, "Linear Algebra", "MATH201")
	createCourse(t, app, token, "Databases", "DB101")

	status, body := testutil.DoJSON(t, app, "GET", "/api/v1/courses?search=algebra", token, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	courses := data["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Linear Algebra", courses[0].(map[string]interface{})["title"])

	// Code matches too, case-insensitively
	status, body = testutil.DoJSON(t, app, "GET", "/api/v1/courses?search=db1", token, nil)
	require.Equal(t, http.StatusOK, status)
	courses = body["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "DB101", courses[0].(map[string]interface{})["code"])
}

func TestCourseDetailsAggregation(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	student := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusOK, status)

	for i := 0; i < 7; i++ {
		status, _ := testutil.DoJSON(t, app, "POST", "/api/v1/announcements", lecturer, map[string]interface{}{
			"title":    fmt.Sprintf("Announcement %d", i),
			"body":     "Please read the attached notes before class.",
			"courseId": courseID,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/v1/courses/%d/details", courseID), student, nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	announcements := data["announcements"].([]interface{})
	assert.Len(t, announcements, 5, "details returns the 5 most recent announcements")

	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["totalStudents"])
	assert.Equal(t, float64(7), stats["totalAnnouncements"])
	assert.Equal(t, float64(0), stats["totalMaterials"])
}

func TestCourseDetailsDeniedForNonMembers(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	outsider := testutil.RegisterUser(t, app, "Eve", "eve@example.com", "student")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/v1/courses/%d/details", courseID), outsider, nil)
	require.Equal(t, http.StatusForbidden, status)
}

func TestMyCourses(t *testing.T) {
	app := testutil.SetupApp(t)
	lecturer := testutil.RegisterUser(t, app, "Ada", "ada@example.com", "lecturer")
	student := testutil.RegisterUser(t, app, "Grace", "grace@example.com", "student")
	courseID := createCourse(t, app, lecturer, "Computer Science", "CS101")

	status, _ := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), student, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := testutil.DoJSON(t, app, "GET", "/api/v1/courses/user/my-courses", student, nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["enrolledCourses"], 1)
	assert.Empty(t, data["createdCourses"])

	status, body = testutil.DoJSON(t, app, "GET", "/api/v1/courses/user/my-courses", lecturer, nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Empty(t, data["enrolledCourses"])
	assert.Len(t, data["createdCourses"], 1)
}
