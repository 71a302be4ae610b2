package courseController

import (
	"strings"

	"scholaria/database"
	"scholaria/middleware"
	"scholaria/models"
	"scholaria/utils"
	courseValidator "scholaria/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// courseResponse is a course with its enrolled students populated.
type courseResponse struct {
	models.Course
	Students []models.User `json:"students"`
}

// studentsForCourses loads enrolled students for a set of courses in one
// query, keyed by course ID.
func studentsForCourses(db *gorm.DB, courseIDs []uint) map[uint][]models.User {
	byCourse := make(map[uint][]models.User, len(courseIDs))
	for _, id := range courseIDs {
		byCourse[id] = []models.User{}
	}
	if len(courseIDs) == 0 {
		return byCourse
	}

	var enrollments []models.Enrollment
	db.Where("course_id IN ?", courseIDs).Preload("User").Find(&enrollments)
	for _, e := range enrollments {
		byCourse[e.CourseID] = append(byCourse[e.CourseID], e.User)
	}
	return byCourse
}

func withStudents(db *gorm.DB, courses []models.Course) []courseResponse {
	ids := make([]uint, 0, len(courses))
	for _, course := range courses {
		ids = append(ids, course.ID)
	}
	students := studentsForCourses(db, ids)

	out := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, courseResponse{Course: course, Students: students[course.ID]})
	}
	return out
}

// CreateCourse creates a new course owned by the requesting lecturer
func CreateCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	code := strings.ToUpper(strings.TrimSpace(reqData.Code))

	// Course codes stay unique across active and inactive courses
	if err := db.Where("code = ?", code).First(&models.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course with this code already exists", nil)
	}

	course := models.Course{
		Title:       strings.TrimSpace(reqData.Title),
		Code:        code,
		Description: strings.TrimSpace(reqData.Description),
		LecturerID:  user.ID,
		IsActive:    true,
	}

	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	course.Lecturer = *user
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully", course)
}

// GetAllCourses lists active courses with pagination and optional search
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db
	page, limit := utils.ParsePagination(c)

	query := db.Model(&models.Course{}).Where("is_active = ?", true)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(code) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	query.Count(&total)

	var courses []models.Course
	if err := query.
		Preload("Lecturer").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully", fiber.Map{
		"courses":    withStudents(db, courses),
		"pagination": utils.PaginationMeta(page, limit, total),
	})
}

// GetMyCourses lists the requester's enrolled and created courses
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	db.Where("user_id = ?", userID).Preload("Course").Preload("Course.Lecturer").Find(&enrollments)

	enrolled := make([]models.Course, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course.IsActive {
			enrolled = append(enrolled, e.Course)
		}
	}

	var created []models.Course
	db.Where("lecturer_id = ?", userID).Order("created_at desc").Find(&created)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully", fiber.Map{
		"enrolledCourses": enrolled,
		"createdCourses":  withStudents(db, created),
	})
}

// GetCourse fetches a single course with lecturer and students populated
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Lecturer").First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	resp := withStudents(db, []models.Course{course})[0]
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully", resp)
}

// GetCourseDetails aggregates the course with its recent announcements,
// materials grouped by category, and a stats block.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Preload("Lecturer").First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// Details expose announcements and materials, so the visibility rule applies
	if !middleware.CanViewCourse(db, userID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view this course's content", nil)
	}

	var announcements []models.Announcement
	db.Where("course_id = ?", courseID).
		Preload("CreatedBy").
		Order("created_at desc").
		Limit(5).
		Find(&announcements)

	var materials []models.Material
	db.Where("course_id = ?", courseID).
		Preload("UploadedBy").
		Order("created_at desc").
		Find(&materials)

	materialsByCategory := make(map[string][]models.Material)
	for _, m := range materials {
		category := m.Category
		if category == "" {
			category = models.CategoryOther
		}
		materialsByCategory[category] = append(materialsByCategory[category], m)
	}

	var totalAnnouncements int64
	db.Model(&models.Announcement{}).Where("course_id = ?", courseID).Count(&totalAnnouncements)

	resp := withStudents(db, []models.Course{course})[0]

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully", fiber.Map{
		"course":        resp,
		"announcements": announcements,
		"materials":     materialsByCategory,
		"stats": fiber.Map{
			"totalStudents":       len(resp.Students),
			"totalAnnouncements":  totalAnnouncements,
			"totalMaterials":      len(materials),
			"materialsByCategory": len(materialsByCategory),
		},
	})
}

// UpdateCourse edits a course; only the owning lecturer may do this
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.LecturerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this course", nil)
	}

	code := strings.ToUpper(strings.TrimSpace(reqData.Code))
	if code != course.Code {
		if err := db.Where("code = ? AND id <> ?", code, course.ID).First(&models.Course{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course with this code already exists", nil)
		}
	}

	course.Title = strings.TrimSpace(reqData.Title)
	course.Code = code
	course.Description = strings.TrimSpace(reqData.Description)

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully", course)
}

// DeleteCourse soft-deletes a course by clearing its active flag
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.LecturerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this course", nil)
	}

	course.IsActive = false
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}

// EnrollInCourse enrolls the requesting student in an active course
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	// Idempotency guard before the side-effect
	if middleware.IsEnrolled(db, user.ID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already enrolled in this course", nil)
	}

	enrollment := models.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   "ENROLLED",
	}

	// Single transactional write; the unique (user, course) index backs up
	// the guard under concurrent requests.
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&enrollment).Error
	}); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Already enrolled in this course", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully enrolled in course", enrollment)
}
