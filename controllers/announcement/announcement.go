package announcementController

import (
	"scholaria/database"
	"scholaria/middleware"
	"scholaria/models"
	"scholaria/utils"
	announcementValidator "scholaria/validators/announcement"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// userCourseIDs returns the courses the user can see content for: the ones
// they lecture plus the ones they are enrolled in.
func userCourseIDs(db *gorm.DB, userID uint) []uint {
	var ids []uint
	db.Model(&models.Course{}).Where("lecturer_id = ?", userID).Pluck("id", &ids)

	var enrolled []uint
	db.Model(&models.Enrollment{}).Where("user_id = ?", userID).Pluck("course_id", &enrolled)

	return append(ids, enrolled...)
}

// GetAllAnnouncements lists announcements across the requester's courses
func GetAllAnnouncements(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	page, limit := utils.ParsePagination(c)

	courseIDs := userCourseIDs(db, userID)
	if len(courseIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully", fiber.Map{
			"announcements": []models.Announcement{},
			"pagination":    utils.PaginationMeta(page, limit, 0),
		})
	}

	query := db.Model(&models.Announcement{}).Where("course_id IN ?", courseIDs)

	var total int64
	query.Count(&total)

	var announcements []models.Announcement
	if err := query.
		Preload("CreatedBy").
		Preload("Course").
		Order("is_important desc, created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&announcements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully", fiber.Map{
		"announcements": announcements,
		"pagination":    utils.PaginationMeta(page, limit, total),
	})
}

// CreateAnnouncement posts an announcement to a course the lecturer owns
func CreateAnnouncement(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAnnouncement").(*announcementValidator.CreateAnnouncementRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.LecturerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to post announcements for this course", nil)
	}

	announcement := models.Announcement{
		Title:       reqData.Title,
		Body:        reqData.Body,
		CourseID:    course.ID,
		CreatedByID: user.ID,
		IsImportant: reqData.IsImportant,
	}

	if err := db.Create(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create announcement!", nil)
	}

	announcement.Course = course
	announcement.CreatedBy = *user

	notifyStudents(db, &course, &announcement)
	utils.NotifyAnnouncementWebhook(utils.AnnouncementEvent{
		AnnouncementID: announcement.ID,
		CourseID:       course.ID,
		CourseCode:     course.Code,
		Title:          announcement.Title,
		IsImportant:    announcement.IsImportant,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Announcement created successfully", announcement)
}

// notifyStudents emails every enrolled student about the new announcement.
// Best-effort: each send runs async and failures are only logged.
func notifyStudents(db *gorm.DB, course *models.Course, announcement *models.Announcement) {
	var enrollments []models.Enrollment
	db.Where("course_id = ?", course.ID).Preload("User").Find(&enrollments)

	for _, e := range enrollments {
		utils.SendAnnouncementEmail(e.User.Email, e.User.Name, course.Title, announcement.Title)
	}
}

// GetAnnouncementsByCourse lists a single course's announcements
func GetAnnouncementsByCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	db := database.Database.Db
	page, limit := utils.ParsePagination(c)

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !middleware.CanViewCourse(db, userID, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view announcements for this course", nil)
	}

	query := db.Model(&models.Announcement{}).Where("course_id = ?", courseID)

	var total int64
	query.Count(&total)

	var announcements []models.Announcement
	if err := query.
		Preload("CreatedBy").
		Preload("Course").
		Order("is_important desc, created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&announcements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch announcements!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcements fetched successfully", fiber.Map{
		"announcements": announcements,
		"pagination":    utils.PaginationMeta(page, limit, total),
	})
}

// findVisibleAnnouncement loads an announcement and applies the visibility
// rule; the returned status code distinguishes missing from forbidden.
func findVisibleAnnouncement(db *gorm.DB, userID, announcementID uint) (*models.Announcement, int, string) {
	var announcement models.Announcement
	if err := db.Preload("CreatedBy").Preload("Course").First(&announcement, announcementID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Announcement not found"
	}

	var course models.Course
	if err := db.First(&course, announcement.CourseID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found"
	}

	if !middleware.CanViewCourse(db, userID, &course) {
		return nil, fiber.StatusForbidden, "Not authorized to view this announcement"
	}

	return &announcement, fiber.StatusOK, ""
}

// GetAnnouncement fetches a single announcement
func GetAnnouncement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)

	announcement, status, msg := findVisibleAnnouncement(database.Database.Db, userID, announcementID)
	if announcement == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement fetched successfully", announcement)
}

// GetAnnouncementWithComments fetches an announcement with its comment thread
func GetAnnouncementWithComments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)
	db := database.Database.Db

	announcement, status, msg := findVisibleAnnouncement(db, userID, announcementID)
	if announcement == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	// Chronological thread order
	var comments []models.Comment
	db.Where("announcement_id = ?", announcement.ID).
		Preload("User").
		Order("created_at asc").
		Find(&comments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement fetched successfully", fiber.Map{
		"announcement": announcement,
		"comments":     comments,
		"commentCount": len(comments),
	})
}

// UpdateAnnouncement edits an announcement; only its creator may do this
func UpdateAnnouncement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)

	reqData, ok := c.Locals("validatedAnnouncementUpdate").(*announcementValidator.UpdateAnnouncementRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var announcement models.Announcement
	if err := db.First(&announcement, announcementID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found", nil)
	}

	if announcement.CreatedByID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this announcement", nil)
	}

	if reqData.Title != "" {
		announcement.Title = reqData.Title
	}
	if reqData.Body != "" {
		announcement.Body = reqData.Body
	}
	if reqData.IsImportant != nil {
		announcement.IsImportant = *reqData.IsImportant
	}

	if err := db.Save(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement updated successfully", announcement)
}

// DeleteAnnouncement removes an announcement; only its creator may do this
func DeleteAnnouncement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)
	db := database.Database.Db

	var announcement models.Announcement
	if err := db.First(&announcement, announcementID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found", nil)
	}

	if announcement.CreatedByID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this announcement", nil)
	}

	if err := db.Delete(&announcement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete announcement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Announcement deleted successfully", nil)
}
