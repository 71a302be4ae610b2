package commentController

import (
	"time"

	"scholaria/database"
	"scholaria/middleware"
	"scholaria/models"
	"scholaria/utils"
	commentValidator "scholaria/validators/comment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// announcementCourse resolves an announcement's parent course.
func announcementCourse(db *gorm.DB, announcement *models.Announcement) (*models.Course, error) {
	var course models.Course
	if err := db.First(&course, announcement.CourseID).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// AddComment posts a comment on an announcement the requester can see
func AddComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)

	reqData, ok := c.Locals("validatedComment").(*commentValidator.CommentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var announcement models.Announcement
	if err := db.First(&announcement, announcementID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found", nil)
	}

	course, err := announcementCourse(db, &announcement)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !middleware.CanViewCourse(db, userID, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to comment on this announcement", nil)
	}

	comment := models.Comment{
		Content:        reqData.Content,
		AnnouncementID: announcement.ID,
		UserID:         userID,
	}

	if err := db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add comment!", nil)
	}

	db.Preload("User").First(&comment, comment.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment added successfully", comment)
}

// GetComments lists an announcement's comments oldest-first
func GetComments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	announcementID := c.Locals("announcementID").(uint)
	db := database.Database.Db
	page, limit := utils.ParsePagination(c)

	var announcement models.Announcement
	if err := db.First(&announcement, announcementID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found", nil)
	}

	course, err := announcementCourse(db, &announcement)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if !middleware.CanViewCourse(db, userID, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view comments for this announcement", nil)
	}

	query := db.Model(&models.Comment{}).Where("announcement_id = ?", announcementID)

	var total int64
	query.Count(&total)

	var comments []models.Comment
	if err := query.
		Preload("User").
		Order("created_at asc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully", fiber.Map{
		"comments":   comments,
		"pagination": utils.PaginationMeta(page, limit, total),
	})
}

// UpdateComment edits a comment; only its author may do this. The edit marks
// the comment as edited and records when.
func UpdateComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID := c.Locals("commentID").(uint)

	reqData, ok := c.Locals("validatedCommentUpdate").(*commentValidator.CommentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found", nil)
	}

	if comment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this comment", nil)
	}

	now := time.Now()
	comment.Content = reqData.Content
	comment.IsEdited = true
	comment.EditedAt = &now

	if err := db.Save(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update comment!", nil)
	}

	db.Preload("User").First(&comment, comment.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment updated successfully", comment)
}

// DeleteComment removes a comment; permitted for its author or the creator
// of the announcement it belongs to.
func DeleteComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID := c.Locals("commentID").(uint)
	db := database.Database.Db

	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found", nil)
	}

	var announcement models.Announcement
	if err := db.First(&announcement, comment.AnnouncementID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Announcement not found", nil)
	}

	if comment.UserID != userID && announcement.CreatedByID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this comment", nil)
	}

	if err := db.Delete(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted successfully", nil)
}
