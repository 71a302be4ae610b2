package middleware

import (
	"errors"

	"scholaria/database"
	"scholaria/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that allows only users holding the given
// role. The role is read fresh from the database, not from the token, so a
// role change takes effect immediately.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		if user.Role != role {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Requires "+role+" role.", nil)
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}

// IsEnrolled reports whether the user has an enrollment in the course.
func IsEnrolled(db *gorm.DB, userID, courseID uint) bool {
	var count int64
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)
	return count > 0
}

// CanViewCourse is the shared visibility predicate: the course lecturer and
// enrolled students may read the course's announcements, materials and
// comments; everyone else is denied.
func CanViewCourse(db *gorm.DB, userID uint, course *models.Course) bool {
	if course.LecturerID == userID {
		return true
	}
	return IsEnrolled(db, userID, course.ID)
}
