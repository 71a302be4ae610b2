package main

import (
	"log"

	"scholaria/config"
	"scholaria/database"
	"scholaria/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo lecturer, two students, a course with enrollments, an
// announcement and a comment. Run with: go run ./scripts
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	lecturer := models.User{
		Name:     "Ada Lovelace",
		Email:    "ada@scholaria.test",
		Password: string(password),
		Role:     models.RoleLecturer,
	}
	if err := db.Where("email = ?", lecturer.Email).FirstOrCreate(&lecturer).Error; err != nil {
		log.Fatalf("Failed to seed lecturer: %v", err)
	}

	students := []models.User{
		{Name: "Grace Hopper", Email: "grace@scholaria.test", Password: string(password), Role: models.RoleStudent},
		{Name: "Alan Turing", Email: "alan@scholaria.test", Password: string(password), Role: models.RoleStudent},
	}
	for i := range students {
		if err := db.Where("email = ?", students[i].Email).FirstOrCreate(&students[i]).Error; err != nil {
			log.Fatalf("Failed to seed student: %v", err)
		}
	}

	course := models.Course{
		Title:       "Introduction to Computer Science",
		Code:        "CS101",
		Description: "Foundations of programming, algorithms and computational thinking.",
		LecturerID:  lecturer.ID,
		IsActive:    true,
	}
	if err := db.Where("code = ?", course.Code).FirstOrCreate(&course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	for _, s := range students {
		enrollment := models.Enrollment{UserID: s.ID, CourseID: course.ID, Status: "ENROLLED"}
		if err := db.Where("user_id = ? AND course_id = ?", s.ID, course.ID).
			FirstOrCreate(&enrollment).Error; err != nil {
			log.Fatalf("Failed to seed enrollment: %v", err)
		}
	}

	announcement := models.Announcement{
		Title:       "Welcome to CS101",
		Body:        "First lecture is on Monday. Please review the syllabus beforehand.",
		CourseID:    course.ID,
		CreatedByID: lecturer.ID,
		IsImportant: true,
	}
	if err := db.Where("title = ? AND course_id = ?", announcement.Title, course.ID).
		FirstOrCreate(&announcement).Error; err != nil {
		log.Fatalf("Failed to seed announcement: %v", err)
	}

	comment := models.Comment{
		Content:        "Looking forward to it!",
		AnnouncementID: announcement.ID,
		UserID:         students[0].ID,
	}
	if err := db.Where("announcement_id = ? AND user_id = ?", announcement.ID, students[0].ID).
		FirstOrCreate(&comment).Error; err != nil {
		log.Fatalf("Failed to seed comment: %v", err)
	}

	log.Println("Seed data created successfully.")
}
