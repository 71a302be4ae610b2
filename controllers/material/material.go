package materialController

import (
	"log"
	"os"
	"strings"

	"scholaria/config"
	"scholaria/database"
	"scholaria/middleware"
	"scholaria/models"
	"scholaria/utils"
	materialValidator "scholaria/validators/material"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UploadMaterial accepts a single multipart file and creates the material
// record. The file is validated and stored before anything touches the
// database, so a rejected upload never leaves an orphan record.
func UploadMaterial(c *fiber.Ctx) error {
	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpload").(*materialValidator.UploadMaterialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please upload a file", nil)
	}

	if err := utils.ValidateUpload(file); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found", nil)
	}

	if course.LecturerID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to upload materials for this course", nil)
	}

	storedName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	declaredType, _, _ := strings.Cut(file.Header.Get("Content-Type"), ";")

	material := models.Material{
		Title:        reqData.Title,
		Description:  reqData.Description,
		FileURL:      utils.GetFileURL(storedName),
		FileName:     file.Filename,
		FileType:     strings.TrimSpace(declaredType),
		FileSize:     file.Size,
		CourseID:     course.ID,
		UploadedByID: user.ID,
		Category:     reqData.Category,
		IsPublic:     true,
	}

	if err := db.Create(&material).Error; err != nil {
		// Roll the stored file back so the reaper has nothing to find
		utils.RemoveUploadedFile(material.FileURL)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	material.Course = course
	material.UploadedBy = *user

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material uploaded successfully", material)
}

// GetAllMaterials lists materials across the requester's courses with
// pagination, search and category filtering
func GetAllMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	page, limit := utils.ParsePagination(c)

	var courseIDs []uint
	db.Model(&models.Course{}).Where("lecturer_id = ?", userID).Pluck("id", &courseIDs)
	var enrolled []uint
	db.Model(&models.Enrollment{}).Where("user_id = ?", userID).Pluck("course_id", &enrolled)
	courseIDs = append(courseIDs, enrolled...)

	if len(courseIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully", fiber.Map{
			"materials":  []models.Material{},
			"pagination": utils.PaginationMeta(page, limit, 0),
		})
	}

	query := db.Model(&models.Material{}).Where("course_id IN ?", courseIDs)

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var materials []models.Material
	if err := query.
		Preload("UploadedBy").
		Preload("Course").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully", fiber.Map{
		"materials":  materials,
		"pagination": utils.PaginationMeta(page, limit, total),
	})
}

// GetMaterialsByCourse lists a single course's materials
func GetMaterialsByCourse(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to view materials for this course", nil)
	}

	query := db.Model(&models.Material{}).Where("course_id = ?", courseID)

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	var materials []models.Material
	if err := query.
		Preload("UploadedBy").
		Preload("Course").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully", fiber.Map{
		"materials":  materials,
		"pagination": utils.PaginationMeta(page, limit, total),
	})
}

// findVisibleMaterial loads a material and applies the visibility rule.
func findVisibleMaterial(db *gorm.DB, userID, materialID uint) (*models.Material, int, string) {
	var material models.Material
	if err := db.Preload("UploadedBy").Preload("Course").First(&material, materialID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Material not found"
	}

	var course models.Course
	if err := db.First(&course, material.CourseID).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found"
	}

	if !middleware.CanViewCourse(db, userID, &course) {
		return nil, fiber.StatusForbidden, "Not authorized to view this material"
	}

	return &material, fiber.StatusOK, ""
}

// GetMaterial fetches a single material
func GetMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	material, status, msg := findVisibleMaterial(database.Database.Db, userID, materialID)
	if material == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material fetched successfully", material)
}

// GetMaterialDetails fetches a material plus on-disk file metadata
func GetMaterialDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	material, status, msg := findVisibleMaterial(database.Database.Db, userID, materialID)
	if material == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	fileInfo := fiber.Map{
		"exists":     false,
		"canPreview": utils.CanPreview(material.FileType),
		"size":       material.FileSize,
	}
	if stat, err := os.Stat(utils.UploadPath(material.FileURL)); err == nil {
		fileInfo["exists"] = true
		fileInfo["lastModified"] = stat.ModTime()
		fileInfo["size"] = stat.Size()
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material details fetched successfully", fiber.Map{
		"material": material,
		"fileInfo": fileInfo,
	})
}

// UpdateMaterial edits a material's metadata; only its uploader may do this
func UpdateMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	reqData, ok := c.Locals("validatedMaterialUpdate").(*materialValidator.UpdateMaterialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var material models.Material
	if err := db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found", nil)
	}

	if material.UploadedByID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to update this material", nil)
	}

	if reqData.Title != "" {
		material.Title = reqData.Title
	}
	if reqData.Description != "" {
		material.Description = reqData.Description
	}
	if reqData.Category != "" {
		material.Category = reqData.Category
	}

	if err := db.Save(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material updated successfully", material)
}

// DeleteMaterial removes the stored file, then the record. A missing file
// does not block the delete.
func DeleteMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)
	db := database.Database.Db

	var material models.Material
	if err := db.First(&material, materialID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found", nil)
	}

	if material.UploadedByID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to delete this material", nil)
	}

	if err := utils.RemoveUploadedFile(material.FileURL); err != nil {
		log.Printf("Error removing file for material %d: %v", material.ID, err)
	}

	if err := db.Delete(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully", nil)
}

// DownloadMaterial streams the stored file as an attachment
func DownloadMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	material, status, msg := findVisibleMaterial(database.Database.Db, userID, materialID)
	if material == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	path := utils.UploadPath(material.FileURL)
	stat, err := os.Stat(path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+material.FileName+`"`)
	c.Set(fiber.HeaderContentType, material.FileType)
	return c.SendStream(f, int(stat.Size()))
}

// PreviewMaterial streams inline-renderable files (images, PDF, plain text)
func PreviewMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	materialID := c.Locals("materialID").(uint)

	material, status, msg := findVisibleMaterial(database.Database.Db, userID, materialID)
	if material == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	if !utils.CanPreview(material.FileType) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This file type cannot be previewed. Use download instead.", nil)
	}

	path := utils.UploadPath(material.FileURL)
	stat, err := os.Stat(path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "File not found", nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read file!", nil)
	}

	c.Set(fiber.HeaderContentType, material.FileType)
	return c.SendStream(f, int(stat.Size()))
}
