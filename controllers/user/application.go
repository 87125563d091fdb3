package user

import (
	"strings"

	"nrxpay/database"
	"nrxpay/helpers"
	"nrxpay/models"
	"nrxpay/services/workflow"

	"github.com/gofiber/fiber/v2"
)

type CreateApplicationRequest struct {
	Kind            string `json:"kind"`
	ApplicantName   string `json:"applicant_name"`
	BusinessName    string `json:"business_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	AadharPhotoPath string `json:"aadhar_photo_path"`
	PanPhotoPath    string `json:"pan_photo_path"`
}

func CreateApplication(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	kind := strings.ToLower(req.Kind)
	if kind != "corporate" && kind != "current" && kind != "savings" {
		return helpers.JSONError(c, "INVALID_APPLICATION_KIND")
	}
	if req.ApplicantName == "" {
		return helpers.JSONError(c, "APPLICANT_NAME_REQUIRED")
	}

	application := models.AccountApplication{
		UserID:          user.ID,
		Kind:            kind,
		ApplicantName:   strings.TrimSpace(req.ApplicantName),
		BusinessName:    strings.TrimSpace(req.BusinessName),
		Phone:           strings.TrimSpace(req.Phone),
		Email:           strings.TrimSpace(req.Email),
		AadharPhotoPath: req.AadharPhotoPath,
		PanPhotoPath:    req.PanPhotoPath,
		Status:          string(workflow.Initial(workflow.KindApplication)),
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_APPLICATION")
	}

	return helpers.JSONSuccess(c, "Application submitted successfully", application)
}

func ListApplications(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION")
	}

	var applications []models.AccountApplication
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").Find(&applications).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_APPLICATIONS")
	}

	return helpers.JSONSuccess(c, "Applications retrieved successfully", applications)
}
