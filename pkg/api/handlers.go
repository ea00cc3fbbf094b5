package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"driver-apply/pkg/clients/kana"
	"driver-apply/pkg/models"
	"driver-apply/pkg/services"
	"driver-apply/pkg/validation"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.SubmissionService
	jobCountService   services.JobCountService
	locationService   services.LocationService
	kanaClient        kana.Client
	environment       string
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	submissionService services.SubmissionService,
	jobCountService services.JobCountService,
	locationService services.LocationService,
	kanaClient kana.Client,
	environment string,
) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		jobCountService:   jobCountService,
		locationService:   locationService,
		kanaClient:        kanaClient,
		environment:       environment,
	}
}

// RegisterValidations adds the custom binding rules used by the form DTOs
// to gin's validator engine. Call once before serving.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("jpphone", func(fl validator.FieldLevel) bool {
			return validation.IsValidPhoneNumber(fl.Field().String())
		})
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleApplicantSubmission accepts the finished form and relays it. A
// parse failure or missing webhook config is a 500; downstream dispatch
// failures never change the status the applicant sees.
func (h *Handlers) HandleApplicantSubmission(c *gin.Context) {
	var form models.ApplicantForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Printf("Error parsing application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to parse application"})
		return
	}

	if err := h.submissionService.ProcessApplicant(c.Request.Context(), form, h.requestMeta(c)); err != nil {
		log.Printf("Error processing application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": submissionErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted successfully!"})
}

// HandleCoupangSubmission is the campaign variant of the applicant relay.
func (h *Handlers) HandleCoupangSubmission(c *gin.Context) {
	var form models.CoupangApplicantForm
	if err := c.ShouldBindJSON(&form); err != nil {
		log.Printf("Error parsing coupang application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to parse application"})
		return
	}

	if err := h.submissionService.ProcessCoupangApplicant(c.Request.Context(), form, h.requestMeta(c)); err != nil {
		log.Printf("Error processing coupang application: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": submissionErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application submitted successfully!"})
}

// HandleJobsCount resolves a postal code (or prefecture id in the
// location-selection variant) to a prefecture-level job count.
func (h *Handlers) HandleJobsCount(c *gin.Context) {
	postalCode := c.Query("postalCode")
	prefectureID := c.Query("prefectureId")

	if postalCode == "" && prefectureID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "postalCode is required"})
		return
	}

	var (
		result *models.JobCountResult
		err    error
	)
	if postalCode != "" {
		result, err = h.jobCountService.LookupByPostalCode(c.Request.Context(), postalCode)
	} else {
		id, convErr := strconv.Atoi(prefectureID)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "prefectureId must be numeric"})
			return
		}
		result, err = h.jobCountService.LookupByPrefectureID(c.Request.Context(), id)
	}

	switch {
	case errors.Is(err, services.ErrPostalCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrPrefectureNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case err != nil:
		log.Printf("Error looking up job count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to look up job count"})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// HandlePrefectures serves the prefecture list for location-selection mode.
func (h *Handlers) HandlePrefectures(c *gin.Context) {
	list, err := h.locationService.Prefectures(c.Request.Context())
	if err != nil {
		log.Printf("Error listing prefectures: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list prefectures"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleMunicipalities serves municipalities filtered by prefecture or id.
func (h *Handlers) HandleMunicipalities(c *gin.Context) {
	list, err := h.locationService.Municipalities(c.Request.Context(), c.Query("prefectureId"), c.Query("municipalityId"))
	if err != nil {
		log.Printf("Error listing municipalities: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list municipalities"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// HandleKanaConvert proxies a name fragment to the conversion API and
// returns the hiragana reading. The suggestion is advisory: a conversion
// failure is logged and reported as an empty reading, never an error.
func (h *Handlers) HandleKanaConvert(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "text is required"})
		return
	}

	converted, err := h.kanaClient.Convert(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("Error converting to kana: %v", err)
		converted = ""
	}
	c.JSON(http.StatusOK, gin.H{"converted": converted})
}

func (h *Handlers) requestMeta(c *gin.Context) models.RequestMeta {
	return models.RequestMeta{
		UserAgent:   c.Request.UserAgent(),
		ClientIP:    c.ClientIP(),
		Environment: h.environment,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func submissionErrorMessage(err error) string {
	if errors.Is(err, services.ErrWebhookNotConfigured) {
		return "Webhook configuration missing"
	}
	return "Internal server error"
}
