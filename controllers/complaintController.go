package controllers

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"nagarseva-be/apperrors"
	"nagarseva-be/services"
	"nagarseva-be/utils"

	"github.com/gin-gonic/gin"
)

// ComplaintController exposes the complaint intake and dashboard endpoints.
type ComplaintController struct {
	intake     *services.IntakeService
	complaints *services.ComplaintService
}

// NewComplaintController wires the complaint handlers.
func NewComplaintController(intake *services.IntakeService, complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{intake: intake, complaints: complaints}
}

// respondError maps an application error to its HTTP response. Anything that
// is not an AppError is reported as a generic 500.
func respondError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	log.Println("Unexpected error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}

// readFormPhoto pulls an optional image attachment out of the multipart form.
func readFormPhoto(c *gin.Context, field string) (*utils.UploadedPhoto, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil // no attachment
	}
	if fileHeader.Size > utils.MaxPhotoSize {
		return nil, apperrors.NewUnsupportedMediaError("photo exceeds the 10MB size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read uploaded photo")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read uploaded photo")
	}

	return &utils.UploadedPhoto{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Create handles a citizen complaint submission.
func (ctrl *ComplaintController) Create(c *gin.Context) {
	description, hasDescription := c.GetPostForm("description")
	if !hasDescription {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	photo, err := readFormPhoto(c, "photo")
	if err != nil {
		respondError(c, err)
		return
	}

	input := services.SubmitInput{
		IssueType:   c.PostForm("issueType"),
		Description: description,
		Latitude:    c.PostForm("latitude"),
		Longitude:   c.PostForm("longitude"),
		Address:     c.PostForm("address"),
		Name:        c.PostForm("name"),
		Phone:       c.PostForm("phone"),
		Email:       c.PostForm("email"),
		Photo:       photo,
	}

	complaint, err := ctrl.intake.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"complaintId": complaint.ComplaintID,
		"status":      complaint.Status,
		"createdAt":   complaint.CreatedAt,
	})
}

// List handles the dashboard listing with filters and pagination.
func (ctrl *ComplaintController) List(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	result, err := ctrl.complaints.List(c.Request.Context(), services.ListQuery{
		Status:    c.Query("status"),
		IssueType: c.Query("issueType"),
		Date:      c.Query("date"),
		Limit:     limit,
		Skip:      skip,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get retrieves one complaint by its tracking ID.
func (ctrl *ComplaintController) Get(c *gin.Context) {
	complaint, err := ctrl.complaints.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Update applies a sparse officer patch. Accepts JSON, or multipart form
// when a resolution photo is attached.
func (ctrl *ComplaintController) Update(c *gin.Context) {
	var input services.UpdateInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		formField := func(name string) *string {
			if value, ok := c.GetPostForm(name); ok {
				return &value
			}
			return nil
		}
		input.Status = formField("status")
		input.Priority = formField("priority")
		input.AssignedTo = formField("assignedTo")
		input.ResolutionNotes = formField("resolutionNotes")

		photo, err := readFormPhoto(c, "resolutionPhoto")
		if err != nil {
			respondError(c, err)
			return
		}
		input.ResolutionPhoto = photo
	} else {
		var body struct {
			Status          *string `json:"status"`
			Priority        *string `json:"priority"`
			AssignedTo      *string `json:"assignedTo"`
			ResolutionNotes *string `json:"resolutionNotes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.Status = body.Status
		input.Priority = body.Priority
		input.AssignedTo = body.AssignedTo
		input.ResolutionNotes = body.ResolutionNotes
	}

	updated, err := ctrl.complaints.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete permanently removes a complaint.
func (ctrl *ComplaintController) Delete(c *gin.Context) {
	if err := ctrl.complaints.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
}

// Stats returns aggregate counts for the dashboard.
func (ctrl *ComplaintController) Stats(c *gin.Context) {
	stats, err := ctrl.complaints.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
