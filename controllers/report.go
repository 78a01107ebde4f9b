package controllers

import (
	"context"
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"bughub/gcs"
	middlewares "bughub/middleware"
	"bughub/models"
	"bughub/services"
	"bughub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportController handles the report lifecycle: submission from the
// widget, scoped listing, triage updates, and deletion.
type ReportController struct {
	reports *mongo.Collection
	storage *gcs.Storage
	mailer  *utils.Mailer
}

func NewReportController(reports *mongo.Collection, storage *gcs.Storage, mailer *utils.Mailer) *ReportController {
	return &ReportController{reports: reports, storage: storage, mailer: mailer}
}

// CreateReport accepts a multipart submission with an optional screenshot
// or video (never both). Attachment upload and the notification email are
// best-effort: their failure never fails the report itself.
func (r *ReportController) CreateReport(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	severity := c.PostForm("severity")

	var metadata models.Metadata
	if raw := c.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid metadata"})
			return
		}
	}

	if title == "" || description == "" || metadata.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields."})
		return
	}

	if severity == "" {
		severity = models.SeverityMedium
	}
	if !models.ValidSeverity(severity) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid severity"})
		return
	}

	screenshot, screenshotHeader, screenshotErr := c.Request.FormFile("screenshot")
	video, videoHeader, videoErr := c.Request.FormFile("video")
	if screenshotErr == nil {
		defer screenshot.Close()
	}
	if videoErr == nil {
		defer video.Close()
	}
	if screenshotErr == nil && videoErr == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Attach either a screenshot or a video, not both."})
		return
	}

	var file multipart.File
	var contentType, folder string
	switch {
	case screenshotErr == nil:
		contentType = screenshotHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Uploaded file is not a valid image."})
			return
		}
		file, folder = screenshot, "screenshots"
	case videoErr == nil:
		contentType = videoHeader.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "video/") {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Uploaded file is not a valid video."})
			return
		}
		file, folder = video, "videos"
	}

	var imageURL, videoURL string
	if file != nil {
		url, err := r.storage.Upload(c.Request.Context(), file, contentType, folder)
		if err != nil {
			// Attachment loss is non-fatal; the report still goes in.
			log.Printf("Attachment upload failed: %v", err)
		} else if folder == "screenshots" {
			imageURL = url
		} else {
			videoURL = url
		}
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	report := models.Report{
		Title:       title,
		ProjectName: c.PostForm("projectName"),
		Description: description,
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		ImageURL:    imageURL,
		VideoURL:    videoURL,
		Severity:    severity,
		Status:      models.StatusOpen,
		Metadata:    metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := r.reports.InsertOne(ctx, report)
	if err != nil {
		log.Printf("Error in CreateReport: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = id
	}

	// Best-effort notification; never blocks or fails the response.
	go func(rep models.Report) {
		if err := r.mailer.SendReportEmail(rep); err != nil {
			log.Printf("Failed to send report notification: %v", err)
		}
	}(report)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": report})
}

// GetReports lists the reports within the caller's project scope.
func (r *ReportController) GetReports(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: No user found"})
		return
	}

	reports, err := services.ListReports(c.Request.Context(), r.reports, user)
	if err != nil {
		log.Printf("Error in fetching reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

// GetProjectNames lists "all" followed by the distinct project names seen
// across reports.
func (r *ReportController) GetProjectNames(c *gin.Context) {
	names, err := services.DistinctProjectNames(c.Request.Context(), r.reports)
	if err != nil {
		log.Printf("Error in fetching project names: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.ProjectNameList(names)})
}

// UpdateReport applies a partial update to a report.
func (r *ReportController) UpdateReport(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid ID"})
		return
	}

	type UpdateInput struct {
		Title       *string          `json:"title"`
		ProjectName *string          `json:"projectName"`
		Description *string          `json:"description"`
		Name        *string          `json:"name"`
		Email       *string          `json:"email"`
		Severity    *string          `json:"severity"`
		Status      *string          `json:"status"`
		Metadata    *models.Metadata `json:"metadata"`
	}

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
		return
	}

	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.ProjectName != nil {
		set["projectName"] = *input.ProjectName
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Severity != nil {
		if !models.ValidSeverity(*input.Severity) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid severity"})
			return
		}
		set["severity"] = *input.Severity
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}
		set["status"] = *input.Status
	}
	if input.Metadata != nil {
		set["metadata"] = *input.Metadata
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}
	set["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Report
	err = r.reports.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}
	if err != nil {
		log.Printf("Error updating report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DeleteReport removes a report, then best-effort deletes its stored
// attachment. The record goes first: a storage failure afterwards leaves
// an orphaned object, which is logged and accepted.
func (r *ReportController) DeleteReport(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid report ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var report models.Report
	err = r.reports.FindOne(ctx, bson.M{"_id": objID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Report not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	var objects []string
	for _, url := range []string{report.ImageURL, report.VideoURL} {
		if name := r.storage.ObjectName(url); name != "" {
			objects = append(objects, name)
		}
	}

	if _, err := r.reports.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		log.Printf("Error deleting report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	for _, name := range objects {
		if err := r.storage.Delete(ctx, name); err != nil {
			log.Printf("Failed to delete attachment %s: %v", name, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report and attachment deleted"})
}
