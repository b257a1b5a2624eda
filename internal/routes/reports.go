package routes

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/dublin-fuel/prices-api/internal"
	"github.com/dublin-fuel/prices-api/internal/models"
)

const maxPhotoBytes = 8 << 20 // 8 MiB

// SubmitReport accepts a price report, as JSON or as a multipart form with
// an optional photo. After a successful write it invokes refresh, the
// explicit re-query step that keeps derived views in line with the new
// report.
func SubmitReport(svc *internal.ReportService, refresh func()) func(c *gin.Context) {
	return func(c *gin.Context) {
		input, err := bindReportInput(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report, err := svc.Submit(input)
		if err != nil {
			status, message := submissionStatus(err)
			c.JSON(status, gin.H{"error": message})
			return
		}

		if refresh != nil {
			refresh()
		}

		c.JSON(http.StatusCreated, models.SubmitResponse{
			Report:  report,
			Unusual: internal.UnusualFor(report.FuelPrices, &report),
		})
	}
}

// LatestReports serves the newest report per station.
func LatestReports(svc *internal.ReportService) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.LatestByStation())
	}
}

func bindReportInput(c *gin.Context) (models.ReportInput, error) {
	contentType := c.ContentType()
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var input models.ReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return models.ReportInput{}, errors.Wrap(err, "invalid request body")
		}
		return input, nil
	}

	input := models.ReportInput{
		StationID:     c.PostForm("station_id"),
		Petrol:        c.PostForm("petrol"),
		Diesel:        c.PostForm("diesel"),
		PremiumPetrol: c.PostForm("premium_petrol"),
		PremiumDiesel: c.PostForm("premium_diesel"),
	}

	file, header, err := c.Request.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil
	}
	if err != nil {
		return models.ReportInput{}, errors.Wrap(err, "invalid photo upload")
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("failed to close upload: %v", err)
		}
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return models.ReportInput{}, errors.Wrap(err, "failed to read photo")
	}
	if len(data) > maxPhotoBytes {
		return models.ReportInput{}, errors.New("photo exceeds the 8 MiB limit")
	}

	input.Photo = &models.PhotoPayload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	return input, nil
}

// submissionStatus maps the error taxonomy onto response codes; submission
// failures are always surfaced with actionable text.
func submissionStatus(err error) (int, string) {
	var validationErr *internal.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var storageErr *internal.StorageError
	if errors.As(err, &storageErr) {
		return http.StatusBadGateway, storageErr.Error()
	}

	var localErr *internal.LocalPersistenceError
	if errors.As(err, &localErr) {
		return http.StatusInternalServerError, localErr.Error()
	}

	log.Printf("unexpected submission error: %v", err)
	return http.StatusInternalServerError, "an internal server error occurred"
}
