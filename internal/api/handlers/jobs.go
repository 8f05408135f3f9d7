package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobly/internal/api/middleware"
	"jobly/internal/api/validation"
	"jobly/internal/logging"
	"jobly/pkg/models"
	"jobly/pkg/utils"
)

// JobStore is the persistence the job handlers need
type JobStore interface {
	Create(ctx context.Context, data models.NewJob) (*models.Job, error)
	FindAll(ctx context.Context, filter models.JobFilter) ([]models.JobListing, error)
	Get(ctx context.Context, id int) (*models.JobDetail, error)
	Update(ctx context.Context, id int, data models.JobUpdate) (*models.Job, error)
	Remove(ctx context.Context, id int) error
}

var validate = validation.New()

var searchKeys = map[string]bool{"title": true, "minSalary": true, "hasEquity": true}

// CreateJobHandler handles POST /jobs
func CreateJobHandler(store JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)

		var req models.NewJob
		if err := decodeStrict(c.Request().Body, &req); err != nil {
			return err
		}
		if err := validate.Struct(&req); err != nil {
			return validationError(err)
		}

		job, err := store.Create(c.Request().Context(), req)
		if err != nil {
			return err
		}

		logger.WithFields(map[string]interface{}{
			"job_id":  job.ID,
			"company": job.CompanyHandle,
		}).Info("Job created")

		return c.JSON(http.StatusCreated, models.JobResponse{Job: job})
	}
}

// ListJobsHandler handles GET /jobs with optional title, minSalary and
// hasEquity filters
func ListJobsHandler(store JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		query, err := parseSearchQuery(c.QueryParams())
		if err != nil {
			return err
		}
		if err := validate.Struct(&query); err != nil {
			return validationError(err)
		}

		jobs, err := store.FindAll(c.Request().Context(), query.Filter())
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, models.JobsResponse{Jobs: jobs})
	}
}

// GetJobHandler handles GET /jobs/:id
func GetJobHandler(store JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := jobID(c)
		if err != nil {
			return err
		}

		job, err := store.Get(c.Request().Context(), id)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, models.JobResponse{Job: job})
	}
}

// UpdateJobHandler handles PATCH /jobs/:id. Fields left out of the body are
// unchanged; salary and equity may be sent as null to clear them.
func UpdateJobHandler(store JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)

		id, err := jobID(c)
		if err != nil {
			return err
		}

		var req models.JobUpdate
		if err := decodeStrict(c.Request().Body, &req); err != nil {
			return err
		}

		switch err := validation.ValidateJobUpdate(validate, req); {
		case errors.Is(err, validation.ErrEmptyUpdate):
			return utils.ErrNoData
		case errors.Is(err, validation.ErrTitleRequired):
			return utils.NewValidationError(err.Error())
		case err != nil:
			return validationError(err)
		}

		job, err := store.Update(c.Request().Context(), id, req)
		if err != nil {
			return err
		}

		logger.WithField("job_id", job.ID).Info("Job updated")

		return c.JSON(http.StatusOK, models.JobResponse{Job: job})
	}
}

// DeleteJobHandler handles DELETE /jobs/:id
func DeleteJobHandler(store JobStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := requestLogger(c)

		id, err := jobID(c)
		if err != nil {
			return err
		}

		if err := store.Remove(c.Request().Context(), id); err != nil {
			return err
		}

		logger.WithField("job_id", id).Info("Job removed")

		return c.JSON(http.StatusOK, models.DeletedResponse{Deleted: c.Param("id")})
	}
}

// jobID parses the :id path parameter. Ids that are not integers cannot
// name a job, so they are reported as not found.
func jobID(c echo.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewNotFoundError(fmt.Sprintf("No job: %s", raw))
	}
	return id, nil
}

func parseSearchQuery(params map[string][]string) (models.JobSearchQuery, error) {
	var q models.JobSearchQuery

	for key := range params {
		if !searchKeys[key] {
			return q, utils.NewValidationError(fmt.Sprintf("unknown query parameter %q", key))
		}
	}

	if v, ok := params["title"]; ok {
		q.Title = utils.Ptr(v[0])
	}

	if v, ok := params["minSalary"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v[0]))
		if err != nil {
			return q, utils.NewBadRequestError("Min Salary is not a valid number")
		}
		q.MinSalary = &n
	}

	if v, ok := params["hasEquity"]; ok {
		q.HasEquity = utils.Ptr(v[0] == "true")
	}

	return q, nil
}

// decodeStrict decodes a JSON body, rejecting unknown fields and trailing data
func decodeStrict(body io.Reader, dst interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return utils.NewBadRequestError("Request body is required")
		}
		return utils.NewValidationError(err.Error())
	}
	if dec.More() {
		return utils.NewBadRequestError("Request body must contain a single JSON object")
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.NewValidationError(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return utils.NewValidationError(strings.Join(msgs, "; "))
}

func requestLogger(c echo.Context) logging.Logger {
	return logging.LogWithRequestID(middleware.GetRequestID(c))
}
