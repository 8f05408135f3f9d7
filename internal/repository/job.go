// Package repository is the only code that reads and writes persisted rows.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"jobly/internal/database"
	"jobly/internal/sqlutil"
	"jobly/pkg/models"
	"jobly/pkg/utils"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// equity is NUMERIC in storage and read back as text so its scale survives
const jobColumns = `id, title, salary, equity::TEXT AS equity, company_handle`

// JobRepository persists jobs
type JobRepository struct {
	db DBTX
}

// NewJobRepository creates a repository on top of db
func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a job and returns it with its assigned id. The company is
// not checked up front; a dangling handle fails on the foreign key.
func (r *JobRepository) Create(ctx context.Context, data models.NewJob) (*models.Job, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+jobColumns,
		data.Title, data.Salary, data.Equity, data.CompanyHandle,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, storageError(err)
	}
	return job, nil
}

// FindAll returns jobs with their company name, ordered by title
func (r *JobRepository) FindAll(ctx context.Context, filter models.JobFilter) ([]models.JobListing, error) {
	query, args := buildFindAllQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	jobs := []models.JobListing{}
	for rows.Next() {
		var j models.JobListing
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &j.CompanyName); err != nil {
			return nil, storageError(err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return jobs, nil
}

// buildFindAllQuery assembles the search statement. Every active filter adds
// one parameterized predicate; hasEquity only filters when it is true.
func buildFindAllQuery(filter models.JobFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		conditions = append(conditions, "j.salary >= "+sqlutil.Placeholder(len(args)))
	}

	if filter.HasEquity != nil && *filter.HasEquity {
		conditions = append(conditions, "j.equity > 0")
	}

	if filter.Title != nil {
		args = append(args, "%"+*filter.Title+"%")
		conditions = append(conditions, "j.title ILIKE "+sqlutil.Placeholder(len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT j.id, j.title, j.salary, j.equity::TEXT AS equity, j.company_handle, c.name
		FROM jobs AS j
		JOIN companies AS c ON c.handle = j.company_handle`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY j.title, j.id")

	return sb.String(), args
}

// Get returns a job with its company expanded. The job and the company are
// read with two separate statements; a company deleted in between leaves
// Company nil.
func (r *JobRepository) Get(ctx context.Context, id int) (*models.JobDetail, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, jobNotFound(id)
	}
	if err != nil {
		return nil, storageError(err)
	}

	detail := &models.JobDetail{
		ID:     job.ID,
		Title:  job.Title,
		Salary: job.Salary,
		Equity: job.Equity,
	}

	var c models.Company
	err = r.db.QueryRow(ctx,
		`SELECT handle, name, description, num_employees, logo_url
		 FROM companies
		 WHERE handle = $1`,
		job.CompanyHandle,
	).Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return nil, storageError(err)
	default:
		detail.Company = &c
	}

	return detail, nil
}

// Update writes the fields set in data. Fields sent as null are stored as
// NULL; fields left out are not touched. The company handle cannot change.
func (r *JobRepository) Update(ctx context.Context, id int, data models.JobUpdate) (*models.Job, error) {
	setCols, values, err := sqlutil.PartialUpdate(updateFields(data), nil)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`UPDATE jobs
		SET %s
		WHERE id = %s
		RETURNING %s`, setCols, sqlutil.Placeholder(len(values)+1), jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, append(values, id)...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, jobNotFound(id)
	}
	if err != nil {
		return nil, storageError(err)
	}
	return job, nil
}

func updateFields(data models.JobUpdate) []sqlutil.Field {
	var fields []sqlutil.Field
	if data.Title.Set {
		fields = append(fields, sqlutil.Field{Name: "title", Value: data.Title.SQLValue()})
	}
	if data.Salary.Set {
		fields = append(fields, sqlutil.Field{Name: "salary", Value: data.Salary.SQLValue()})
	}
	if data.Equity.Set {
		fields = append(fields, sqlutil.Field{Name: "equity", Value: data.Equity.SQLValue()})
	}
	return fields
}

// Remove deletes exactly one job
func (r *JobRepository) Remove(ctx context.Context, id int) error {
	var deleted int
	err := r.db.QueryRow(ctx, `DELETE FROM jobs WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return jobNotFound(id)
	}
	if err != nil {
		return storageError(err)
	}
	return nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	return &j, nil
}

func jobNotFound(id int) error {
	return utils.NewNotFoundError(fmt.Sprintf("No job: %d", id))
}

// storageError classifies a database failure. Jobs only reference
// companies, so a foreign key violation always means an unknown handle.
func storageError(err error) error {
	se := utils.NewStorageError(err, database.IsConstraintViolation(err))
	if database.IsForeignKeyViolation(err) {
		se.Message = "Company does not exist"
	}
	return se
}
