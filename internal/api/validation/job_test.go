package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobly/internal/api/validation"
	"jobly/pkg/models"
	"jobly/pkg/utils"
)

func TestEquityPattern(t *testing.T) {
	for _, ok := range []string{"0", "0.0", "0.25", ".5", "1", "1.00"} {
		assert.True(t, validation.EquityPattern.MatchString(ok), ok)
	}
	for _, bad := range []string{"", "2", "1.5", "-0.1", "abc", "0.5x", "01"} {
		assert.False(t, validation.EquityPattern.MatchString(bad), bad)
	}
}

func TestNewJobValidation(t *testing.T) {
	v := validation.New()

	valid := models.NewJob{
		Title:         "New Job",
		Salary:        utils.Ptr(40000),
		Equity:        utils.Ptr("0"),
		CompanyHandle: "c1",
	}
	assert.NoError(t, v.Struct(valid))

	assert.NoError(t, v.Struct(models.NewJob{Title: "T", CompanyHandle: "c1"}))

	missingHandle := valid
	missingHandle.CompanyHandle = ""
	assert.Error(t, v.Struct(missingHandle))

	negativeSalary := valid
	negativeSalary.Salary = utils.Ptr(-1)
	assert.Error(t, v.Struct(negativeSalary))

	badEquity := valid
	badEquity.Equity = utils.Ptr("1.5")
	assert.Error(t, v.Struct(badEquity))
}

func TestJobUpdateValidation(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct(models.JobUpdate{Title: models.Some("NewJ1")}))
	assert.NoError(t, v.Struct(models.JobUpdate{Salary: models.Null[int](), Equity: models.Null[string]()}))
	assert.NoError(t, v.Struct(models.JobUpdate{Salary: models.Some(0), Equity: models.Some("0.3")}))

	assert.Error(t, v.Struct(models.JobUpdate{Salary: models.Some(-5)}))
	assert.Error(t, v.Struct(models.JobUpdate{Equity: models.Some("2")}))
}

func TestValidateJobUpdate(t *testing.T) {
	v := validation.New()

	assert.ErrorIs(t, validation.ValidateJobUpdate(v, models.JobUpdate{}), validation.ErrEmptyUpdate)
	assert.ErrorIs(t, validation.ValidateJobUpdate(v, models.JobUpdate{Title: models.Null[string]()}), validation.ErrTitleRequired)
	assert.ErrorIs(t, validation.ValidateJobUpdate(v, models.JobUpdate{Title: models.Some("")}), validation.ErrTitleRequired)
	assert.NoError(t, validation.ValidateJobUpdate(v, models.JobUpdate{Salary: models.Null[int]()}))
	assert.NoError(t, validation.ValidateJobUpdate(v, models.JobUpdate{Equity: models.Null[string]()}))
	assert.NoError(t, validation.ValidateJobUpdate(v, models.JobUpdate{Equity: models.Some("0.25")}))
	assert.ErrorIs(t, validation.ValidateJobUpdate(v, models.JobUpdate{Equity: models.Some("")}), validation.ErrInvalidEquity)
	assert.ErrorIs(t, validation.ValidateJobUpdate(v, models.JobUpdate{Equity: models.Some("1.5")}), validation.ErrInvalidEquity)
}
