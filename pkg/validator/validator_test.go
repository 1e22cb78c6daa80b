package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type rangeQuery struct {
	Days   int    `schema:"days" validate:"min=1,max=365"`
	Format string `schema:"format" validate:"oneof=xlsx pdf"`
}

func TestValidateStructured(t *testing.T) {
	v := New()

	assert.Nil(t, v.ValidateStructured(loginRequest{Email: "admin@uniqverse.com", Password: "secret"}))

	errs := v.ValidateStructured(loginRequest{Email: "not-an-email"})
	assert.Equal(t, "Invalid email address", errs["email"])
	assert.Equal(t, "This field is required", errs["password"])

	errs = v.ValidateStructured(rangeQuery{Days: 400, Format: "csv"})
	assert.Equal(t, "Must be at most 365", errs["days"])
	assert.Equal(t, "Must be one of: xlsx pdf", errs["format"])
}

func TestValidate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(rangeQuery{Days: 30, Format: "pdf"}))

	err := v.Validate(rangeQuery{Days: 0, Format: "pdf"})
	assert.ErrorContains(t, err, "days: Must be at least 1")
}
