package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `validate:"required"`
	Start string `validate:"required,clock"`
	Qty   int    `validate:"gte=1"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "Yoga", Start: "07:30", Qty: 1}))

	errs := Validate(sample{Start: "25:00"})
	assert.Equal(t, "required", errs["Name"])
	assert.Equal(t, "clock", errs["Start"])
	assert.Equal(t, "gte", errs["Qty"])
}

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock("00:00"))
	assert.True(t, IsClock("23:59"))
	assert.False(t, IsClock("7:30"))
	assert.False(t, IsClock("24:00"))
}

func TestDetails(t *testing.T) {
	err := validate.Struct(sample{Start: "07:30", Qty: 1})
	assert.Equal(t, map[string]string{"Name": "required"}, Details(err))

	assert.Equal(t, "EOF", Details(errors.New("EOF")))
}
