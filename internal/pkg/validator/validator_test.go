package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name     string   `json:"name" validate:"required"`
	Price    float64  `json:"price" validate:"gte=0"`
	Services []string `json:"service_ids" validate:"min=1"`
	Kind     string   `json:"kind" validate:"omitempty,oneof=percent fixed"`
}

func TestValidate_MapsTagsToKinds(t *testing.T) {
	errs := Validate(&sampleForm{Price: -1, Kind: "bogus"})
	require.Len(t, errs, 4)

	byField := map[string]Kind{}
	for _, fe := range errs {
		byField[fe.Field] = fe.Kind
	}
	assert.Equal(t, MissingRequiredField, byField["name"])
	assert.Equal(t, InvalidNumericValue, byField["price"])
	assert.Equal(t, EmptySelection, byField["service_ids"])
	assert.Equal(t, InvalidValue, byField["kind"])
}

func TestValidate_Valid(t *testing.T) {
	errs := Validate(&sampleForm{Name: "Oil change", Price: 10, Services: []string{"a"}})
	assert.Nil(t, errs)
	assert.NoError(t, errs.Err())
}

func TestErrors_AsErrorsThroughWrapping(t *testing.T) {
	var errs Errors
	errs.Add("name", MissingRequiredField, "is required")

	wrapped := fmt.Errorf("save package: %w", errs.Err())
	got, ok := AsErrors(wrapped)
	require.True(t, ok)
	assert.True(t, got.Has(MissingRequiredField))
	assert.False(t, got.Has(EmptySelection))

	_, ok = AsErrors(errors.New("boom"))
	assert.False(t, ok)
}

func TestErrors_Amount(t *testing.T) {
	var errs Errors
	errs.Amount("ok", decimal.RequireFromString("12.50"))
	errs.Amount("zero", decimal.Zero)
	assert.Empty(t, errs)

	errs.Amount("neg", decimal.RequireFromString("-1"))
	errs.Amount("cents", decimal.RequireFromString("1.005"))
	require.Len(t, errs, 2)
	assert.Equal(t, "neg", errs[0].Field)
	assert.Equal(t, InvalidNumericValue, errs[1].Kind)
}

func TestFromBindError(t *testing.T) {
	var form struct {
		Price  float64         `json:"price"`
		Amount decimal.Decimal `json:"amount"`
	}

	err := json.Unmarshal([]byte(`{"price":"abc"}`), &form)
	errs, ok := FromBindError(err)
	require.True(t, ok)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, InvalidNumericValue, errs[0].Kind)

	err = json.Unmarshal([]byte(`{"amount":"abc"}`), &form)
	errs, ok = FromBindError(err)
	require.True(t, ok)
	assert.True(t, errs.Has(InvalidNumericValue))

	_, ok = FromBindError(errors.New("unexpected EOF"))
	assert.False(t, ok)
}
