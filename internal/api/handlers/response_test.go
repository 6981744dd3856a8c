package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicleInput struct {
	Number string `json:"vehicleNumber" validate:"required,vehicle_number"`
	Model  string `json:"model" validate:"omitempty,max=5"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&vehicleInput{Number: "mh12ab1234"}))

	err := Validate(&vehicleInput{Number: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vehicle_number")

	err = Validate(&vehicleInput{Number: "MH12AB1234", Model: "too long model"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max=5")

	assert.Error(t, Validate(&vehicleInput{}))
}

func TestDecodeJSON(t *testing.T) {
	var v vehicleInput
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"vehicleNumber":"MH12AB1234"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "MH12AB1234", v.Number)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"занято"}`, rec.Body.String())
}
