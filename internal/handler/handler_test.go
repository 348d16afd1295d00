package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-ms/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	writeJSON(w, http.StatusCreated, model.APIResponse{Success: true, Message: "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, w.Body.String())
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		writeJSON(w, http.StatusOK, map[string]interface{}{"ch": make(chan int)})
	})

	// The status was committed before encoding failed.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusForKind(model.ErrStockLimitExceeded.Kind))
	assert.Equal(t, http.StatusBadRequest, statusForKind(model.ErrOrderTotalTooLarge.Kind))
	assert.Equal(t, http.StatusBadRequest, statusForKind(model.ErrPriceTooLarge.Kind))
	assert.Equal(t, http.StatusNotFound, statusForKind(model.KindNotFound))
}
