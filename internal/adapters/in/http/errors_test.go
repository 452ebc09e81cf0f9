package http

import (
	"errors"
	"net/http"
	"testing"

	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", errs.NewValueIsRequiredError("location"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("weight", 0, 0.001, 1000), http.StatusBadRequest},
		{"unauthorized", errs.NewUnauthorizedError("confirm delivery", 0), http.StatusForbidden},
		{
			"unauthorized wins over validation",
			errors.Join(errs.NewUnauthorizedError("record status update", 0), errs.NewValueIsRequiredError("location")),
			http.StatusForbidden,
		},
		{"not found", errs.NewObjectNotFoundError("parcel", "T0001"), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidTransitionError("Delivered", "In Transit"), http.StatusConflict},
		{"exhausted", errs.NewExhaustedError("create parcel", 5, nil), http.StatusServiceUnavailable},
		{"store unavailable", errs.NewStoreUnavailableError("find parcel", nil), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errorStatus(tc.err))
		})
	}
}
