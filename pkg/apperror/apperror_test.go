package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedSentinelsMatch(t *testing.T) {
	err := fmt.Errorf("variant v1 has 3, requested 5: %w", ErrInsufficientStock)

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, "INSUFFICIENT_STOCK", CodeOf(err))
}

func TestConstructorsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFoundf("order %s not found", "o1"), ErrNotFound)
	assert.Equal(t, "VALIDATION", CodeOf(Validation("bad %s", "input")))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("x"), http.StatusBadRequest},
		{ErrTotalMismatch, http.StatusBadRequest},
		{ErrInvalidTransition, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrConflict, http.StatusConflict},
		{ErrInsufficientStock, http.StatusUnprocessableEntity},
		{ErrOrderCreationFailed, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrNotFound), http.StatusNotFound},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), "%v", c.err)
	}
}
