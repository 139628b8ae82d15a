package apierr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/agency-admin-api/internal/apierr"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *apierr.Error
		status int
	}{
		{apierr.NotFound("x"), http.StatusNotFound},
		{apierr.BadRequest("x"), http.StatusBadRequest},
		{apierr.Unauthorized("x"), http.StatusUnauthorized},
		{apierr.Conflict("x"), http.StatusConflict},
		{apierr.Upstream("x", nil), http.StatusBadGateway},
		{apierr.Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.status {
			t.Errorf("%s: expected %d, got %d", tc.err.Code, tc.status, got)
		}
	}
}

func TestFrom(t *testing.T) {
	plain := errors.New("db exploded")
	e := apierr.From(plain)
	if e.Code != apierr.CodeInternal {
		t.Errorf("Plain errors map to internal, got %s", e.Code)
	}
	if !errors.Is(e, plain) {
		t.Error("Cause should be preserved")
	}

	nf := apierr.NotFound("gone")
	if got := apierr.From(fmt.Errorf("wrap: %w", nf)); got.Code != apierr.CodeNotFound {
		t.Errorf("Wrapped errors keep their code, got %s", got.Code)
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", apierr.Conflict("dup"))
	if !apierr.IsCode(err, apierr.CodeConflict) {
		t.Error("Expected conflict code through wrapping")
	}
	if apierr.IsCode(err, apierr.CodeNotFound) {
		t.Error("Wrong code matched")
	}
	if apierr.IsCode(errors.New("x"), apierr.CodeInternal) {
		t.Error("Plain error should not match any code")
	}
}
