package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryNew(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")

	err := reg.New(code)
	require.Equal(t, "TEST:NOT_FOUND", err.Code)
	require.Equal(t, TypeNotFound, err.Type)
	require.Equal(t, http.StatusNotFound, err.HTTPStatus)
	require.True(t, err.IsType(TypeNotFound))
	require.False(t, err.IsType(TypeConflict))
}

func TestWithDetail(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("CONFLICT", TypeConflict, http.StatusConflict, "conflict")

	err := reg.New(code).WithDetail("id", "x1").WithDetail("version", 3)
	require.Equal(t, "x1", err.Details["id"])
	require.Equal(t, 3, err.Details["version"])

	resp := err.ToHTTPResponse()
	require.Equal(t, "TEST:CONFLICT", resp["code"])
	require.NotNil(t, resp["details"])
}

func TestWrap_PassesThroughStructuredErrors(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "thing not found")
	original := reg.New(code)

	wrapped := Wrap(original, "outer context", TypeInternal)
	require.Same(t, original, wrapped)
	require.Equal(t, http.StatusNotFound, wrapped.HTTPStatus)
}

func TestWrap_ConvertsPlainErrors(t *testing.T) {
	plain := errors.New("disk full")

	wrapped := Wrap(plain, "saving failed", TypeInternal)
	require.Equal(t, "GENERIC:INTERNAL", wrapped.Code)
	require.Equal(t, http.StatusInternalServerError, wrapped.HTTPStatus)
	require.ErrorIs(t, wrapped, plain)
}

func TestWrap_Nil(t *testing.T) {
	require.Nil(t, Wrap(nil, "nothing", TypeInternal))
}

func TestAs(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BUSY", TypeConflict, http.StatusConflict, "busy")
	inner := reg.New(code)
	chained := fmt.Errorf("outer: %w", inner)

	var target *Error
	require.True(t, As(chained, &target))
	require.Equal(t, "TEST:BUSY", target.Code)

	require.False(t, As(errors.New("plain"), &target))
}

func TestIsCode(t *testing.T) {
	reg := NewRegistry("TEST")
	code := reg.Register("BUSY", TypeConflict, http.StatusConflict, "busy")

	err := reg.New(code)
	require.True(t, IsCode(err, "TEST:BUSY"))
	require.False(t, IsCode(err, "TEST:OTHER"))
	require.False(t, IsCode(errors.New("plain"), "TEST:BUSY"))

	chained := fmt.Errorf("outer: %w", err)
	require.True(t, IsCode(chained, "TEST:BUSY"))
}
