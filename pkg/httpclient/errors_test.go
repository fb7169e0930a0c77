package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_NotFound(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusNotFound, ""), "catalog")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

func TestParseResponseError_ServerError(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusBadGateway, "upstream broken"), "catalog")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
}

func TestParseResponseError_BadRequest(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusBadRequest, "bad id"), "catalog")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad id")
}

func TestParseResponseError_OtherStatus(t *testing.T) {
	err := ParseResponseError(fakeResponse(http.StatusTeapot, "short and stout"), "catalog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "418")
	assert.Contains(t, err.Error(), "short and stout")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusNotFound))
	assert.False(t, IsClientError(http.StatusOK))
	assert.False(t, IsClientError(http.StatusInternalServerError))
}
