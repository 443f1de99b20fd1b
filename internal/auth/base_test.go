package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/revauth/internal/transport"
)

func TestParseJSON(t *testing.T) {
	m, ok := parseJSON([]byte(`{"id":"1","n":2}`))
	require.True(t, ok)
	assert.Equal(t, "1", m["id"])

	_, ok = parseJSON([]byte(`<html>nope</html>`))
	assert.False(t, ok)

	_, ok = parseJSON(nil)
	assert.False(t, ok)
}

func TestValidateResponse(t *testing.T) {
	p := validateResponse(nil, &transport.Error{Code: -1004, Message: "refused"})
	require.NotNil(t, p)
	assert.Equal(t, ProblemNetworkFailure, p.Kind)
	assert.Equal(t, -1004, p.Code)

	p = validateResponse(nil, nil)
	require.NotNil(t, p)
	assert.Equal(t, ProblemProviderFailure, p.Kind)

	p = validateResponse(&transport.Response{StatusCode: 502, Body: []byte("bad gateway")}, nil)
	require.NotNil(t, p)
	assert.Equal(t, ProblemProviderFailure, p.Kind)
	assert.Contains(t, p.Message, "502")
	assert.Contains(t, p.Message, "bad gateway")

	assert.Nil(t, validateResponse(&transport.Response{StatusCode: 200, Body: []byte("ok")}, nil))
}
