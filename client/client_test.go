package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader("Authorization=Basic dXNlcjpwYXNz")
	require.Nil(t, err)
	assert.Equal(t, Header{Key: "Authorization", Value: "Basic dXNlcjpwYXNz"}, h)

	h, err = ParseHeader("X-Empty=")
	require.Nil(t, err)
	assert.Equal(t, "", h.Value)

	_, err = ParseHeader("novalue")
	assert.NotNil(t, err)
	_, err = ParseHeader("=value")
	assert.NotNil(t, err)
}

func TestRoundTripperAddsHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := &http.Client{Transport: &RoundTripper{Headers: []Header{{"X-Token", "secret"}, {"X-Tenant", "t1"}}}}
	resp, err := c.Get(srv.URL)
	require.Nil(t, err)
	resp.Body.Close()
	assert.Equal(t, "secret", got.Get("X-Token"))
	assert.Equal(t, "t1", got.Get("X-Tenant"))
}

func TestUnknownTransport(t *testing.T) {
	_, err := NewHBaseClient(Options{Addr: "localhost:9090", Transport: "carrier-pigeon"})
	assert.NotNil(t, err)
}

func TestUnreachableSocket(t *testing.T) {
	for _, tr := range []Transport{TransportSocket, TransportFramed} {
		_, err := NewHBaseClient(Options{Addr: "127.0.0.1:1", Transport: tr})
		assert.NotNil(t, err, "%s", tr)
	}
}
