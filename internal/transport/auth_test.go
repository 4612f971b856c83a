package transport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	(&NoAuth{}).Apply(req, "test-token")

	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	(&BearerAuth{}).Apply(req, "test-token")

	assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
}

func TestHeaderAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	(&HeaderAuth{Header: "x-api-key"}).Apply(req, "test-token")

	assert.Equal(t, "test-token", req.Header.Get("x-api-key"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestMethod(t *testing.T) {
	assert.Equal(t, "bearer", method(&BearerAuth{}))
	assert.Equal(t, "header", method(&HeaderAuth{Header: "x"}))
	assert.Equal(t, "none", method(&NoAuth{}))
}
