package httplib

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"tag_name":"v1.0.0"}`))
	}))
	defer srv.Close()

	var v struct {
		TagName string `json:"tag_name"`
	}
	require.NoError(t, GetJSON(context.Background(), srv.URL, "", &v))
	assert.Equal(t, "v1.0.0", v.TagName)
}

func TestGetJSONErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/limited" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var v map[string]interface{}
	assert.ErrorContains(t, GetJSON(context.Background(), srv.URL+"/limited", "token", &v), "unexpected status code: 403")
	assert.Error(t, GetJSON(context.Background(), srv.URL+"/garbage", "", &v))
}
