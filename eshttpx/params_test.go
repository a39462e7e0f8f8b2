package eshttpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyParams(t *testing.T) {
	req, err := http.NewRequest("GET", "http://localhost:9200/_search?q=user:kimchy", nil)
	require.NoError(t, err)

	err = ApplyParams(req, RequestParams{
		Pretty:     true,
		FilterPath: []string{"took", "hits.total"},
		Timeout:    "30s",
	})
	require.NoError(t, err)

	query := req.URL.Query()
	require.Equal(t, "user:kimchy", query.Get("q"))
	require.Equal(t, "true", query.Get("pretty"))
	require.Equal(t, "took,hits.total", query.Get("filter_path"))
	require.Equal(t, "30s", query.Get("timeout"))
	require.Empty(t, query.Get("human"))
}

func TestApplyParamsOverridesSameName(t *testing.T) {
	req, err := http.NewRequest("GET", "http://localhost:9200/_search?timeout=1s", nil)
	require.NoError(t, err)

	err = ApplyParams(req, RequestParams{Timeout: "30s"})
	require.NoError(t, err)

	require.Equal(t, []string{"30s"}, req.URL.Query()["timeout"])
}
