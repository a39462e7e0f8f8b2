package eshttpx

import (
	"net/http"

	"github.com/google/go-querystring/query"
)

// RequestParams are the query parameters understood by every endpoint.
type RequestParams struct {
	Pretty     bool     `url:"pretty,omitempty"`
	Human      bool     `url:"human,omitempty"`
	ErrorTrace bool     `url:"error_trace,omitempty"`
	FilterPath []string `url:"filter_path,omitempty,comma"`
	Timeout    string   `url:"timeout,omitempty"`
}

// ApplyParams encodes params onto the request URL, overriding any
// query parameter of the same name while leaving the rest intact.
func ApplyParams(req *http.Request, params RequestParams) error {
	vals, err := query.Values(params)
	if err != nil {
		return err
	}

	merged := req.URL.Query()
	for name, values := range vals {
		merged[name] = values
	}
	req.URL.RawQuery = merged.Encode()

	return nil
}
