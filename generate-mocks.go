//go:generate moq -out mock_nodepool_test.go . NodePool
//go:generate moq -out mock_httpclient_test.go . HTTPClient
//go:generate moq -out mock_asynchttpclient_test.go . AsyncHTTPClient

package escorex
