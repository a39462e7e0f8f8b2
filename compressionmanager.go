package escorex

// CompressionManager decides whether and how a request body is
// compressed before dispatch. Compress returns the encoded body and the
// Content-Encoding to advertise; an empty encoding means the body is
// sent as-is.
type CompressionManager interface {
	Compress(body []byte) ([]byte, string, error)
}
