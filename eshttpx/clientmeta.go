package eshttpx

import (
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// ClientMetaHeader is the canonical name of the client metadata header.
const ClientMetaHeader = "x-elastic-client-meta"

type metaPair struct {
	key   string
	value string
}

// FormatClientMeta renders the client metadata header value as a
// comma-separated list of key=value tokens: the client product and its
// version, the Go runtime version, and the transport version.
func FormatClientMeta(name, version, transportVersion string) string {
	pairs := []metaPair{
		{name, NormalizeMetaVersion(version)},
		{"go", strings.TrimPrefix(runtime.Version(), "go")},
		{"t", NormalizeMetaVersion(transportVersion)},
	}

	tokens := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		tokens = append(tokens, sanitizeMetaToken(pair.key)+"="+sanitizeMetaToken(pair.value))
	}

	return strings.Join(tokens, ",")
}

// NormalizeMetaVersion collapses a semantic-version pre-release
// qualifier down to the single-letter "p" marker, so "7.11.0-snapshot"
// becomes "7.11.0-p". Non-semver inputs pass through unchanged.
func NormalizeMetaVersion(version string) string {
	v := "v" + version
	if !semver.IsValid(v) {
		return version
	}

	pre := semver.Prerelease(v)
	if pre == "" {
		return version
	}

	return strings.TrimSuffix(version, pre) + "-p"
}

// sanitizeMetaToken lower-cases and restricts a token to [a-z0-9.-].
func sanitizeMetaToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		}
		return -1
	}, s)
}
