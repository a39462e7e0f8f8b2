package escorex

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Node is one candidate server endpoint a request may be routed to.
// Nodes are immutable values produced by a NodePool.
type Node struct {
	Scheme string
	Host   string
	Port   int

	// Path is an optional prefix prepended to every request path routed
	// to this node.
	Path string
}

// URL renders the node as a base URL, without a trailing slash.
func (n Node) URL() *url.URL {
	scheme := n.Scheme
	if scheme == "" {
		scheme = "http"
	}

	host := n.Host
	if n.Port > 0 {
		host = net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
	}

	return &url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   strings.TrimSuffix(n.Path, "/"),
	}
}

func (n Node) String() string {
	return n.URL().String()
}

// NodesFromURLs parses a list of http(s) endpoint URLs into nodes.
func NodesFromURLs(urls []string) ([]Node, error) {
	if len(urls) == 0 {
		return nil, invalidArgumentError{"must pass at least one node url"}
	}

	nodes := make([]Node, 0, len(urls))
	for _, u := range urls {
		parsed, err := url.Parse(u)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse node url %q", u)
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return nil, invalidArgumentError{"node url scheme must be http or https: " + u}
		}
		if parsed.Hostname() == "" {
			return nil, invalidArgumentError{"node url must include a host: " + u}
		}

		var port int
		if portStr := parsed.Port(); portStr != "" {
			port, err = strconv.Atoi(portStr)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse node port %q", portStr)
			}
		}

		nodes = append(nodes, Node{
			Scheme: parsed.Scheme,
			Host:   parsed.Hostname(),
			Port:   port,
			Path:   parsed.Path,
		})
	}

	return nodes, nil
}
