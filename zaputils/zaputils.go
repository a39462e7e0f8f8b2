package zaputils

import (
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"
)

func DispatchID(key string, val string) zap.Field {
	return zap.String(key, val)
}

func Method(key string, val string) zap.Field {
	return zap.String(key, val)
}

func URI(key string, val fmt.Stringer) zap.Field {
	return zap.Stringer(key, val)
}

func Attempt(key string, val int) zap.Field {
	return zap.Int(key, val)
}

func StatusCode(key string, val int) zap.Field {
	return zap.Int(key, val)
}

type LoggableNodeAddr struct {
	Scheme string
	Host   string
	Port   int
}

func (e LoggableNodeAddr) String() string {
	if e.Port == 0 {
		return fmt.Sprintf("%s://%s", e.Scheme, e.Host)
	}

	return fmt.Sprintf("%s://%s", e.Scheme, net.JoinHostPort(e.Host, strconv.Itoa(e.Port)))
}

func NodeAddr(key string, scheme, host string, port int) zap.Field {
	return zap.Stringer(key, LoggableNodeAddr{
		Scheme: scheme,
		Host:   host,
		Port:   port,
	})
}
