// Package ports checks listen addresses before a server is started on them.
package ports

import (
	"fmt"
	"net"
)

// Check reports an error when addr (e.g. ":9102") cannot be bound.
func Check(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is not available: %w", addr, err)
	}
	_ = ln.Close()
	return nil
}
