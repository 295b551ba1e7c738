package model

import (
	"context"
	"net"
)

// Server is a network server with a managed lifecycle.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}

// SecurityLayer opens the listener a Server accepts connections on.
type SecurityLayer interface {
	Listen(network, addr string) (net.Listener, error)
}
