package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/premium-server/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener serves HTTPS using a certificate and key loaded from disk.
type TLSListener struct {
	certFileName string
	keyFileName  string
}

// NewTLSListener creates a TLSListener for the given PEM files.
//
// Parameters:
//   - certFileName: Path to the TLS certificate file
//   - keyFileName: Path to the private key file
func NewTLSListener(certFileName, keyFileName string) *TLSListener {
	return &TLSListener{
		certFileName: certFileName,
		keyFileName:  keyFileName,
	}
}

// Listen loads the key pair and opens a TLS listener on addr.
// HTTP/2 is offered through ALPN, TLS versions below 1.2 are refused.
func (l *TLSListener) Listen(network, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.keyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2", "http/1.1"},
	}

	ln, err := tls.Listen(network, addr, tlsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener serves plain HTTP, for deployments behind a TLS-terminating proxy.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(network, addr string) (net.Listener, error) {
	ln, err := net.Listen(network, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// NewSecurityLayer picks TLS when enabled, plain TCP otherwise.
func NewSecurityLayer(enableHTTPS bool, certFileName, keyFileName string) model.SecurityLayer {
	if enableHTTPS {
		return NewTLSListener(certFileName, keyFileName)
	}
	return NewPlainListener()
}
