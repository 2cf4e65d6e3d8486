package server

import (
	"crypto/tls"
	"fmt"

	"github.com/muurk/touchgui/internal/logging"
	"go.uber.org/zap"
)

// NewTLSConfig loads a certificate and key for serving the panel over
// HTTPS. Browsers need a secure origin for some touch APIs when the panel
// is reached by name rather than localhost.
func NewTLSConfig(certPath, keyPath string) (*tls.Config, error) {
	if certPath == "" || keyPath == "" {
		return nil, fmt.Errorf("both certificate and key are required")
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	logging.Info("TLS configuration created from files",
		zap.String("cert", certPath),
		zap.String("key", keyPath),
	)

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
