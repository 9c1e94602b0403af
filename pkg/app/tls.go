package app

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wholesale/pkg/config"
)

// serveDomain runs HTTPS on :443 for cfg.Server.Domain plus a :80 server
// that redirects everything to it.
func serveDomain(ctx context.Context, cfg *config.Config, handler http.Handler, logger *zap.Logger) error {
	domain := cfg.Server.Domain
	cert, err := selfSignedCertificate(domain, time.Now())
	if err != nil {
		return fmt.Errorf("unable to generate certificate: %w", err)
	}

	httpsServer := &http.Server{
		Addr:         ":443",
		Handler:      handler,
		TLSConfig:    &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12},
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	redirect := &http.Server{
		Addr: ":80",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "https://"+domain+r.URL.RequestURI(), http.StatusPermanentRedirect)
		}),
	}

	go func() {
		logger.Info("HTTP redirect server listening", zap.String("addr", redirect.Addr))
		if err := redirect.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("redirect server stopped", zap.Error(err))
		}
	}()
	go shutdownOnDone(ctx, cfg.Server.ShutdownTimeout, logger, redirect, httpsServer)

	logger.Info("HTTPS server starting with an ephemeral certificate", zap.String("domain", domain))
	// Certificates come from TLSConfig, so no files are passed.
	if err := httpsServer.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("TLS server stopped unexpectedly: %w", err)
	}
	return nil
}

// selfSignedCertificate issues a 90-day P-256 certificate for domain.
func selfSignedCertificate(domain string, now time.Time) (tls.Certificate, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return tls.Certificate{}, err
	}
	template := x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: domain},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(90 * 24 * time.Hour),
		DNSNames:     []string{domain},
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return tls.Certificate{}, err
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key, Leaf: leaf}, nil
}
