package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/config"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// HTTPProbe issues an HTTP request per tick and evaluates the response
// status code, with an optional retry policy (spec §4.3).
type HTTPProbe struct {
	base
	URL     string
	Method  config.HTTPMethod
	Body    string
	Headers map[string]string
	Retry   int

	client *http.Client
}

// NewHTTPProbe constructs an HTTP probe. TLS client material is read and
// validated once, at construction time, per spec §4.3.
func NewHTTPProbe(name, description string, d config.HTTPDetails, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) (*HTTPProbe, error) {
	client, err := buildHTTPClient(d)
	if err != nil {
		return nil, fmt.Errorf("monitor %s: failed to build HTTP client: %w", name, err)
	}

	return &HTTPProbe{
		base:    newBase(name, description, registry, persist, storeLevel),
		URL:     d.URL,
		Method:  d.Method,
		Body:    d.Body,
		Headers: d.Headers,
		Retry:   d.Retry,
		client:  client,
	}, nil
}

func buildHTTPClient(d config.HTTPDetails) (*http.Client, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: d.AcceptInvalidCerts}

	if !d.UseBuiltinRootCerts || d.RootCertificatePath != "" {
		pool := x509.NewCertPool()
		if d.RootCertificatePath != "" {
			pem, err := os.ReadFile(d.RootCertificatePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read root certificate: %w", err)
			}
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("failed to parse root certificate %s", d.RootCertificatePath)
			}
			tlsConfig.RootCAs = pool
		}
	}

	if d.ClientIdentityPath != "" {
		cert, err := loadClientIdentity(d.ClientIdentityPath, d.ClientIdentityPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to load client identity: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return &http.Client{
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
	}, nil
}

// loadClientIdentity loads a PEM-encoded client certificate+key bundle.
// The PKCS#12 password is accepted for configuration-shape parity with the
// spec but unused here: the Go standard library has no PKCS#12 decoder, so
// construction expects an unencrypted PEM bundle at path.
func loadClientIdentity(path, _ string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, err
	}
	return tls.X509KeyPair(data, data)
}

func (p *HTTPProbe) Check(ctx context.Context) error {
	s, err := p.attemptWithRetry(ctx)
	p.SetStatus(s)
	return err
}

func (p *HTTPProbe) attemptWithRetry(ctx context.Context) (status.Status, error) {
	currentErr := p.attempt(ctx)
	if currentErr == nil {
		return status.NewOk(), nil
	}

	lastErr := currentErr.Error()
	if p.Retry > 0 {
		for index := 1; index <= p.Retry; index++ {
			if err := p.attempt(ctx); err == nil {
				return status.NewWarn(fmt.Sprintf("Success after retries %d. Previous err: %s", index, lastErr)), nil
			} else {
				lastErr = fmt.Sprintf("Error after %d retries. Error: %s", index, err)
			}
		}
		return status.NewError(lastErr), currentErr
	}

	return status.NewError(lastErr), currentErr
}

// attempt performs exactly one request, with a 5-second timeout applied per
// attempt (spec §5, §9 open question).
func (p *HTTPProbe) attempt(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bodyReader io.Reader
	if p.Body != "" {
		bodyReader = strings.NewReader(p.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(p.Method), p.URL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("Error connecting to %s with error: %s", p.URL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, p.URL)
	}
	return nil
}
