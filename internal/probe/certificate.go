package probe

import (
	"context"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/persistence"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/status"
	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// CertificateProbe checks a set of PEM certificate files for imminent
// expiry (spec §4.9). The x509/PEM parsing idiom is grounded on the
// teacher's pkg/acme/client.go, which loads and parses certificates the
// same way; no ACME issuance machinery is involved here.
type CertificateProbe struct {
	base
	Paths              []string
	ThresholdDaysWarn  int
	ThresholdDaysError int
}

func NewCertificateProbe(name, description string, paths []string, warnDays, errorDays int, registry *status.Registry, persist persistence.Gateway, storeLevel storelevel.DatabaseStoreLevel) *CertificateProbe {
	return &CertificateProbe{
		base:               newBase(name, description, registry, persist, storeLevel),
		Paths:              paths,
		ThresholdDaysWarn:  warnDays,
		ThresholdDaysError: errorDays,
	}
}

func (p *CertificateProbe) Check(ctx context.Context) error {
	now := time.Now()
	errorBy := now.Add(time.Duration(p.ThresholdDaysError) * 24 * time.Hour)
	warnBy := now.Add(time.Duration(p.ThresholdDaysWarn) * 24 * time.Hour)

	var errLines, warnLines []string
	for _, path := range p.Paths {
		notAfter, err := readCertNotAfter(path)
		if err != nil {
			errLines = append(errLines, fmt.Sprintf("%s: %s", path, err))
			continue
		}
		switch {
		case !notAfter.After(errorBy):
			errLines = append(errLines, fmt.Sprintf("%s expires at %s", path, notAfter))
		case !notAfter.After(warnBy):
			warnLines = append(warnLines, fmt.Sprintf("%s expires at %s", path, notAfter))
		}
	}

	switch {
	case len(errLines) > 0:
		p.SetStatus(status.NewError(strings.Join(append(errLines, warnLines...), "; ")))
	case len(warnLines) > 0:
		p.SetStatus(status.NewWarn(strings.Join(warnLines, "; ")))
	default:
		p.SetStatus(status.NewOk())
	}
	return nil
}

func readCertNotAfter(path string) (time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read certificate: %w", err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return time.Time{}, fmt.Errorf("failed to decode PEM certificate")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return cert.NotAfter, nil
}
