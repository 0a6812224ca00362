package config

import (
	"encoding/json"
	"fmt"

	"github.com/last-emo-boy/monitoring-agent-daemon/internal/storelevel"
)

// DetailsType is the "type" discriminator of MonitorConfig.Details.
type DetailsType string

const (
	DetailsTCP         DetailsType = "tcp"
	DetailsHTTP        DetailsType = "http"
	DetailsCommand     DetailsType = "command"
	DetailsLoadAvg     DetailsType = "loadAvg"
	DetailsMem         DetailsType = "mem"
	DetailsSystemctl   DetailsType = "systemctl"
	DetailsProcess     DetailsType = "process"
	DetailsCertificate DetailsType = "certificate"
	DetailsDatabase    DetailsType = "database"
)

type typeTag struct {
	Type DetailsType `json:"type"`
}

// DetailsType inspects the "type" discriminator of a MonitorConfig's details
// payload without fully decoding it.
func (m MonitorConfig) DetailsType() (DetailsType, error) {
	var tag typeTag
	if err := json.Unmarshal(m.Details, &tag); err != nil {
		return "", fmt.Errorf("monitor %s: malformed details: %w", m.Name, err)
	}
	if tag.Type == "" {
		return "", fmt.Errorf("monitor %s: details missing \"type\"", m.Name)
	}
	return tag.Type, nil
}

// TCPDetails is the `details` payload for type "tcp" (spec §4.2).
type TCPDetails struct {
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// HTTPMethod enumerates the methods allowed by spec §4.3.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodHead    HTTPMethod = "HEAD"
)

// HTTPDetails is the `details` payload for type "http" (spec §4.3).
type HTTPDetails struct {
	URL                    string            `json:"url"`
	Method                 HTTPMethod        `json:"method"`
	Body                   string            `json:"body,omitempty"`
	Headers                map[string]string `json:"headers,omitempty"`
	UseBuiltinRootCerts    bool              `json:"useBuiltinRootCerts"`
	AcceptInvalidCerts     bool              `json:"acceptInvalidCerts"`
	TLSInfo                bool              `json:"tlsInfo"`
	RootCertificatePath    string            `json:"rootCertificate,omitempty"`
	ClientIdentityPath     string            `json:"identity,omitempty"`
	ClientIdentityPassword string            `json:"identityPassword,omitempty"`
	Retry                  int               `json:"retry,omitempty"`
}

// CommandDetails is the `details` payload for type "command" (spec §4.4).
type CommandDetails struct {
	Command  string   `json:"command"`
	Args     []string `json:"args,omitempty"`
	Expected *string  `json:"expected,omitempty"`
}

// LoadAvgDetails is the `details` payload for type "loadAvg" (spec §4.5).
type LoadAvgDetails struct {
	Threshold1Min      *float64                      `json:"threshold1min,omitempty"`
	Threshold5Min      *float64                      `json:"threshold5min,omitempty"`
	Threshold15Min     *float64                      `json:"threshold15min,omitempty"`
	Threshold1MinLevel storelevel.ThresholdLevel     `json:"threshold1minLevel,omitempty"`
	Threshold5MinLevel storelevel.ThresholdLevel     `json:"threshold5minLevel,omitempty"`
	Threshold15MinLevel storelevel.ThresholdLevel    `json:"threshold15minLevel,omitempty"`
	StoreValues        bool                          `json:"storeValues"`
}

// MemDetails is the `details` payload for type "mem" (spec §4.6).
type MemDetails struct {
	MaxPctMem   *float64 `json:"maxPctMem,omitempty"`
	MaxPctSwap  *float64 `json:"maxPctSwap,omitempty"`
	StoreValues bool     `json:"storeValues"`
}

// SystemctlDetails is the `details` payload for type "systemctl" (spec §4.7).
type SystemctlDetails struct {
	Active []string `json:"active"`
}

// ProcessDetails is the `details` payload for type "process" (spec §4.8).
type ProcessDetails struct {
	ApplicationNames []string `json:"applicationNames,omitempty"`
	Pids             []int    `json:"pids,omitempty"`
	RegexName        string   `json:"regex,omitempty"`
	MaxRSS           int64    `json:"maxRss,omitempty"`
	StoreValues      bool     `json:"storeValues"`
}

// CertificateDetails is the `details` payload for type "certificate" (spec §4.9).
type CertificateDetails struct {
	Paths              []string `json:"paths"`
	ThresholdDaysWarn  int      `json:"thresholdDaysWarn"`
	ThresholdDaysError int      `json:"thresholdDaysError"`
}

// DatabaseDetails is the `details` payload for type "database" (spec §4.10).
type DatabaseDetails struct {
	Database         *DatabaseConfig `json:"config,omitempty"`
	MaxQueryTimeSecs int             `json:"maxQueryTime"`
}
