package wecom

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public WeCom API endpoint.
const DefaultBaseURL = "https://qyapi.weixin.qq.com"

type Config struct {
	BaseURL     string        `env:"WECOM_BASE_URL" envDefault:"https://qyapi.weixin.qq.com"` // BaseURL of the WeCom API.
	SuitesFile  string        `env:"WECOM_SUITES_FILE" envDefault:"wecom_suites.yaml"`        // SuitesFile lists the ISV suites this service acts for.
	HTTPTimeout time.Duration `env:"WECOM_HTTP_TIMEOUT" envDefault:"10s"`                     // HTTPTimeout bounds a single API call.
	TicketTTL   time.Duration `env:"WECOM_SUITE_TICKET_TTL" envDefault:"30m"`                 // TicketTTL is how long a pushed suite ticket is kept.
}

// SuiteConfig describes one third-party application suite.
// Callback keys (token, encoding_aes_key) may be present in the file and are ignored.
type SuiteConfig struct {
	SuiteID string `yaml:"suite_id"`
	Secret  string `yaml:"secret"`
}

// Validate checks the fields required to mint suite access tokens.
func (c SuiteConfig) Validate() error {
	if c.SuiteID == "" {
		return fmt.Errorf("%w: suite_id is required", ErrInvalidSuiteConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: secret is required for suite %s", ErrInvalidSuiteConfig, c.SuiteID)
	}
	return nil
}

type suitesFile struct {
	Suites []SuiteConfig `yaml:"suites"`
}

// ParseSuites decodes a YAML document of the form:
//
//	suites:
//	  - suite_id: ww1234567890
//	    secret: ...
func ParseSuites(data []byte) ([]SuiteConfig, error) {
	var f suitesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrLoadSuites, err)
	}

	seen := make(map[string]struct{}, len(f.Suites))
	for _, s := range f.Suites {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.SuiteID]; dup {
			return nil, fmt.Errorf("%w: duplicate suite %s", ErrInvalidSuiteConfig, s.SuiteID)
		}
		seen[s.SuiteID] = struct{}{}
	}
	return f.Suites, nil
}

// LoadSuites reads and parses the suites file at path.
func LoadSuites(path string) ([]SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadSuites, err)
	}
	return ParseSuites(data)
}
