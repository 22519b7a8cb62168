// Package config loads and validates YAML scenario files for the simulator.
// A scenario describes the network to generate, the model variant with its
// parameters, the run settings, and the output sinks.
//
// Validation here covers the scenario file shape only. The simulation core
// deliberately does not range-check numeric parameters; a probability
// outside [0,1] written into the parameters map propagates as-is.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NetworkConfig describes the network to generate for a scenario.
type NetworkConfig struct {
	Generator string `yaml:"generator" validate:"required,oneof=ring complete erdos-renyi watts-strogatz barabasi-albert"`
	Nodes     int    `yaml:"nodes" validate:"min=0"`
	// Generator-specific knobs; unused ones are ignored.
	EdgeProb   float64 `yaml:"edge_prob"`  // erdos-renyi
	Neighbors  int     `yaml:"neighbors"`  // watts-strogatz ring degree
	Rewire     float64 `yaml:"rewire"`     // watts-strogatz rewiring probability
	Attachment int     `yaml:"attachment"` // barabasi-albert edges per new node
	Seed       int64   `yaml:"seed"`
}

// ModelConfig selects the variant and carries its named parameter set.
type ModelConfig struct {
	Type       string             `yaml:"type" validate:"required,oneof=seiz seiz-bm seiz-sm"`
	Parameters map[string]float64 `yaml:"parameters" validate:"required"`
}

// RunConfig describes a single run of the model.
type RunConfig struct {
	Steps        int     `yaml:"steps" validate:"min=0"`
	InfectedFrac float64 `yaml:"infected_frac" validate:"min=0,max=1"`
	SkepticFrac  float64 `yaml:"skeptic_frac" validate:"min=0,max=1"`
	Seed         *int64  `yaml:"seed"`
}

// OutputConfig wires the optional sinks for a completed run.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Compress    bool   `yaml:"compress"`
	PostgresURL string `yaml:"postgres_url"`
	MetricsAddr string `yaml:"metrics_addr"`
	StreamAddr  string `yaml:"stream_addr"`
}

// Scenario is a full scenario file.
type Scenario struct {
	Name    string        `yaml:"name"`
	Network NetworkConfig `yaml:"network" validate:"required"`
	Model   ModelConfig   `yaml:"model" validate:"required"`
	Run     RunConfig     `yaml:"run"`
	Output  OutputConfig  `yaml:"output"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario against its struct tags plus the
// variant-specific parameter requirements.
func (s *Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	required, ok := requiredParams[s.Model.Type]
	if !ok {
		return fmt.Errorf("unknown model type %q", s.Model.Type)
	}
	var missing []string
	for _, name := range required {
		if _, present := s.Model.Parameters[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("model %s: missing parameters: %s", s.Model.Type, strings.Join(missing, ", "))
	}
	return nil
}

// requiredParams lists the exact named parameter set per variant.
var requiredParams = map[string][]string{
	"seiz":    {"beta", "b", "rho", "eps", "p", "l", "dt"},
	"seiz-bm": {"beta", "b", "rho", "p", "epsilon", "l", "mu", "m"},
	"seiz-sm": {"beta", "b", "rho", "p", "epsilon", "l", "n", "theta", "T", "eta", "lambd"},
}

// formatValidationError turns validator errors into readable messages.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid scenario: %s", strings.Join(msgs, "; "))
}
