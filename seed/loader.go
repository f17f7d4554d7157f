package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/Mavapay/webhook-dispacther/endpoint"
	"gopkg.in/yaml.v3"
)

/* Loader reads default endpoints from endpoints.yaml
 * Seeds are applied only when the registry is empty, so a restart never
 * duplicates or resurrects endpoints the operator has changed.
 */

// Config represents the structure of endpoints.yaml
type Config struct {
	Endpoints []EndpointConfig `yaml:"endpoints"`
}

// EndpointConfig represents a single endpoint in the YAML file
type EndpointConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	IsActive bool   `yaml:"is_active"`
}

// Load reads and parses the endpoints seed file
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}

	for i, ec := range config.Endpoints {
		if ec.Name == "" {
			return nil, fmt.Errorf("seed entry %d: name cannot be empty", i)
		}
		if ec.URL == "" {
			return nil, fmt.Errorf("seed entry %d: url cannot be empty", i)
		}
	}

	return &config, nil
}

// Apply registers the seed endpoints when the registry is empty.
// Returns the number of endpoints registered.
func Apply(ctx context.Context, config *Config, service endpoint.UseCase) (int, error) {
	existing, err := service.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing endpoints: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	registered := 0
	for _, ec := range config.Endpoints {
		if _, err := service.Register(ctx, ec.Name, ec.URL, ec.IsActive); err != nil {
			return registered, fmt.Errorf("registering seed endpoint %q: %w", ec.Name, err)
		}
		registered++
	}

	return registered, nil
}
