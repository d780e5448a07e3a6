// Package fixtures enumerates the simulated entities: servers, applications,
// probe regions and the monitoring targets the check generators iterate.
// The catalog is read-only; generators receive it by value.
package fixtures

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTPCheck struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	ExpectedCode int    `yaml:"expected_code"`
}

type PingCheck struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
}

type DNSCheck struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
}

type TCPCheck struct {
	Name string `yaml:"name"`
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Catalog struct {
	Servers      []string    `yaml:"servers"`
	Applications []string    `yaml:"applications"`
	Probes       []string    `yaml:"probes"`
	HTTPChecks   []HTTPCheck `yaml:"http_checks"`
	PingChecks   []PingCheck `yaml:"ping_checks"`
	DNSChecks    []DNSCheck  `yaml:"dns_checks"`
	TCPChecks    []TCPCheck  `yaml:"tcp_checks"`
}

func Default() Catalog {
	return Catalog{
		Servers: []string{
			"web-server-01", "web-server-02", "api-server-01", "api-server-02", "db-server-01",
		},
		Applications: []string{
			"frontend", "backend-api", "payment-service", "auth-service", "notification-service",
		},
		Probes: []string{
			"us-east-1", "us-west-1", "eu-west-1", "eu-central-1", "ap-southeast-1", "ap-northeast-1",
		},
		HTTPChecks: []HTTPCheck{
			{Name: "grafana-website", URL: "https://grafana.com", ExpectedCode: 200},
			{Name: "api-production", URL: "https://api.example.com/health", ExpectedCode: 200},
			{Name: "e-commerce-site", URL: "https://shop.example.com", ExpectedCode: 200},
			{Name: "auth-service", URL: "https://auth.example.com/status", ExpectedCode: 200},
		},
		PingChecks: []PingCheck{
			{Name: "dns-server-google", Host: "8.8.8.8"},
			{Name: "cdn-endpoint", Host: "cdn.example.com"},
			{Name: "gateway", Host: "gateway.example.com"},
		},
		DNSChecks: []DNSCheck{
			{Name: "website-dns", Domain: "example.com"},
			{Name: "api-dns", Domain: "api.example.com"},
		},
		TCPChecks: []TCPCheck{
			{Name: "postgres-db", Host: "db.example.com", Port: 5432},
			{Name: "redis-cache", Host: "cache.example.com", Port: 6379},
			{Name: "https-endpoint", Host: "secure.example.com", Port: 443},
		},
	}
}

// Load reads a catalog from a YAML file. Sections left empty in the file
// fall back to the built-in defaults, so a file may override only servers
// without re-listing every check.
func Load(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read fixtures: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse fixtures: %w", err)
	}
	d := Default()
	if len(c.Servers) == 0 {
		c.Servers = d.Servers
	}
	if len(c.Applications) == 0 {
		c.Applications = d.Applications
	}
	if len(c.Probes) == 0 {
		c.Probes = d.Probes
	}
	if len(c.HTTPChecks) == 0 {
		c.HTTPChecks = d.HTTPChecks
	}
	if len(c.PingChecks) == 0 {
		c.PingChecks = d.PingChecks
	}
	if len(c.DNSChecks) == 0 {
		c.DNSChecks = d.DNSChecks
	}
	if len(c.TCPChecks) == 0 {
		c.TCPChecks = d.TCPChecks
	}
	return c, nil
}
