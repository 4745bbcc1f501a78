package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/funny-falcon/ownership/alloc"
)

const envVarPrefix = "OWNSTAT"

// Config holds the flag values; OWNSTAT_* environment variables override
// them.
type Config struct {
	Port       string `envconfig:"PORT"`
	Allocator  string `envconfig:"ALLOCATOR"`
	ChunkSize  int    `envconfig:"CHUNK"`
	SlabChunks int    `envconfig:"SLAB"`
	Limit      int64  `envconfig:"LIMIT"`
}

func LoadConfig(c Config) (Config, error) {
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return c, fmt.Errorf("parsing environment variables: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Allocator {
	case "heap", "arena":
	default:
		return fmt.Errorf("unknown allocator %q (OWNSTAT_ALLOCATOR), want heap or arena", c.Allocator)
	}
	if c.Port == "" {
		return fmt.Errorf("missing required config: port (OWNSTAT_PORT)")
	}
	if c.Limit < 0 {
		return fmt.Errorf("negative arena limit %d (OWNSTAT_LIMIT)", c.Limit)
	}
	return nil
}

func (c *Config) arenaConfig() alloc.ArenaConfig {
	return alloc.ArenaConfig{
		ChunkSize:  c.ChunkSize,
		SlabChunks: c.SlabChunks,
		Limit:      c.Limit,
	}
}
