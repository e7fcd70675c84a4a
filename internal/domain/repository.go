package domain

import "context"

// SourceReader reads points from a file
type SourceReader interface {
	ReadSource(filename string) (*StaticSource, error)
}

// SourceLoader loads points from a database
type SourceLoader interface {
	Load(ctx context.Context, query string, args ...any) (*StaticSource, error)
}

// Sink stores rendered output
type Sink interface {
	Write(path string, data []byte) error
}

// ConfigReader reads the configuration
type ConfigReader interface {
	ReadConfig(path string) (*Config, error)
}
