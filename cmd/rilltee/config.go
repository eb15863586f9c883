package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/rill/internal/expand"
)

// Output is one file the input is copied to. In YAML it is either a bare
// path or a mapping with "path" and "append".
type Output struct {
	Path   string
	Append bool
}

func (o *Output) UnmarshalYAML(n *yaml.Node) error {
	var v interface{}
	err := n.Decode(&v)
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*o = Output{Path: expand.Expand(v, expand.Env)}
	case map[string]interface{}:
		path, ok := v["path"].(string)
		if !ok {
			return fmt.Errorf("key 'path' is not a string")
		}
		out := Output{Path: expand.Expand(path, expand.Env)}
		if a, ok := v["append"]; ok {
			if out.Append, ok = a.(bool); !ok {
				return fmt.Errorf("key 'append' is not a boolean")
			}
		}
		*o = out
	default:
		return fmt.Errorf("output is neither a string nor an object")
	}
	if o.Path == "" {
		return fmt.Errorf("output path is empty")
	}
	return nil
}

type Config struct {
	Policy    string   `yaml:"policy"`
	ChunkSize int      `yaml:"chunk_size"`
	Outputs   []Output `yaml:"outputs"`
}

func LoadConfig(b []byte) (*Config, error) {
	var c Config
	err := yaml.Unmarshal(b, &c)
	if err != nil {
		return nil, err
	}
	if c.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk_size must not be negative")
	}
	return &c, nil
}

func LoadConfigFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(b)
}
