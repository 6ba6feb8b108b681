package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ClusterConfig holds the decoded group_vars mapping for the cluster nodes group.
// Values keep their YAML types so rules can tell a string from a number or a list.
type ClusterConfig map[string]interface{}

// Has reports whether key is present, even with a null value.
func (c ClusterConfig) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// String returns the value of key if it is a YAML string.
func (c ClusterConfig) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// List returns the value of key if it is a YAML sequence.
func (c ClusterConfig) List(key string) ([]interface{}, bool) {
	l, ok := c[key].([]interface{})
	return l, ok
}

// MissingFileError reports a required input file that does not exist.
type MissingFileError struct {
	Kind string // "vars" or "inventory"
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("Missing %s file: %s", e.Kind, e.Path)
}

// ParseError wraps a YAML decoding failure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse yaml %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Decoder turns raw YAML bytes into a ClusterConfig.
type Decoder func(raw []byte) (ClusterConfig, error)

// DecodeClusterConfig decodes raw YAML. An empty document yields an empty mapping.
// Exactly one document is accepted; non-string keys are kept under their printed form.
func DecodeClusterConfig(raw []byte) (ClusterConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	var doc interface{}
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	var extra interface{}
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("expected a single document in the stream")
	}

	switch v := doc.(type) {
	case nil:
		return ClusterConfig{}, nil
	case map[string]interface{}:
		return ClusterConfig(v), nil
	case map[interface{}]interface{}:
		cfg := make(ClusterConfig, len(v))
		for k, val := range v {
			cfg[fmt.Sprint(k)] = val
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("top-level document must be a mapping, got %T", doc)
	}
}

// ReadFile reads path fully. A missing file is returned as *MissingFileError.
func ReadFile(kind, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &MissingFileError{Kind: kind, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", kind, err)
	}
	return raw, nil
}

// Load reads the vars file at path and decodes it with decode.
func Load(path string, decode Decoder) (ClusterConfig, error) {
	raw, err := ReadFile("vars", path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(raw)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}
