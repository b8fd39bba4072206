package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"coffee-engine/internal/model"
)

// LoadScenario reads a scenario file and overlays it on model.DefaultInputs.
// The format follows the extension: .yaml/.yml, .toml or .json. Keys absent
// from the file keep their default. The result is validated.
func LoadScenario(path string) (model.ScenarioInputs, error) {
	in := model.DefaultInputs()
	if path == "" {
		return in, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	if err := DecodeScenario(filepath.Ext(path), data, &in); err != nil {
		return in, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	if err := in.Validate(); err != nil {
		return in, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return in, nil
}

// DecodeScenario decodes data in the format named by ext into in, leaving
// fields the document does not mention untouched. Unknown keys are rejected.
func DecodeScenario(ext string, data []byte, in *model.ScenarioInputs) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(in); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(in)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(in)
	default:
		return fmt.Errorf("unsupported scenario format %q", ext)
	}
}
