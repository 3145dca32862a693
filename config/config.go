// Package config loads the optional installer settings file.
//
// The file is TOML and lives next to the installs:
//
//	%LocalAppData%\MyApps\installer.toml
//
//	source_dir  = '\\fileserver\apps'
//	launch      = true
//	self_update = true
//	gui         = false
//	log_level   = "debug"
//
// A missing file is not an error; command-line flags override file values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the settings file name inside the install root.
const FileName = "installer.toml"

// Settings holds values read from the settings file. Pointer fields are nil
// when the file does not set them, so callers can tell "unset" from "false".
type Settings struct {
	SourceDir     string `toml:"source_dir"`
	InstallRoot   string `toml:"install_root"`
	InstallerName string `toml:"installer_name"`
	Launch        *bool  `toml:"launch"`
	SelfUpdate    *bool  `toml:"self_update"`
	GUI           *bool  `toml:"gui"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
}

// Debug reports whether the log level asks for debug output.
func (s *Settings) Debug() bool {
	return s != nil && s.LogLevel == "debug"
}

// DefaultPath returns the settings file location under root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads settings from path. A missing file yields empty settings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes settings from TOML. Unknown keys are rejected so typos surface.
func Parse(data []byte) (*Settings, error) {
	var s Settings
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse config file (line %d, column %d): %w", row, col, err)
		}
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.LogLevel {
	case "", "debug", "info":
	default:
		return fmt.Errorf("invalid log_level %q (want \"debug\" or \"info\")", s.LogLevel)
	}
	return nil
}
