package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment keys.
const (
	KeyPort          = "PORT"
	KeyHistoryDriver = "HISTORY_DRIVER"
	KeyHistoryDSN    = "HISTORY_DSN"
	KeyDatabaseURL   = "DATABASE_URL"
	KeyParamsFile    = "SURVEY_PARAMS"
	KeyZone          = "SURVEY_ZONE"
	KeyHemisphere    = "SURVEY_HEMISPHERE"
	KeyPivotX0       = "SURVEY_PIVOT_X0"
	KeyPivotY0       = "SURVEY_PIVOT_Y0"
	KeyAngle         = "SURVEY_ANGLE"
	KeyMaxBodyBytes  = "MAX_BODY_BYTES"
)

// LoadEnv reads .env files into the process environment. A missing file is
// not an error; variables already set win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Params holds default run parameters as raw strings; they are validated by
// domain.ParseUtmZone and domain.ParsePivot at invocation time.
type Params struct {
	Zone       string      `yaml:"zone"`
	Hemisphere string      `yaml:"hemisphere"`
	Pivot      PivotParams `yaml:"pivot"`
}

type PivotParams struct {
	X0    string `yaml:"x0"`
	Y0    string `yaml:"y0"`
	Angle string `yaml:"angle"`
}

// LoadParams reads a YAML parameter file. An empty path or a missing file
// yields empty Params.
func LoadParams(path string) (Params, error) {
	var p Params
	if strings.TrimSpace(path) == "" {
		return p, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("load params: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("load params: parse yaml %q: %w", path, err)
	}
	return p, nil
}

// Defaults returns run parameters from the YAML file named by SURVEY_PARAMS,
// overridden by the individual SURVEY_* environment variables.
func Defaults() (Params, error) {
	p, err := LoadParams(Get(KeyParamsFile, ""))
	if err != nil {
		return p, err
	}

	p.Zone = Get(KeyZone, p.Zone)
	p.Hemisphere = Get(KeyHemisphere, p.Hemisphere)
	p.Pivot.X0 = Get(KeyPivotX0, p.Pivot.X0)
	p.Pivot.Y0 = Get(KeyPivotY0, p.Pivot.Y0)
	p.Pivot.Angle = Get(KeyAngle, p.Pivot.Angle)
	return p, nil
}
