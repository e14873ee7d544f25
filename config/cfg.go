package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"docconv/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ImagesConfig struct {
		// Display width of every embedded picture.
		WidthInches float64 `yaml:"width_inches" validate:"gt=0,lte=20"`
		// Local files referenced by <img src> are embedded only when allowed.
		AllowLocal bool `yaml:"allow_local"`
		// Upper bound for decoded picture size (either dimension) in pixels.
		MaxPixels int `yaml:"max_pixels" validate:"min=16"`
	}

	PageConfig struct {
		Size common.PageSize `yaml:"size"`
		// Margins in millimeters, used by paginated outputs only.
		Margin float64 `yaml:"margin" validate:"gte=0,lte=60"`
	}

	DocumentConfig struct {
		OutputFormat          common.OutputFmt `yaml:"output_format"`
		StylesheetPath        string           `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string           `yaml:"output_name_template"`
		FileNameTransliterate bool             `yaml:"file_name_transliterate"`
		TitleFromHTML         bool             `yaml:"title_from_html"`
		Creator               string           `yaml:"creator"`
		// Rewrite docx archive without data descriptors, some readers do not
		// support them.
		FixZip bool         `yaml:"fix_zip"`
		Images ImagesConfig `yaml:"images"`
		Page   PageConfig   `yaml:"page"`
	}

	ExtractConfig struct {
		// Files larger than this are refused by text extraction.
		MaxSizeMB int `yaml:"max_size_mb" validate:"min=1"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Extract   ExtractConfig  `yaml:"extract"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

type TemplateFieldName string

const (
	// NOTE: must match yaml field name above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
