// Package config loads ddcheck's project configuration: an explicit
// config file if one exists, else a "ddcheck" key in package.json, else
// built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	lru "github.com/hashicorp/golang-lru/v2"
	"gopkg.in/yaml.v3"
)

// compiledPatterns caches regexp.Compile results for the life of the
// process (e.g. across the repeated result.FilterIgnored calls of a watch
// session), since pattern strings rarely change between calls but
// compiling a regexp isn't free.
var compiledPatterns, _ = lru.New[string, *regexp.Regexp](256)

// CompilePattern compiles p as a regular expression, reusing a previously
// compiled *regexp.Regexp for the same pattern string when one is cached.
// Exposed so callers outside this package (e.g. result.FilterIgnored,
// re-run on every watch-mode iteration against the same ignore_patterns)
// share the cache instead of recompiling identical patterns per call.
func CompilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := compiledPatterns.Get(p); ok {
		return re, nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	compiledPatterns.Add(p, re)
	return re, nil
}

// Output controls how a report is rendered.
type Output struct {
	Format        string `toml:"format" yaml:"format" json:"format"`
	MinConfidence string `toml:"min_confidence" yaml:"min_confidence" json:"min_confidence"`
	Verbose       bool   `toml:"verbose" yaml:"verbose" json:"verbose"`
}

// Watch controls the file-watcher front end.
type Watch struct {
	DebounceMS     int      `toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	IgnorePatterns []string `toml:"ignore_patterns" yaml:"ignore_patterns" json:"ignore_patterns"`
}

// Logging controls the shared structured logger.
type Logging struct {
	Level  string `toml:"level" yaml:"level" json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

// Analysis controls which findings survive reporting.
type Analysis struct {
	IncludeTypes       bool     `toml:"include_types" yaml:"include_types" json:"include_types"`
	IgnoreSymbols      []string `toml:"ignore_symbols" yaml:"ignore_symbols" json:"ignore_symbols"`
	IgnorePatterns     []string `toml:"ignore_patterns" yaml:"ignore_patterns" json:"ignore_patterns"`
	MaxTransitiveDepth int      `toml:"max_transitive_depth" yaml:"max_transitive_depth" json:"max_transitive_depth"`
}

// Config is the full set of project settings.
type Config struct {
	Include          []string `toml:"include" yaml:"include" json:"include"`
	Exclude          []string `toml:"exclude" yaml:"exclude" json:"exclude"`
	RespectGitignore bool     `toml:"respect_gitignore" yaml:"respect_gitignore" json:"respect_gitignore"`

	EntryFiles  []string `toml:"entry_files" yaml:"entry_files" json:"entry_files"`
	EntryGlobs  []string `toml:"entry_globs" yaml:"entry_globs" json:"entry_globs"`
	Frameworks  []string `toml:"frameworks" yaml:"frameworks" json:"frameworks"`
	ExportNames []string `toml:"export_names" yaml:"export_names" json:"export_names"`

	Analysis Analysis `toml:"analysis" yaml:"analysis" json:"analysis"`
	Output   Output   `toml:"output" yaml:"output" json:"output"`
	Watch    Watch    `toml:"watch" yaml:"watch" json:"watch"`
	Logging  Logging  `toml:"logging" yaml:"logging" json:"logging"`
}

// Default returns the configuration used when no config file is found.
func Default() Config {
	return Config{
		RespectGitignore: true,
		Frameworks:       nil, // nil selects every builtin plugin
		Analysis: Analysis{
			IncludeTypes: true,
		},
		Output: Output{
			Format:        "table",
			MinConfidence: "low",
		},
		Watch: Watch{
			DebounceMS: 200,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// searchOrder is the filename search order, tried relative to rootDir
// before falling back to package.json's "ddcheck" key.
var searchOrder = []string{
	"ddcheck.toml", ".ddcheckrc.toml",
	"ddcheck.yaml", ".ddcheckrc.yaml",
	"ddcheck.json", ".ddcheckrc.json",
}

// Load searches rootDir in searchOrder, then package.json, for
// configuration, merging it over Default(). Returns the path of the file
// actually used, or "" if defaults were used untouched.
func Load(rootDir string) (Config, string, error) {
	cfg := Default()

	for _, name := range searchOrder {
		path := filepath.Join(rootDir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := unmarshalByExt(path, raw, &cfg); err != nil {
			return cfg, path, err
		}
		if err := Validate(cfg); err != nil {
			return cfg, path, err
		}
		return cfg, path, nil
	}

	pkgPath := filepath.Join(rootDir, "package.json")
	if raw, err := os.ReadFile(pkgPath); err == nil {
		var doc struct {
			DDCheck json.RawMessage `json:"ddcheck"`
		}
		if err := json.Unmarshal(raw, &doc); err == nil && len(doc.DDCheck) > 0 {
			if err := json.Unmarshal(doc.DDCheck, &cfg); err != nil {
				return cfg, pkgPath, err
			}
			if err := Validate(cfg); err != nil {
				return cfg, pkgPath, err
			}
			return cfg, pkgPath, nil
		}
	}

	return cfg, "", nil
}

// Validate checks fields that cannot be validated by the unmarshaler
// itself: ignore_patterns must compile as regular expressions. Entry files
// are checked separately by ValidateEntryFiles. A failure here is a
// config-error and is fatal to the caller.
func Validate(cfg Config) error {
	for _, p := range cfg.Analysis.IgnorePatterns {
		if _, err := CompilePattern(p); err != nil {
			return fmt.Errorf("invalid analysis.ignore_patterns entry %q: %w", p, err)
		}
	}
	return nil
}

// ValidateEntryFiles checks that every configured entry file exists,
// resolved relative to rootDir. Separate from Validate since it requires
// filesystem access scoped to a specific project root.
func ValidateEntryFiles(cfg Config, rootDir string) error {
	for _, f := range cfg.EntryFiles {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, f)
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("entry.files entry %q: %w", f, err)
		}
	}
	return nil
}

// UnmarshalInto decodes raw into cfg using the format implied by path's
// extension (.toml, .yaml/.yml, else JSON). Exposed for callers that load
// an explicit config path outside the normal search order, e.g. the CLI's
// --config flag.
func UnmarshalInto(path string, raw []byte, cfg *Config) error {
	return unmarshalByExt(path, raw, cfg)
}

func unmarshalByExt(path string, raw []byte, cfg *Config) error {
	switch filepath.Ext(path) {
	case ".toml":
		_, err := toml.Decode(string(raw), cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(raw, cfg)
	default:
		return json.Unmarshal(raw, cfg)
	}
}
