package proptest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Loader.
const (
	EnvProfile     = "TESTING_PROFILE" // profile name, default "debug"
	EnvProfileFile = "ARITH_PROFILES"  // optional YAML file with extra profiles
	EnvSeed        = "ARITH_SEED"      // optional fixed seed
)

// DefaultProfile is used when TESTING_PROFILE is unset.
const DefaultProfile = "debug"

// Verbosity controls how much the runner logs.
type Verbosity string

const (
	VerbosityQuiet   Verbosity = "quiet"
	VerbosityNormal  Verbosity = "normal"
	VerbosityVerbose Verbosity = "verbose"
)

// Profile holds property-test settings.
type Profile struct {
	// Name is the key the profile was registered under.
	Name string `json:"-" yaml:"-"`

	// MaxExamples is the number of examples drawn per property.
	MaxExamples int `json:"max_examples" yaml:"max_examples"`

	// DeadlineMS bounds the wall time of a single example.
	DeadlineMS int `json:"deadline_ms" yaml:"deadline_ms"`

	// Verbosity is quiet, normal or verbose.
	Verbosity Verbosity `json:"verbosity" yaml:"verbosity"`

	// Seed fixes the random source. Zero picks a fresh seed per run.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Deadline returns DeadlineMS as a duration.
func (p Profile) Deadline() time.Duration {
	return time.Duration(p.DeadlineMS) * time.Millisecond
}

// Builtin returns the built-in profiles: "ci" runs 1000 examples, "debug"
// runs 20 verbosely. Both allow one second per example.
func Builtin() map[string]Profile {
	return map[string]Profile{
		"ci": {
			Name:        "ci",
			MaxExamples: 1000,
			DeadlineMS:  1000,
			Verbosity:   VerbosityNormal,
		},
		"debug": {
			Name:        "debug",
			MaxExamples: 20,
			DeadlineMS:  1000,
			Verbosity:   VerbosityVerbose,
		},
	}
}

//go:embed schema.cue
var schemaSource string

// ProfileError reports a profile that does not satisfy the schema.
type ProfileError struct {
	Profile string
	Field   string
	Message string
}

func (e *ProfileError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("profile %q: %s: %s", e.Profile, e.Field, e.Message)
	}
	return fmt.Sprintf("profile %q: %s", e.Profile, e.Message)
}

// Validate checks p against the #Profile CUE schema.
func (p Profile) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile profile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Profile"))
	val := ctx.Encode(p.fields())
	if err := val.Err(); err != nil {
		return fmt.Errorf("encode profile %q: %w", p.Name, err)
	}

	if err := def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return formatSchemaError(p.Name, err)
	}
	return nil
}

// fields returns the schema view of p.
func (p Profile) fields() map[string]any {
	m := map[string]any{
		"max_examples": p.MaxExamples,
		"deadline_ms":  p.DeadlineMS,
		"verbosity":    string(p.Verbosity),
	}
	if p.Seed != 0 {
		m["seed"] = p.Seed
	}
	return m
}

// formatSchemaError keeps the first CUE error and its field path.
func formatSchemaError(name string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ProfileError{Profile: name, Message: err.Error()}
	}
	first := errs[0]
	return &ProfileError{
		Profile: name,
		Field:   strings.Join(first.Path(), "."),
		Message: first.Error(),
	}
}

// profileFile is the YAML layout accepted by LoadProfileFile.
//
//	profiles:
//	  nightly:
//	    max_examples: 5000
//	    deadline_ms: 2000
//	    verbosity: quiet
type profileFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfileFile reads extra profiles from a YAML file.
// Unknown fields are rejected and every profile is validated.
func LoadProfileFile(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var pf profileFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	out := make(map[string]Profile, len(pf.Profiles))
	for name, p := range pf.Profiles {
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

// Loader resolves the active profile from the environment.
// The zero Loader reads ".env" and the process environment.
type Loader struct {
	// EnvFiles are dotenv files consulted after the process environment.
	// Missing files are skipped. Defaults to [".env"].
	EnvFiles []string

	// Getenv reads the process environment. Defaults to os.Getenv.
	Getenv func(string) string
}

// LoadProfile resolves the active profile with a zero Loader.
func LoadProfile() (Profile, error) {
	return Loader{}.Load()
}

// Load resolves TESTING_PROFILE against the built-in profiles plus any
// profiles named by ARITH_PROFILES, applies ARITH_SEED and validates the
// result. Process environment wins over dotenv files.
func (l Loader) Load() (Profile, error) {
	dotenv, err := l.readEnvFiles()
	if err != nil {
		return Profile{}, err
	}
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	profiles := Builtin()
	if path := lookup(EnvProfileFile); path != "" {
		extra, err := LoadProfileFile(path)
		if err != nil {
			return Profile{}, err
		}
		for name, p := range extra {
			profiles[name] = p
		}
	}

	name := lookup(EnvProfile)
	if name == "" {
		name = DefaultProfile
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(Names(profiles), ", "))
	}
	p.Name = name

	if s := lookup(EnvSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Profile{}, fmt.Errorf("invalid %s %q: %w", EnvSeed, s, err)
		}
		p.Seed = seed
	}

	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (l Loader) readEnvFiles() (map[string]string, error) {
	files := l.EnvFiles
	if files == nil {
		files = []string{".env"}
	}

	merged := map[string]string{}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}
	return merged, nil
}

// Names returns the sorted profile names.
func Names(profiles map[string]Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustLoad resolves the active profile or fails t.
func MustLoad(t testing.TB) Profile {
	t.Helper()
	p, err := LoadProfile()
	if err != nil {
		t.Fatalf("load property profile: %v", err)
	}
	return p
}
