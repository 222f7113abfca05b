package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// ErrProfileNotFound is returned when env/.env.<name> does not exist
var ErrProfileNotFound = errors.New("environment file not found")

// Profile is a loaded environment profile. It is never mutated after LoadProfile
// returns; downstream components receive it explicitly instead of reading os env.
type Profile struct {
	Name string
	Path string
	vars map[string]string
}

// NewProfile builds a profile from a variable map (copied)
func NewProfile(name string, vars map[string]string) Profile {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return Profile{Name: name, vars: copied}
}

// LoadProfile reads <envDir>/.env.<name> and a base <envDir>/../.env when present.
// As with dotenv, an earlier source is never overridden: variables already set in the
// process environment win over the base file, which wins over the named profile.
func LoadProfile(envDir, name string) (Profile, error) {
	path := filepath.Join(envDir, ".env."+name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return Profile{}, fmt.Errorf("stat environment file %s: %w", path, err)
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return Profile{}, fmt.Errorf("parse %s: %w", path, err)
	}

	base := filepath.Join(filepath.Dir(envDir), ".env")
	if _, err := os.Stat(base); err == nil {
		baseVars, err := godotenv.Read(base)
		if err != nil {
			return Profile{}, fmt.Errorf("parse %s: %w", base, err)
		}
		for k, v := range baseVars {
			vars[k] = v
		}
	}

	for k := range vars {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}

	return Profile{Name: name, Path: path, vars: vars}, nil
}

// Get returns a profile variable, or "" when unset
func (p Profile) Get(key string) string {
	return p.vars[key]
}

// GetOr returns a profile variable, or def when unset or empty
func (p Profile) GetOr(key, def string) string {
	if v := p.vars[key]; v != "" {
		return v
	}
	return def
}

// Vars returns a copy of the profile variables
func (p Profile) Vars() map[string]string {
	out := make(map[string]string, len(p.vars))
	for k, v := range p.vars {
		out[k] = v
	}
	return out
}

// Environ returns KEY=VALUE pairs sorted by key, plus ENV=<name>
func (p Profile) Environ() []string {
	keys := make([]string, 0, len(p.vars))
	for k := range p.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		env = append(env, k+"="+p.vars[k])
	}
	if _, ok := p.vars["ENV"]; !ok && p.Name != "" {
		env = append(env, "ENV="+p.Name)
	}
	return env
}

// Merge layers the profile under environ. Keys already present in environ keep their
// value; ENV is always the profile name.
func (p Profile) Merge(environ []string) []string {
	set := make(map[string]bool, len(environ))
	out := make([]string, 0, len(environ)+len(p.vars)+1)
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if key == "ENV" && p.Name != "" {
			continue
		}
		set[key] = true
		out = append(out, kv)
	}

	keys := make([]string, 0, len(p.vars))
	for k := range p.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if set[k] || (k == "ENV" && p.Name != "") {
			continue
		}
		out = append(out, k+"="+p.vars[k])
	}

	if p.Name != "" {
		out = append(out, "ENV="+p.Name)
	}
	return out
}
