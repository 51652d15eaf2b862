package config

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/mergington/internal/domain/activity"
)

// seedKey is the top-level YAML key holding the activity list.
const seedKey = "activities"

// LoadSeed returns the activity catalog to start the registry with. An empty
// path yields the built-in seed. Otherwise path names a YAML file of the form:
//
//	activities:
//	  - name: Tennis Club
//	    description: ...
//	    schedule: ...
//	    max_participants: 16
//	    participants: [james@mergington.edu]
//
// Records are validated individually; duplicate names are left to the store.
func LoadSeed(_ context.Context, path string) (activity.Catalog, error) {
	if path == "" {
		return activity.Seed(), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}
	if !k.Exists(seedKey) {
		return nil, fmt.Errorf("%w: %s: missing %q list", ErrLoadSeed, path, seedKey)
	}

	var out []activity.Activity
	if err := k.UnmarshalWithConf(seedKey, &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s: no activities", ErrLoadSeed, path)
	}
	for i := range out {
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadSeed, path, err)
		}
		out[i] = out[i].Clone()
	}
	return activity.Catalog(out), nil
}
