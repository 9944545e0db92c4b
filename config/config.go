package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/brensch/pokesim/game"
	"github.com/brensch/pokesim/search"
)

// EnvPrefix prefixes environment overrides, e.g. POKESIM_SEARCH_GENERAL.
const EnvPrefix = "POKESIM"

var ErrInvalid = errors.New("invalid config")

type Search struct {
	General   int    `mapstructure:"general" yaml:"general"`
	Single    int    `mapstructure:"single" yaml:"single"`
	TableBits int    `mapstructure:"table_bits" yaml:"table_bits"`
	Parallel  int    `mapstructure:"parallel" yaml:"parallel"`
	Iterative bool   `mapstructure:"iterative" yaml:"iterative"`
	Foe       string `mapstructure:"foe" yaml:"foe"`
}

type SelfPlay struct {
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	Battles    int64  `mapstructure:"battles" yaml:"battles"`
	Generation string `mapstructure:"generation" yaml:"generation"`
	TeamSize   int    `mapstructure:"team_size" yaml:"team_size"`
	MaxTurns   int    `mapstructure:"max_turns" yaml:"max_turns"`
	Seed       int64  `mapstructure:"seed" yaml:"seed"`
	PerFlush   int    `mapstructure:"battles_per_flush" yaml:"battles_per_flush"`
	OutDir     string `mapstructure:"out_dir" yaml:"out_dir"`
	WrittenLog string `mapstructure:"written_log" yaml:"written_log"`
}

type Log struct {
	Format string `mapstructure:"format" yaml:"format"`
	Level  string `mapstructure:"level" yaml:"level"`
}

type Config struct {
	Search   Search         `mapstructure:"search" yaml:"search"`
	Weights  search.Weights `mapstructure:"weights" yaml:"weights"`
	SelfPlay SelfPlay       `mapstructure:"selfplay" yaml:"selfplay"`
	Log      Log            `mapstructure:"log" yaml:"log"`
}

func setDefaults(v *viper.Viper) {
	sc := search.DefaultConfig()
	v.SetDefault("search.general", sc.Depth.General)
	v.SetDefault("search.single", sc.Depth.Single)
	v.SetDefault("search.table_bits", sc.TableBits)
	v.SetDefault("search.parallel", sc.Parallel)
	v.SetDefault("search.iterative", true)
	v.SetDefault("search.foe", "maxdamage")

	w := search.DefaultWeights()
	v.SetDefault("weights.hp", w.HP)
	v.SetDefault("weights.hidden", w.Hidden)
	v.SetDefault("weights.spikes", w.Spikes)
	v.SetDefault("weights.stealth_rock", w.StealthRock)
	v.SetDefault("weights.toxic_spikes", w.ToxicSpikes)

	v.SetDefault("selfplay.workers", 4)
	v.SetDefault("selfplay.battles", 0)
	v.SetDefault("selfplay.generation", "gen4")
	v.SetDefault("selfplay.team_size", game.MaxTeamSize)
	v.SetDefault("selfplay.max_turns", 200)
	v.SetDefault("selfplay.seed", 0)
	v.SetDefault("selfplay.battles_per_flush", 50)
	v.SetDefault("selfplay.out_dir", "data/decisions")
	v.SetDefault("selfplay.written_log", "data/decisions/written.log")

	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")
}

// New returns a viper instance with defaults and environment overrides bound.
// When path is non-empty the YAML file there is read on top of the defaults.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Decode unmarshals and validates the settings held by v.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load is New followed by Decode.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(v)
}

func (c Config) Validate() error {
	switch {
	case c.Search.General < 0 || c.Search.Single < 0:
		return fmt.Errorf("%w: negative search depth %d/%d", ErrInvalid, c.Search.General, c.Search.Single)
	case c.Search.Parallel < 1:
		return fmt.Errorf("%w: search.parallel must be at least 1", ErrInvalid)
	case c.SelfPlay.Workers < 1:
		return fmt.Errorf("%w: selfplay.workers must be at least 1", ErrInvalid)
	case c.SelfPlay.TeamSize < 1 || c.SelfPlay.TeamSize > game.MaxTeamSize:
		return fmt.Errorf("%w: selfplay.team_size %d outside 1..%d", ErrInvalid, c.SelfPlay.TeamSize, game.MaxTeamSize)
	}
	if _, err := c.Generation(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Foe(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c Config) Depth() search.Depth {
	return search.Depth{General: c.Search.General, Single: c.Search.Single}
}

func (c Config) Generation() (game.Generation, error) {
	return game.ParseGeneration(c.SelfPlay.Generation)
}

// Foe builds the opponent model named by search.foe.
func (c Config) Foe() (search.Predictor, error) {
	switch strings.ToLower(c.Search.Foe) {
	case "", "uniform":
		return search.Uniform{}, nil
	case "maxdamage", "max_damage":
		return search.MaxDamage{}, nil
	}
	return nil, fmt.Errorf("unknown foe model %q", c.Search.Foe)
}

// Options maps the search section onto search.Options.
func (c Config) Options(foe search.Predictor) search.Options {
	return search.Options{
		Foe:       foe,
		TableBits: c.Search.TableBits,
		Parallel:  c.Search.Parallel,
		Iterative: c.Search.Iterative,
	}
}

// Dump renders c as YAML.
func Dump(c Config) ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return b, nil
}
