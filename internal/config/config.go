// Package config loads run configuration from YAML and resolves its string
// tags (topology kind, distribution, rule tags, interaction mode) into the
// closed types the engine consumes. Resolution happens once at load time;
// nothing downstream ever re-parses a tag.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/echosim/internal/dynamics"
	"github.com/talgya/echosim/internal/engine"
	"github.com/talgya/echosim/internal/topology"
)

// ErrInvalidConfig indicates a configuration value that fails validation
// before any tag resolution is attempted.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full description of one simulation run.
type Config struct {
	Seed        uint64         `yaml:"seed"`        // 0 selects a time-based seed
	TMax        int            `yaml:"tmax"`        // ticks to simulate
	Nodes       int            `yaml:"nodes"`       // number of agents
	Interaction string         `yaml:"interaction"` // symmetric | asymmetric
	Topology    TopologyConfig `yaml:"topology"`
	Attitudes   AttitudeConfig `yaml:"attitudes"`
	Weights     WeightConfig   `yaml:"weights"`
	Rules       RulesConfig    `yaml:"rules"`
}

// TopologyConfig selects the network generator.
type TopologyConfig struct {
	Kind string  `yaml:"kind"`
	P    float64 `yaml:"p"`
	K    int     `yaml:"k"`
	M    int     `yaml:"m"`
}

// AttitudeConfig selects the initial attitude distribution. A and B follow
// the distribution's parameter pair: (loc, scale) for normal and laplace,
// (mu, kappa) for vonmises, (low, high) for uniform.
type AttitudeConfig struct {
	Distribution string  `yaml:"distribution"`
	A            float64 `yaml:"a"`
	B            float64 `yaml:"b"`
}

// WeightConfig sets the initial tie strengths.
type WeightConfig struct {
	Neighbor    float64 `yaml:"neighbor"`
	NonNeighbor float64 `yaml:"non_neighbor"`
}

// RulesConfig selects the reinforcement strategy. Family "pairwise" reads
// the edge/attitude/floor/sign tags; family "continuous" reads alpha/beta.
type RulesConfig struct {
	Family   string  `yaml:"family"`   // pairwise | continuous
	Edge     string  `yaml:"edge"`     // type1..type5
	Attitude string  `yaml:"attitude"` // type1..type5
	Floor    string  `yaml:"floor"`    // zero | epsilon
	Sign     string  `yaml:"sign"`     // add | subtract
	Alpha    float64 `yaml:"alpha"`
	Beta     float64 `yaml:"beta"`
}

// Default returns a small symmetric pairwise run, the configuration a
// study typically starts tweaking from.
func Default() Config {
	return Config{
		Seed:        0,
		TMax:        100,
		Nodes:       50,
		Interaction: "symmetric",
		Topology:    TopologyConfig{Kind: "complete", P: 0.1, K: 2, M: 1},
		Attitudes:   AttitudeConfig{Distribution: "normal", A: 0.0, B: 0.3},
		Weights:     WeightConfig{Neighbor: 1.0, NonNeighbor: 0.0},
		Rules: RulesConfig{
			Family:   "pairwise",
			Edge:     "type1",
			Attitude: "type1",
			Floor:    "zero",
			Sign:     "add",
			Alpha:    dynamics.DefaultAlpha,
			Beta:     dynamics.DefaultBeta,
		},
	}
}

// Load reads path into a Config layered over Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values that no tag resolver covers.
func (c Config) Validate() error {
	if c.Nodes < 1 {
		return fmt.Errorf("%w: nodes=%d, need at least 1", ErrInvalidConfig, c.Nodes)
	}
	if c.TMax < 1 {
		return fmt.Errorf("%w: tmax=%d, need at least 1", ErrInvalidConfig, c.TMax)
	}
	if c.Interaction != "symmetric" && c.Interaction != "asymmetric" {
		return fmt.Errorf("%w: interaction=%q, want symmetric or asymmetric", ErrInvalidConfig, c.Interaction)
	}
	if c.Rules.Family != "pairwise" && c.Rules.Family != "continuous" {
		return fmt.Errorf("%w: rules.family=%q, want pairwise or continuous", ErrInvalidConfig, c.Rules.Family)
	}
	return nil
}

// Symmetric reports whether interactions are reciprocated.
func (c Config) Symmetric() bool { return c.Interaction == "symmetric" }

// TopologyParams resolves the topology section.
func (c Config) TopologyParams() (topology.Config, error) {
	kind, err := topology.ParseKind(c.Topology.Kind)
	if err != nil {
		return topology.Config{}, err
	}
	return topology.Config{
		Kind: kind,
		N:    c.Nodes,
		P:    c.Topology.P,
		K:    c.Topology.K,
		M:    c.Topology.M,
	}, nil
}

// Distribution resolves the attitude distribution tag.
func (c Config) Distribution() (dynamics.Distribution, error) {
	return dynamics.ParseDistribution(c.Attitudes.Distribution)
}

// Updater resolves the rules section into a reinforcement strategy.
func (c Config) Updater() (dynamics.Updater, error) {
	if c.Rules.Family == "continuous" {
		return dynamics.NewContinuousUpdater(dynamics.ContinuousConfig{
			Alpha: c.Rules.Alpha,
			Beta:  c.Rules.Beta,
		}), nil
	}

	edge, err := dynamics.ParseEdgeRule(c.Rules.Edge)
	if err != nil {
		return nil, err
	}
	att, err := dynamics.ParseAttitudeRule(c.Rules.Attitude)
	if err != nil {
		return nil, err
	}

	var floor dynamics.Floor
	switch c.Rules.Floor {
	case "zero":
		floor = dynamics.FloorZero
	case "epsilon":
		floor = dynamics.FloorEpsilon
	default:
		return nil, fmt.Errorf("%w: rules.floor=%q, want zero or epsilon", ErrInvalidConfig, c.Rules.Floor)
	}

	var sign dynamics.Sign
	switch c.Rules.Sign {
	case "add":
		sign = dynamics.SignAdd
	case "subtract":
		sign = dynamics.SignSubtract
	default:
		return nil, fmt.Errorf("%w: rules.sign=%q, want add or subtract", ErrInvalidConfig, c.Rules.Sign)
	}

	return dynamics.NewPairwiseUpdater(dynamics.PairwiseConfig{
		Edge:     edge,
		Attitude: att,
		Floor:    floor,
		Sign:     sign,
	})
}

// Driver resolves the engine-facing parameters.
func (c Config) Driver(logEvery int) engine.Config {
	return engine.Config{TMax: c.TMax, Symmetric: c.Symmetric(), LogEvery: logEvery}
}

// Marshal renders the config back to YAML, used when persisting a run.
func (c Config) Marshal() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(out), nil
}
