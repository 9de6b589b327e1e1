package tennis

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ezBadminton/gotennis/internal"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// The configuration of a batch of season simulations
type Config struct {
	// Base seed of the batch. Run i uses the seeds (Seed, i).
	Seed    uint64 `mapstructure:"SEED"`
	Runs    int    `mapstructure:"RUNS"`
	Workers int    `mapstructure:"WORKERS"`

	Players int `mapstructure:"PLAYERS"`
	// Entry policies assigned round-robin to the generated players
	PolicyMix []string `mapstructure:"POLICY_MIX"`

	GameModel            string  `mapstructure:"GAME_MODEL"`
	FormStep             float64 `mapstructure:"FORM_STEP"`
	MinForm              float64 `mapstructure:"MIN_FORM"`
	TiebreakPointCap     int     `mapstructure:"TIEBREAK_POINT_CAP"`
	FitnessCostScale     float64 `mapstructure:"FITNESS_COST_SCALE"`
	FitnessRecovery      float64 `mapstructure:"FITNESS_RECOVERY"`
	InjuryRecoveryChance float64 `mapstructure:"INJURY_RECOVERY_CHANCE"`
	FieldBaselineSize    int     `mapstructure:"FIELD_BASELINE_SIZE"`

	// YAML calendar to use instead of the built-in one
	CalendarFile string `mapstructure:"CALENDAR_FILE"`
	// Validate the score of every played match
	Audit bool `mapstructure:"AUDIT"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
	LogJSON  bool   `mapstructure:"LOG_JSON"`
}

// Loads the configuration from the defaults, an optional config
// file and the TENNIS_ prefixed environment variables (in
// increasing priority). With an empty path a tennis.yaml in the
// working directory is used if it exists.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tennis")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	rules := internal.DefaultRules()

	v.SetDefault("SEED", 1)
	v.SetDefault("RUNS", 10)
	v.SetDefault("WORKERS", 4)
	v.SetDefault("PLAYERS", 200)
	allPolicies := make([]string, 0, 5)
	for _, p := range internal.AllPolicies() {
		allPolicies = append(allPolicies, p.Name())
	}
	v.SetDefault("POLICY_MIX", strings.Join(allPolicies, ","))
	v.SetDefault("GAME_MODEL", rules.GameModel.String())
	v.SetDefault("FORM_STEP", rules.FormStep)
	v.SetDefault("MIN_FORM", rules.MinForm)
	v.SetDefault("TIEBREAK_POINT_CAP", rules.TiebreakPointCap)
	v.SetDefault("FITNESS_COST_SCALE", rules.FitnessCostScale)
	v.SetDefault("FITNESS_RECOVERY", rules.FitnessRecovery)
	v.SetDefault("INJURY_RECOVERY_CHANCE", rules.InjuryRecoveryChance)
	v.SetDefault("FIELD_BASELINE_SIZE", rules.FieldBaselineSize)
	v.SetDefault("CALENDAR_FILE", "")
	v.SetDefault("AUDIT", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)

	v.SetEnvPrefix("TENNIS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Lists from the environment arrive comma-separated
	if mix := v.GetStringSlice("POLICY_MIX"); len(mix) == 1 && strings.Contains(mix[0], ",") {
		config.PolicyMix = strings.Split(mix[0], ",")
	} else if len(mix) > 0 {
		config.PolicyMix = mix
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Runs <= 0:
		return fmt.Errorf("runs must be positive: %w", ErrInvalidConfig)
	case c.Workers <= 0:
		return fmt.Errorf("workers must be positive: %w", ErrInvalidConfig)
	case c.Players < 0:
		return fmt.Errorf("negative number of players: %w", ErrInvalidConfig)
	case len(c.PolicyMix) == 0:
		return fmt.Errorf("empty policy mix: %w", ErrInvalidConfig)
	}

	if _, err := c.Policies(); err != nil {
		return err
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	return nil
}

// Returns the simulation rules of the configuration
func (c *Config) Rules() (internal.Rules, error) {
	model, err := internal.ParseGameModel(c.GameModel)
	if err != nil {
		return internal.Rules{}, err
	}

	rules := internal.Rules{
		GameModel:            model,
		FormStep:             c.FormStep,
		MinForm:              c.MinForm,
		TiebreakPointCap:     c.TiebreakPointCap,
		FitnessCostScale:     c.FitnessCostScale,
		FitnessRecovery:      c.FitnessRecovery,
		InjuryRecoveryChance: c.InjuryRecoveryChance,
		FieldBaselineSize:    c.FieldBaselineSize,
	}
	return rules, rules.Validate()
}

// Resolves the policy mix
func (c *Config) Policies() ([]internal.EntryPolicy, error) {
	policies := make([]internal.EntryPolicy, 0, len(c.PolicyMix))
	for _, name := range c.PolicyMix {
		policy, err := internal.PolicyByName(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// Returns the configured calendar or the built-in one
func (c *Config) Calendar() (*internal.Calendar, error) {
	if c.CalendarFile == "" {
		return internal.DefaultCalendar(), nil
	}

	f, err := os.Open(c.CalendarFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return internal.LoadCalendar(f)
}
