// Package scenario runs scripted sessions on the virtual clock. A script
// fixes the environment, level, seed and a timeline of user actions, so a
// run is reproducible.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScript = errors.New("invalid scenario")

// Verb names a scripted action.
type Verb string

const (
	VerbGaveIn       Verb = "gave_in"
	VerbRefocus      Verb = "refocus"
	VerbLookAway     Verb = "look_away"
	VerbLookBack     Verb = "look_back"
	VerbSetLevel     Verb = "set_level"
	VerbAddTask      Verb = "add_task"
	VerbCompleteTask Verb = "complete_task"
	VerbRemoveTask   Verb = "remove_task"
	VerbPause        Verb = "pause"
	VerbResume       Verb = "resume"
)

var knownVerbs = map[Verb]bool{
	VerbGaveIn: true, VerbRefocus: true, VerbLookAway: true, VerbLookBack: true,
	VerbSetLevel: true, VerbAddTask: true, VerbCompleteTask: true, VerbRemoveTask: true,
	VerbPause: true, VerbResume: true,
}

// Action is one timeline entry. Only the fields of its verb are read.
type Action struct {
	At time.Duration `yaml:"at"`
	Do Verb          `yaml:"do"`

	// gave_in
	Label    string  `yaml:"label,omitempty"`
	Type     string  `yaml:"type,omitempty"`
	Severity float64 `yaml:"severity,omitempty"`

	// look_away: angle off the focus target; For > 0 looks back on its own.
	Angle float64       `yaml:"angle,omitempty"`
	For   time.Duration `yaml:"for,omitempty"`

	Level *int   `yaml:"level,omitempty"`
	Text  string `yaml:"text,omitempty"`
	Index int    `yaml:"index,omitempty"`
}

type Script struct {
	Name        string        `yaml:"name"`
	Environment string        `yaml:"environment"`
	Level       int           `yaml:"level"`
	Seed        int64         `yaml:"seed"`
	Duration    time.Duration `yaml:"duration"`
	Actions     []Action      `yaml:"actions"`

	env domain.Environment
}

// Env is the parsed environment; valid after Parse or Validate.
func (s *Script) Env() domain.Environment { return s.env }

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML. Actions are sorted by time; actions
// with the same time keep their file order.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	env, err := domain.ParseEnvironment(s.Environment)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	s.env = env
	if s.Level < int(domain.LevelLow) || s.Level > int(domain.LevelHigh) {
		return fmt.Errorf("%w: level %d: %w", ErrInvalidScript, s.Level, domain.ErrInvalidLevel)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidScript)
	}
	for i, a := range s.Actions {
		if !knownVerbs[a.Do] {
			return fmt.Errorf("%w: action %d: unknown verb %q", ErrInvalidScript, i, a.Do)
		}
		if a.At < 0 || a.At > s.Duration {
			return fmt.Errorf("%w: action %d at %s is outside the run", ErrInvalidScript, i, a.At)
		}
		if a.Do == VerbSetLevel {
			if a.Level == nil || *a.Level < 0 || *a.Level > int(domain.LevelHigh) {
				return fmt.Errorf("%w: action %d: set_level needs level 0-3", ErrInvalidScript, i)
			}
		}
	}
	sort.SliceStable(s.Actions, func(i, j int) bool { return s.Actions[i].At < s.Actions[j].At })
	return nil
}
