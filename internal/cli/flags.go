package cli

import (
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/spf13/pflag"
)

// levelValue is a pflag.Value accepting 0-3 or none/low/medium/high.
type levelValue struct {
	level *domain.Level
}

var _ pflag.Value = levelValue{}

func newLevelValue(def domain.Level, p *domain.Level) levelValue {
	*p = def
	return levelValue{level: p}
}

func (v levelValue) String() string {
	if v.level == nil {
		return ""
	}
	return v.level.String()
}

func (v levelValue) Set(s string) error {
	l, err := domain.ParseLevel(s)
	if err != nil {
		return err
	}
	*v.level = l
	return nil
}

func (levelValue) Type() string { return "level" }

// envValue is a pflag.Value accepting desk, hoersaal or supermarkt. An
// empty value is allowed when the flag is optional.
type envValue struct {
	env *domain.Environment
}

var _ pflag.Value = envValue{}

func newEnvValue(def domain.Environment, p *domain.Environment) envValue {
	*p = def
	return envValue{env: p}
}

func (v envValue) String() string {
	if v.env == nil {
		return ""
	}
	return string(*v.env)
}

func (v envValue) Set(s string) error {
	e, err := domain.ParseEnvironment(s)
	if err != nil {
		return err
	}
	*v.env = e
	return nil
}

func (envValue) Type() string { return "environment" }

// registerSessionFlags adds --env and --level to fs.
func registerSessionFlags(fs *pflag.FlagSet, env *domain.Environment, level *domain.Level, defEnv domain.Environment, defLevel domain.Level) {
	fs.VarP(newEnvValue(defEnv, env), "env", "e", "environment: desk, hoersaal or supermarkt")
	fs.VarP(newLevelValue(defLevel, level), "level", "l", "distraction level: 0-3 or none/low/medium/high")
}
