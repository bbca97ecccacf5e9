package engine

import (
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// Per-level tables, indexed by domain.Level.Index(). Values are in
// milliseconds unless noted.
var (
	initiationMin = 3500
	initiationMax = 10000

	reentryAfterProcrastination = [4]int{0, 1800, 2600, 3400}
	reentryAfterProcrastJitter  = 1200

	interruptChance       = [4]float64{0, 0.12, 0.18, 0.26}
	reentryAfterInterrupt = [4]int{0, 2200, 3200, 4400}
	reentryInterruptJit   = 1600
	interruptMin          = 2200
	interruptJitter       = 5200

	hyperfocusChance   = [4]float64{0, 0.06, 0.05, 0.04}
	hyperfocusMaxBoost = 0.085
	hyperfocusCooldown = 25 * time.Second
	hyperfocusMin      = 12000
	hyperfocusJitter   = 14000
	crashMin           = 1800
	crashJitter        = 3500

	relaxMin    = 800
	relaxJitter = 1200

	levelPenalty  = [4]float64{0, 1.0, 0.80, 0.62}
	timeBlindBias = [4]float64{0, 0.85, 1.0, 1.15}

	shieldBase       = [4]int{0, 7500, 6000, 4500}
	shieldJitter     = [4]int{0, 1500, 1500, 1000}
	hardLockBase     = [4]int{0, 3500, 2800, 2200}
	hardLockJitter   = [4]int{0, 500, 400, 300}
	refocusReentry   = [4]int{0, 1100, 1600, 2200}
	refocusReentryJ  = 500
	focusModeLength  = [4]int{0, 12000, 10000, 8000}
	refocusBonusBase = 0.03
	refocusBonusJit  = 0.05
	refocusScale     = [4]float64{0, 1.0, 0.90, 0.75}
)

const (
	baseProgress        = 0.015
	hyperfocusProgress  = 0.040
	reentryProgress     = 0.35
	timeBlindCooldown   = 45 * time.Second
	timeBlindShown      = 4200 * time.Millisecond
	timeBlindStress     = 0.04
	pileUpChance        = 0.35
	pileUpStress        = 0.5
	streakHyperfocusMin = 4
	streakHyperfocusP   = 0.3
)

// backgroundRate is the per-tick progress of non-active tasks.
func backgroundRate(state domain.TaskState) float64 {
	switch state {
	case domain.StateHyperfocus:
		return 0.006
	case domain.StateWorking:
		return 0.0035
	case domain.StateProcrastinating:
		return 0.0009
	}
	return 0
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
