package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidLevel       = errors.New("invalid distraction level")
	ErrInvalidEnvironment = errors.New("invalid environment")
	ErrEmptyTask          = errors.New("task text is empty")
	ErrTaskIndex          = errors.New("task index out of range")
)

type TaskKind string

const (
	KindDeepwork TaskKind = "deepwork"
	KindEmail    TaskKind = "email"
	KindPlanning TaskKind = "planning"
	KindStudy    TaskKind = "study"
	KindErrand   TaskKind = "errand"
	KindMisc     TaskKind = "misc"
	KindChores   TaskKind = "chores"
	KindSocial   TaskKind = "social"
)

// ValidTaskKinds is the canonical set of accepted task kind strings.
var ValidTaskKinds = map[string]bool{
	"deepwork": true, "email": true, "planning": true, "study": true,
	"errand": true, "misc": true, "chores": true, "social": true,
}

// KindBonus is the progress multiplier applied to tasks of this kind.
func (k TaskKind) KindBonus() float64 {
	switch k {
	case KindDeepwork:
		return 0.75
	case KindChores:
		return 0.90
	default:
		return 1.0
	}
}

type TaskState string

const (
	StateIdle            TaskState = "idle"
	StateProcrastinating TaskState = "procrastinating"
	StateWorking         TaskState = "working"
	StateHyperfocus      TaskState = "hyperfocus"
)

// InFocusWork reports whether the state counts as working on the active task.
func (s TaskState) InFocusWork() bool {
	return s == StateWorking || s == StateHyperfocus
}

type Environment string

const (
	EnvDesk       Environment = "desk"
	EnvHoersaal   Environment = "hoersaal"
	EnvSupermarkt Environment = "supermarkt"
)

// Environments lists the supported environments in display order.
var Environments = []Environment{EnvDesk, EnvHoersaal, EnvSupermarkt}

func ParseEnvironment(s string) (Environment, error) {
	switch Environment(strings.ToLower(strings.TrimSpace(s))) {
	case EnvDesk:
		return EnvDesk, nil
	case EnvHoersaal:
		return EnvHoersaal, nil
	case EnvSupermarkt:
		return EnvSupermarkt, nil
	}
	return "", fmt.Errorf("%w: %q (expected desk, hoersaal or supermarkt)", ErrInvalidEnvironment, s)
}

// Label returns the human-readable environment name used in summaries.
func (e Environment) Label() string {
	switch e {
	case EnvDesk:
		return "Schreibtisch"
	case EnvHoersaal:
		return "Hörsaal"
	case EnvSupermarkt:
		return "Supermarkt"
	default:
		return string(e)
	}
}

// Level is the distraction intensity. Level 0 means the simulation is off.
type Level int

const (
	LevelOff Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

var levelNames = [...]string{"none", "low", "medium", "high"}
var levelLabels = [...]string{"Aus", "Leicht", "Mittel", "Stark"}

// ClampLevel forces an arbitrary integer into the 0..3 range.
func ClampLevel(v int) Level {
	if v < 0 {
		return LevelOff
	}
	if v > int(LevelHigh) {
		return LevelHigh
	}
	return Level(v)
}

// ParseLevel accepts a digit 0-3 or one of none/off, low, medium, high.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > int(LevelHigh) {
			return 0, fmt.Errorf("%w: %d (expected 0-3)", ErrInvalidLevel, n)
		}
		return Level(n), nil
	}
	if s == "off" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if s == name {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

func (l Level) String() string {
	if l < LevelOff || l > LevelHigh {
		return strconv.Itoa(int(l))
	}
	return levelNames[l]
}

// Label returns the German display label (Aus/Leicht/Mittel/Stark).
func (l Level) Label() string {
	if l < LevelOff || l > LevelHigh {
		return strconv.Itoa(int(l))
	}
	return levelLabels[l]
}

// Index returns the level as a table index, clamped to 0..3.
func (l Level) Index() int {
	return int(ClampLevel(int(l)))
}

// Reason tags why a stimulus was requested outside its regular timer.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonReentry   Reason = "reentry"
	ReasonInterrupt Reason = "interrupt"
	ReasonRefocus   Reason = "refocus"
	ReasonBurst     Reason = "burst"
)

// Forced reports whether the reason bypasses suppression gates.
func (r Reason) Forced() bool {
	return r == ReasonReentry || r == ReasonInterrupt || r == ReasonRefocus
}

type VisualKind string

const (
	VisualFlashingLight      VisualKind = "flashingLight"
	VisualPeripheralMovement VisualKind = "peripheralMovement"
	VisualThoughtBubble      VisualKind = "thoughtBubble"
	VisualMonitorMicro       VisualKind = "monitorMicro"
	VisualScreenFlicker      VisualKind = "screenFlicker"
	VisualLargePopup         VisualKind = "largePopup"
	VisualMovingObject       VisualKind = "movingObject"
	VisualTint               VisualKind = "tint"
	VisualFocusTunnel        VisualKind = "focusTunnel"
	VisualSpotlight          VisualKind = "spotlight"
	VisualMonitorNotice      VisualKind = "monitorNotification"
)

// Distraction reports whether the kind counts toward the concurrent
// distraction cap. Feedback effects (tints, tunnels) do not.
func (k VisualKind) Distraction() bool {
	switch k {
	case VisualTint, VisualFocusTunnel, VisualSpotlight:
		return false
	}
	return true
}

type SoundKind string

const (
	SoundPenClick      SoundKind = "penClick"
	SoundKeyboard      SoundKind = "keyboard"
	SoundPhoneVibrate  SoundKind = "phoneVibrate"
	SoundNotification  SoundKind = "notification"
	SoundCough         SoundKind = "cough"
	SoundChairCreak    SoundKind = "chairCreak"
	SoundDoorSlam      SoundKind = "doorSlam"
	SoundSteps         SoundKind = "steps"
	SoundPCFan         SoundKind = "pcFan"
	SoundMouseClick    SoundKind = "mouseClick"
	SoundNeighborNoise SoundKind = "neighborNoise"
	SoundPaperRustle   SoundKind = "paperRustle"
	SoundWhisper       SoundKind = "whisper"
	SoundAnnouncement  SoundKind = "announcement"
	SoundShoppingCart  SoundKind = "shoppingCart"
	SoundCashRegister  SoundKind = "cashRegister"
	SoundKidCrying     SoundKind = "kidCrying"
	SoundFootsteps     SoundKind = "footsteps"
	SoundFridgeHum     SoundKind = "fridgeHum"
	SoundProductDrop   SoundKind = "productDrop"
	SoundChatter       SoundKind = "chatter"
	SoundCelebrate     SoundKind = "celebrate"
	SoundTaskToggle    SoundKind = "taskToggle"
	SoundElectricTick  SoundKind = "electricTick"
)
