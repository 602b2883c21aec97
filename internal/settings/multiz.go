package settings

import (
	"math"
	"slices"
)

// StepMethod selects how a per-level step accumulates with distance from
// the current z-level.
type StepMethod string

const (
	MethodAdd     StepMethod = "Add"     // step times distance
	MethodMagnify StepMethod = "Magnify" // compounded per level
	MethodNone    StepMethod = "None"
)

var StepMethods = []StepMethod{MethodAdd, MethodMagnify, MethodNone}

func (m StepMethod) Valid() bool {
	return slices.Contains(StepMethods, m)
}

// BrightnessOp is applied to levels above or below the current one.
type BrightnessOp string

const (
	OpDarken  BrightnessOp = "Darken"
	OpLighten BrightnessOp = "Lighten"
	OpNone    BrightnessOp = "None"
)

var BrightnessOps = []BrightnessOp{OpDarken, OpLighten, OpNone}

func (o BrightnessOp) Valid() bool {
	return slices.Contains(BrightnessOps, o)
}

const (
	MaxLevelsAround     = 10
	DefaultLevelsAround = 1
	DefaultStepPercent  = 20.0
)

// MultiZLevelSettings controls drawing neighbouring z-levels under and
// over the one being edited. Steps are percentages in [0, 100].
type MultiZLevelSettings struct {
	Enabled            bool         `yaml:"enabled"`
	LevelsAbove        int          `yaml:"levels_above"`
	LevelsBelow        int          `yaml:"levels_below"`
	BrightnessMethod   StepMethod   `yaml:"brightness_method"`
	BrightnessStep     float64      `yaml:"brightness_step"`
	BrightnessAbove    BrightnessOp `yaml:"brightness_operation_above"`
	BrightnessBelow    BrightnessOp `yaml:"brightness_operation_below"`
	TransparencyMethod StepMethod   `yaml:"transparency_method"`
	TransparencyStep   float64      `yaml:"transparency_step"`
}

func (z *MultiZLevelSettings) SetEnabled(v bool) { z.Enabled = v }

// SetLevelsAbove clamps n to [0, MaxLevelsAround].
func (z *MultiZLevelSettings) SetLevelsAbove(n int) {
	z.LevelsAbove = clamp(n, 0, MaxLevelsAround)
}

// SetLevelsBelow clamps n to [0, MaxLevelsAround].
func (z *MultiZLevelSettings) SetLevelsBelow(n int) {
	z.LevelsBelow = clamp(n, 0, MaxLevelsAround)
}

// SetBrightnessStep clamps percent to [0, 100]; NaN stores 0.
func (z *MultiZLevelSettings) SetBrightnessStep(percent float64) {
	z.BrightnessStep = clampPercent(percent)
}

// SetTransparencyStep clamps percent to [0, 100]; NaN stores 0.
func (z *MultiZLevelSettings) SetTransparencyStep(percent float64) {
	z.TransparencyStep = clampPercent(percent)
}

func (z *MultiZLevelSettings) SetBrightnessMethod(m StepMethod) error {
	if !m.Valid() {
		return invalidMethod(KeyBrightnessMethod, m)
	}
	z.BrightnessMethod = m
	return nil
}

func (z *MultiZLevelSettings) SetTransparencyMethod(m StepMethod) error {
	if !m.Valid() {
		return invalidMethod(KeyTransparencyMethod, m)
	}
	z.TransparencyMethod = m
	return nil
}

func (z *MultiZLevelSettings) SetBrightnessAbove(op BrightnessOp) error {
	if !op.Valid() {
		return invalidOp(KeyBrightnessAbove, op)
	}
	z.BrightnessAbove = op
	return nil
}

func (z *MultiZLevelSettings) SetBrightnessBelow(op BrightnessOp) error {
	if !op.Valid() {
		return invalidOp(KeyBrightnessBelow, op)
	}
	z.BrightnessBelow = op
	return nil
}

// BrightnessFactor is the color multiplier for a level offset levels away
// from the current one; positive offsets are above. 1 leaves colors as
// they are.
func (z MultiZLevelSettings) BrightnessFactor(offset int) float64 {
	op := z.BrightnessAbove
	if offset < 0 {
		op = z.BrightnessBelow
	}
	if offset == 0 || op == OpNone {
		return 1
	}
	var adjustment float64
	distance := math.Abs(float64(offset))
	step := z.BrightnessStep / 100
	switch z.BrightnessMethod {
	case MethodAdd:
		adjustment = step * distance
	case MethodMagnify:
		adjustment = 1 - math.Pow(1-step, distance)
	default:
		return 1
	}
	switch op {
	case OpDarken:
		return max(0, 1-adjustment)
	case OpLighten:
		return 1 + adjustment
	}
	return 1
}

// TransparencyFactor is the opacity for a level offset levels away from
// the current one, in [0, 1].
func (z MultiZLevelSettings) TransparencyFactor(offset int) float64 {
	if offset == 0 {
		return 1
	}
	distance := math.Abs(float64(offset))
	step := z.TransparencyStep / 100
	switch z.TransparencyMethod {
	case MethodAdd:
		return max(0, 1-step*distance)
	case MethodMagnify:
		return math.Pow(1-step, distance)
	}
	return 1
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 100)
}

func invalidMethod(key string, m StepMethod) *InvalidValueError {
	allowed := make([]string, len(StepMethods))
	for i, known := range StepMethods {
		allowed[i] = string(known)
	}
	return &InvalidValueError{Key: key, Value: string(m), Allowed: allowed}
}

func invalidOp(key string, op BrightnessOp) *InvalidValueError {
	allowed := make([]string, len(BrightnessOps))
	for i, known := range BrightnessOps {
		allowed[i] = string(known)
	}
	return &InvalidValueError{Key: key, Value: string(op), Allowed: allowed}
}
