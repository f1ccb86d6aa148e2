package classifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muliwe/package-sorter/internal/sorting"
)

// Recorder receives classification outcomes, typically for metrics
type Recorder interface {
	RecordSort(stack string)
	RecordSortError(kind string)
}

// Result contains the final classification of one package
type Result struct {
	RequestID string          `json:"request_id"`
	Timestamp time.Time       `json:"timestamp"`
	Package   sorting.Package `json:"package"`
	Volume    float64         `json:"volume"` // cm3
	Bulky     bool            `json:"bulky"`
	Heavy     bool            `json:"heavy"`
	Stack     sorting.Stack   `json:"stack"`
	Reason    string          `json:"reason"`
}

// Classifier routes packages to dispatch stacks and annotates each decision
type Classifier struct {
	recorder Recorder
	now      func() time.Time
}

// Config holds classifier configuration
type Config struct {
	// Recorder is notified of every outcome. Optional.
	Recorder Recorder
}

// DefaultConfig returns default classifier configuration
func DefaultConfig() Config {
	return Config{}
}

// New creates a new classifier
func New(cfg Config) *Classifier {
	return &Classifier{
		recorder: cfg.Recorder,
		now:      time.Now,
	}
}

// Classify validates p and returns its classification
func (c *Classifier) Classify(p sorting.Package) (Result, error) {
	if err := p.Validate(); err != nil {
		c.recordError(err)
		return Result{}, err
	}
	return c.result(p), nil
}

// ClassifyValues converts loosely typed measurements and classifies them
func (c *Classifier) ClassifyValues(width, height, length, mass any) (Result, error) {
	p, err := sorting.ParsePackage(width, height, length, mass)
	if err != nil {
		c.recordError(err)
		return Result{}, err
	}
	return c.result(p), nil
}

func (c *Classifier) result(p sorting.Package) Result {
	stack := p.Stack()
	if c.recorder != nil {
		c.recorder.RecordSort(stack.String())
	}

	return Result{
		RequestID: uuid.New().String(),
		Timestamp: c.now().UTC(),
		Package:   p,
		Volume:    p.Volume(),
		Bulky:     p.IsBulky(),
		Heavy:     p.IsHeavy(),
		Stack:     stack,
		Reason:    reason(p),
	}
}

func (c *Classifier) recordError(err error) {
	if c.recorder == nil {
		return
	}
	kind := sorting.ErrorKind(err)
	if kind == "" {
		kind = "unknown"
	}
	c.recorder.RecordSortError(kind)
}

// reason explains which thresholds were met
func reason(p sorting.Package) string {
	var bulky []string
	if v := p.Volume(); v >= sorting.VolumeThresholdCM3 {
		bulky = append(bulky, fmt.Sprintf("volume %s cm3 >= %d", num(v), sorting.VolumeThresholdCM3))
	}
	for _, d := range []struct {
		name  string
		value float64
	}{
		{sorting.FieldWidth, p.Width},
		{sorting.FieldHeight, p.Height},
		{sorting.FieldLength, p.Length},
	} {
		if d.value >= sorting.DimensionThresholdCM {
			bulky = append(bulky, fmt.Sprintf("%s %s cm >= %d", d.name, num(d.value), sorting.DimensionThresholdCM))
		}
	}

	var parts []string
	if len(bulky) > 0 {
		parts = append(parts, "bulky ("+strings.Join(bulky, ", ")+")")
	}
	if p.IsHeavy() {
		parts = append(parts, fmt.Sprintf("heavy (mass %s kg >= %d)", num(p.Mass), sorting.MassThresholdKG))
	}

	if len(parts) == 0 {
		return "Within all thresholds"
	}
	return strings.Join(parts, "; ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
