package domain

// SegmentCapacity is how many segments fit in one tube.
const SegmentCapacity = 4

// SegmentHeight is the display height, in percent, of one segment.
const SegmentHeight = 25

// Color names one liquid in the palette.
type Color string

var palette = [...]Color{
	"red",
	"blue",
	"yellow",
	"green",
	"purple",
	"lightgreen",
	"lightblue",
	"orange",
	"brown",
	"pink",
	"cyan",
	"magenta",
}

// Palette returns a copy of the fixed 12-color palette in generation order.
func Palette() []Color {
	out := make([]Color, len(palette))
	copy(out, palette[:])
	return out
}

// LiquidSegment is one quarter of a tube.
type LiquidSegment struct {
	Color  Color `json:"color"`
	Height int   `json:"height"`
}

// TestTube holds segments from bottom to top.
type TestTube struct {
	ID      int             `json:"id"`
	Liquids []LiquidSegment `json:"liquids"`
}

func (t TestTube) Len() int      { return len(t.Liquids) }
func (t TestTube) IsEmpty() bool { return len(t.Liquids) == 0 }
func (t TestTube) IsFull() bool  { return len(t.Liquids) >= SegmentCapacity }

// Top returns the topmost segment, if any.
func (t TestTube) Top() (LiquidSegment, bool) {
	if len(t.Liquids) == 0 {
		return LiquidSegment{}, false
	}
	return t.Liquids[len(t.Liquids)-1], true
}

// IsSolved reports a full tube of a single color.
func (t TestTube) IsSolved() bool {
	if len(t.Liquids) != SegmentCapacity {
		return false
	}
	first := t.Liquids[0].Color
	for _, l := range t.Liquids[1:] {
		if l.Color != first {
			return false
		}
	}
	return true
}

func (t TestTube) Clone() TestTube {
	out := TestTube{ID: t.ID, Liquids: make([]LiquidSegment, len(t.Liquids), max(len(t.Liquids), SegmentCapacity))}
	copy(out.Liquids, t.Liquids)
	return out
}

// CloneTubes deep-copies a board.
func CloneTubes(tubes []TestTube) []TestTube {
	out := make([]TestTube, len(tubes))
	for i, t := range tubes {
		out[i] = t.Clone()
	}
	return out
}

// LevelConfig is a generated level. The core never mutates it after generation.
type LevelConfig struct {
	LevelNumber int        `json:"levelNumber"`
	Colors      []Color    `json:"colors"`
	Tubes       []TestTube `json:"tubes"`
	EmptyTubes  int        `json:"emptyTubes"`
	Difficulty  Difficulty `json:"difficulty"`
	Moves       int        `json:"moves"`
	Description string     `json:"description"`
}

// Move transfers the top run of one tube onto another.
type Move struct {
	From int `json:"fromTubeId"`
	To   int `json:"toTubeId"`
}

// Generation is a level tagged with how generation ended.
type Generation struct {
	Level    LevelConfig `json:"level"`
	Outcome  Outcome     `json:"outcome"`
	Attempts int         `json:"attempts"`
	Seed     int64       `json:"seed"`
}

// Hint is a scored recommended move.
type Hint struct {
	Move          Move `json:"move"`
	Score         int  `json:"score"`
	Count         int  `json:"count"`
	CompletesTube bool `json:"completesTube,omitempty"`
}

// ValidationResult lists every violation found in a level.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// LevelStats summarises a level for tooling and UI badges.
type LevelStats struct {
	TotalTubes        int           `json:"totalTubes"`
	FilledTubes       int           `json:"filledTubes"`
	EmptyTubes        int           `json:"emptyTubes"`
	ColorDistribution map[Color]int `json:"colorDistribution"`
	DifficultyScore   int           `json:"difficultyScore"`
}

// SavedLevel is a persisted level-pack entry.
type SavedLevel struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	Level     LevelConfig `json:"level"`
	Outcome   Outcome     `json:"outcome"`
	CreatedAt int64       `json:"createdAt,omitempty"`
}

// SavedLevelMeta is a lightweight listing entry.
type SavedLevelMeta struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	LevelNumber int        `json:"levelNumber"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   int64      `json:"createdAt"`
}
