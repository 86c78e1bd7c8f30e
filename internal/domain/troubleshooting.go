package domain

// RootNodeID is the entry point of the troubleshooting tree.
const RootNodeID = "root"

// Adjustment tags the kind of change a solution recommends.
type Adjustment string

const (
	AdjustGrindFiner   Adjustment = "grind_finer"
	AdjustGrindCoarser Adjustment = "grind_coarser"
	AdjustTempHigher   Adjustment = "temp_higher"
	AdjustTempLower    Adjustment = "temp_lower"
	AdjustTimeLonger   Adjustment = "time_longer"
	AdjustTimeShorter  Adjustment = "time_shorter"
	AdjustRatioHigher  Adjustment = "ratio_higher"
	AdjustRatioLower   Adjustment = "ratio_lower"
	AdjustDoseMore     Adjustment = "dose_more"
	AdjustTechnique    Adjustment = "technique"
	AdjustEquipment    Adjustment = "equipment"
)

// Valid reports whether a is one of the known adjustments.
func (a Adjustment) Valid() bool {
	switch a {
	case AdjustGrindFiner, AdjustGrindCoarser, AdjustTempHigher, AdjustTempLower,
		AdjustTimeLonger, AdjustTimeShorter, AdjustRatioHigher, AdjustRatioLower,
		AdjustDoseMore, AdjustTechnique, AdjustEquipment:
		return true
	}
	return false
}

// Label returns a short human-readable description of the adjustment.
func (a Adjustment) Label() string {
	switch a {
	case AdjustGrindFiner:
		return "grind finer"
	case AdjustGrindCoarser:
		return "grind coarser"
	case AdjustTempHigher:
		return "raise temperature"
	case AdjustTempLower:
		return "lower temperature"
	case AdjustTimeLonger:
		return "brew longer"
	case AdjustTimeShorter:
		return "brew shorter"
	case AdjustRatioHigher:
		return "more water"
	case AdjustRatioLower:
		return "less water"
	case AdjustDoseMore:
		return "more coffee"
	case AdjustTechnique:
		return "technique"
	case AdjustEquipment:
		return "equipment"
	default:
		return string(a)
	}
}

// AnswerKind is the variant of an answer.
type AnswerKind int

const (
	// AnswerIncomplete carries only a label (placeholder content).
	AnswerIncomplete AnswerKind = iota
	// AnswerBranch points at another node.
	AnswerBranch
	// AnswerLeaf carries a solution.
	AnswerLeaf
	// AnswerInvalid has both a next node and a solution. Rejected at load.
	AnswerInvalid
)

// String returns a human-readable answer kind.
func (k AnswerKind) String() string {
	switch k {
	case AnswerIncomplete:
		return "incomplete"
	case AnswerBranch:
		return "branch"
	case AnswerLeaf:
		return "leaf"
	case AnswerInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Answer is one selectable option of a node.
type Answer struct {
	Label      string
	Next       string     // branch target node ID
	Solution   string     // leaf text
	Adjustment Adjustment // optional leaf tag
}

// Kind derives the answer variant from which fields are set.
func (a Answer) Kind() AnswerKind {
	switch {
	case a.Next != "" && a.Solution != "":
		return AnswerInvalid
	case a.Next != "":
		return AnswerBranch
	case a.Solution != "":
		return AnswerLeaf
	default:
		return AnswerIncomplete
	}
}

// Node is a question with its answers.
type Node struct {
	ID       string
	Question string
	Answers  []Answer
}

// IsTerminal reports whether every answer is a leaf.
func (n Node) IsTerminal() bool {
	if len(n.Answers) == 0 {
		return false
	}
	for _, a := range n.Answers {
		if a.Kind() != AnswerLeaf {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	n.Answers = append([]Answer(nil), n.Answers...)
	return n
}
