package model

// GradeConfig is the display metadata for one curriculum grade.
type GradeConfig struct {
	Name  string
	Focus string
}

// ExtendedGrade is split across two snapshot fragments; loaders concatenate
// the second fragment's categories after the first.
const ExtendedGrade = "11"

// GradeConfigs is the static grade table. Loaded once, never mutated.
var GradeConfigs = map[string]GradeConfig{
	"5":  {Name: "Western Hemisphere", Focus: "Geography, history, and cultures of the Western Hemisphere"},
	"7":  {Name: "US & NY History", Focus: "United States and New York State history from colonial times through Reconstruction"},
	"9":  {Name: "Global History I", Focus: "World history from ancient civilizations through the Renaissance"},
	"10": {Name: "Global History II", Focus: "World history from the Age of Enlightenment to the present"},
	"11": {Name: "US History", Focus: "United States history from colonization through the modern era"},
}

// GradeOrder is the display ordering of grade numbers.
var GradeOrder = []string{"5", "7", "9", "10", "11"}
