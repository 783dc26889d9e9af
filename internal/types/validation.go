package types

// SyntaxResult reports structural problems in typesetting output.
type SyntaxResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// TruthfulnessResult reports technology terms a replacement introduced without support.
type TruthfulnessResult struct {
	Valid      bool     `json:"valid"`
	Fabricated []string `json:"fabricated"`
}
