package models

// AnalysisResult is the canonical shape shared by every AI operation
// (document analysis, SWOT, chat). Fields a given operation does not
// produce are left empty rather than introducing per-operation shapes.
type AnalysisResult struct {
	Summary    string     `json:"summary"`
	Facts      string     `json:"facts"`
	Judgments  Judgments  `json:"judgments"`
	NextSteps  StringList `json:"next_steps"`
	Strengths  StringList `json:"strengths"`
	Weaknesses StringList `json:"weaknesses"`
}
