package calculator

import (
	"scicalc/internal/evaluator"
	"scicalc/internal/history"
)

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
	// AngleMode is "rad" or "deg"; empty uses the server default.
	AngleMode string `json:"angle_mode,omitempty"`
}

// EvaluateResponse is the JSON response for every successful evaluation.
type EvaluateResponse struct {
	Operation  string              `json:"operation"`
	Expression string              `json:"expression"`
	Normalized string              `json:"normalized"`
	AngleMode  evaluator.AngleMode `json:"angle_mode"`
	Result     evaluator.Result    `json:"result"`
	// Display is the text a calculator screen shows, e.g. "2" or "0.5".
	Display string `json:"display"`
}

// BinaryRequest is the JSON body for the add, subtract, multiply and divide
// shortcuts.
type BinaryRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// BatchRequest is the JSON body for POST /calculator/batch.
type BatchRequest struct {
	AngleMode   string   `json:"angle_mode,omitempty"`
	Expressions []string `json:"expressions"`
}

// BatchItem is the outcome of one expression in a batch. Exactly one of
// Result or Error is set.
type BatchItem struct {
	Expression string            `json:"expression"`
	Result     *evaluator.Result `json:"result,omitempty"`
	Display    string            `json:"display,omitempty"`
	Error      string            `json:"error,omitempty"`
	Kind       string            `json:"kind,omitempty"`
}

// BatchResponse is the JSON response for POST /calculator/batch.
type BatchResponse struct {
	AngleMode evaluator.AngleMode `json:"angle_mode"`
	Items     []BatchItem         `json:"items"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
	Count   int             `json:"count"`
}

// ClearHistoryResponse is the JSON response for DELETE /calculator/history.
type ClearHistoryResponse struct {
	Cleared int `json:"cleared"`
}

// FunctionsResponse lists the names an expression may use.
type FunctionsResponse struct {
	Functions  []string `json:"functions"`
	Constants  []string `json:"constants"`
	AngleModes []string `json:"angle_modes"`
}
