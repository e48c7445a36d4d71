package core

import (
	"encoding/json"
	"io"

	"permsweep/internal/types"
)

// CLIResponse is the structured JSON envelope for --json output.
//
// Schema:
//
//	{
//	  "success": true|false,
//	  "report": { ... },        // The full run report (omitted on error)
//	  "error": {                // Present only on failure to start the sweep
//	    "code": "ROOT_UNREADABLE",
//	    "message": "Human-readable description"
//	  }
//	}
type CLIResponse struct {
	Success bool             `json:"success"`
	Report  *types.RunReport `json:"report,omitempty"`
	Summary *types.Summary   `json:"summary,omitempty"`
	Error   *CLIErrorDetail  `json:"error,omitempty"`
}

// CLIErrorDetail carries a machine-readable code and a human-readable message.
type CLIErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes for structured JSON error responses.
const (
	ErrCodeRootUnreadable = "ROOT_UNREADABLE"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// EmitJSONReport writes a successful CLIResponse for the report to w.
func EmitJSONReport(w io.Writer, report types.RunReport) error {
	summary := report.Summary()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Success: true, Report: &report, Summary: &summary})
}

// EmitJSONError writes an error CLIResponse to w.
func EmitJSONError(w io.Writer, code, message string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{
		Success: false,
		Error:   &CLIErrorDetail{Code: code, Message: message},
	})
}
