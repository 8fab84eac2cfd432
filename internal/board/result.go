package board

import "github.com/reclaimit/reclaimit/internal/model"

// Result is the uniform envelope every board operation resolves to. An
// operation never returns an error: callers branch on Success, and any
// failure from an underlying component is flattened verbatim into Error.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthResult is the outcome of a register or login operation.
type AuthResult struct {
	Result
	// NeedsVerification marks a login that failed only because the email
	// has not been confirmed; User then carries the unverified identity.
	NeedsVerification bool            `json:"needsVerification,omitempty"`
	User              *model.Identity `json:"user,omitempty"`
}

// AccountResult carries a profile document.
type AccountResult struct {
	Result
	Account *model.Account `json:"data,omitempty"`
}

// ItemResult carries one report document.
type ItemResult struct {
	Result
	Item *model.LostItem `json:"data,omitempty"`
}

// ItemsResult carries a list of report documents.
type ItemsResult struct {
	Result
	Items []model.LostItem `json:"data"`
}

// CreateResult carries the id assigned to a new report.
type CreateResult struct {
	Result
	ID string `json:"id,omitempty"`
}

func ok() Result { return Result{Success: true} }

func fail(err error) Result { return Result{Error: err.Error()} }

func failMsg(msg string) Result { return Result{Error: msg} }
