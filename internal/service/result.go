package service

import (
	"context"
	"errors"

	"github.com/pageza/recipebrowser/internal/model"
	"github.com/pageza/recipebrowser/internal/spoonacular"
)

// Source tells whether a result came from Spoonacular or from demo data
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Reason explains why a result fell back to demo data
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoCredential Reason = "no_credential"
	ReasonKeyStore     Reason = "key_store"
	ReasonTransport    Reason = "transport"
	ReasonStatus       Reason = "status"
	ReasonDecode       Reason = "decode"
	ReasonTimeout      Reason = "timeout"
	ReasonCanceled     Reason = "canceled"
)

// Outcome is the tag shared by search and detail results
type Outcome struct {
	Source Source
	Reason Reason
	// Err is the absorbed cause of a fallback. It is nil for live results
	// and for the no-credential mode, which is not an error.
	Err error
}

// IsFallback reports whether the payload is demo data
func (o Outcome) IsFallback() bool {
	return o.Source == SourceFallback
}

// SearchResult is the outcome of a search plus the recipes to display
type SearchResult struct {
	Outcome
	Recipes []model.Recipe
}

// DetailResult is the outcome of a detail lookup plus the record to display
type DetailResult struct {
	Outcome
	Recipe model.Detail
}

func live() Outcome {
	return Outcome{Source: SourceLive}
}

func fallback(reason Reason, err error) Outcome {
	return Outcome{Source: SourceFallback, Reason: reason, Err: err}
}

// classify maps a remote call error onto a fallback reason
func classify(err error) Reason {
	var statusErr *spoonacular.StatusError
	var decodeErr *spoonacular.DecodeError
	var timeoutErr interface{ Timeout() bool }

	switch {
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &statusErr):
		return ReasonStatus
	case errors.As(err, &decodeErr):
		return ReasonDecode
	case errors.As(err, &timeoutErr) && timeoutErr.Timeout():
		return ReasonTimeout
	default:
		return ReasonTransport
	}
}
