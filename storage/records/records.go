// Package recordrepos implements the domain repositories on top of the
// external record store contract.
package recordrepos

import (
	"strings"

	"github.com/trezcool/classtrack/core"
)

// firstResult extracts the single written record out of a store write
// envelope, translating failure forms into a PersistenceError.
func firstResult(collection string, res core.WriteResult, err error) (core.Record, error) {
	if err != nil {
		return nil, core.NewPersistenceError(collection, "", err)
	}
	if !res.Success {
		return nil, core.NewPersistenceError(collection, res.Message)
	}
	for _, rr := range res.Results {
		if rr.Success {
			return rr.Data, nil
		}
		return nil, core.NewPersistenceError(collection, resultMessage(rr))
	}
	return nil, core.NewPersistenceError(collection, "store returned no results")
}

// resultMessage flattens a per-record failure into one readable message.
func resultMessage(rr core.RecordResult) string {
	if len(rr.Errors) == 0 {
		return rr.Message
	}
	parts := make([]string, 0, len(rr.Errors))
	for _, issue := range rr.Errors {
		parts = append(parts, issue.FieldLabel+": "+issue.Message)
	}
	if rr.Message != "" {
		parts = append(parts, rr.Message)
	}
	return strings.Join(parts, "; ")
}

func checkFetch(collection string, res core.FetchResult, err error) error {
	if err != nil {
		return core.NewPersistenceError(collection, "", err)
	}
	if !res.Success {
		return core.NewPersistenceError(collection, res.Message)
	}
	return nil
}

func checkDelete(collection string, res core.DeleteResult, err error) error {
	if err != nil {
		return core.NewPersistenceError(collection, "", err)
	}
	if !res.Success {
		return core.NewPersistenceError(collection, res.Message)
	}
	for _, rr := range res.Results {
		if !rr.Success {
			return core.NewPersistenceError(collection, resultMessage(rr))
		}
	}
	return nil
}
