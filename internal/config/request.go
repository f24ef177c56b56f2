package config

import "errors"

// CaseInsensitiveEnv switches matching to case-insensitive when present in the environment.
// Only presence matters; an empty value still counts.
const CaseInsensitiveEnv = "CASE_INSENSITIVE"

// ErrInvalidArguments is returned when the query or filename is missing.
var ErrInvalidArguments = errors.New("you must enter in this order: query and filename")

// Request is a resolved search request.
type Request struct {
	Query         string
	Filename      string
	CaseSensitive bool
}

// Resolve builds a Request from the process arguments (program name first) and an
// environment lookup such as os.LookupEnv. File existence is not checked here.
func Resolve(args []string, lookupEnv func(string) (string, bool)) (*Request, error) {
	if len(args) < 3 {
		return nil, ErrInvalidArguments
	}

	_, insensitive := lookupEnv(CaseInsensitiveEnv)

	return &Request{
		Query:         args[1],
		Filename:      args[2],
		CaseSensitive: !insensitive,
	}, nil
}
