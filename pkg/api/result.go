package api

// Result is the outcome of one backend call: either the raw response body or an error.
type Result struct {
	Body string
	Err  *UploadError
}

// OK reports whether the call succeeded
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the user-facing error text, or "" on success
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message()
}

// Success builds a successful Result
func Success(body string) Result {
	return Result{Body: body}
}

// Failure builds a failed Result
func Failure(err *UploadError) Result {
	return Result{Err: err}
}
