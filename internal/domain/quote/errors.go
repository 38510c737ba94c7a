package quote

import "fmt"

// UploadFormatError reports an uploaded order sheet that cannot be read as
// (code, quantity) rows. Row is 1-based as shown in a spreadsheet, 0 when the
// problem is not tied to a row.
type UploadFormatError struct {
	Row    int
	Reason string
	Err    error
}

func (e *UploadFormatError) Error() string {
	msg := e.Reason
	if e.Row > 0 {
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UploadFormatError) Unwrap() error { return e.Err }

// ValidationError reports a quote request that cannot be priced.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return "invalid quote request: " + e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }
