package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError `json:"response"`
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string   `json:"message"`
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
}

// SubmitResponse is returned when a submission was kept locally. Warning is set when the backend
// rejected it.
type SubmitResponse struct {
	Record  interface{} `json:"record"`
	Warning string      `json:"warning,omitempty"`
}
