package relay

// JoinPayload is the body sent on POST attempts. The code and name are
// carried exactly as received from the caller, never re-encoded.
type JoinPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// AttemptDescriptor is one planned upstream attempt. Descriptors are
// immutable once built and consumed exactly once by the executor.
type AttemptDescriptor struct {
	// Label is the human-readable identifier of the attempt (method + URL,
	// without query parameters so access codes stay out of logs).
	Label string

	// Method is http.MethodPost or http.MethodGet.
	Method string

	// Target is the full URL to call, including query parameters for GET.
	Target string

	// Payload is the POST body; nil for GET attempts.
	Payload *JoinPayload
}

// AttemptOutcome is the normalized result of executing one descriptor.
type AttemptOutcome struct {
	// Succeeded is true iff the upstream responded with a 2xx status.
	Succeeded bool

	// HTTPStatus is the upstream status code, 0 when no response arrived.
	HTTPStatus int

	// Body is the parsed JSON value, the raw response text when the body
	// is not valid JSON, or nil when the body was empty or unreadable.
	Body interface{}

	// Label identifies the descriptor this outcome belongs to.
	Label string

	// FailureReason is set only for network-level failures (connection
	// errors, deadline expiry). Upstream rejections carry a status instead,
	// so "reachable but rejected" stays distinguishable from "unreachable".
	FailureReason string
}

// FallbackResult is the terminal value of a dispatch. Exactly one is
// produced per inbound request.
type FallbackResult struct {
	// Joined is true when some candidate succeeded.
	Joined bool

	// Status is the upstream status on success; on failure it is the last
	// known upstream status, or 502 when no upstream ever responded.
	Status int

	// Via is the label of the winning descriptor.
	Via string

	// Data is the winning attempt's body on success, or the last failing
	// attempt's body on exhaustion (nil when none was captured).
	Data interface{}

	// ErrorMessage describes the failure, naming the last attempted
	// candidate. Empty on success.
	ErrorMessage string
}

// failureReasonUnreachable marks attempts that never produced a response.
const failureReasonUnreachable = "timeout-or-network"
