package relay

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/formywor/join-gateway/config"
)

// defaultJoinPaths are the suffixes tried, in order, when only a single
// upstream base URL is configured.
var defaultJoinPaths = []string{"/api/join", "/v1/join", "/join"}

// BuildCandidates produces the ordered attempt sequence for one join
// request. It is a pure function: the same configuration, code and name
// always yield the same list, and it performs no I/O.
//
// Every target expands into exactly two descriptors, POST before GET. An
// explicit target list therefore yields 2N descriptors in list order; a
// single base URL yields six, walking the default join paths in order.
// Neither configured yields an empty sequence.
func BuildCandidates(cfg config.UpstreamConfig, code, name string) []AttemptDescriptor {
	targets := cfg.Targets
	if len(targets) == 0 && cfg.BaseURL != "" {
		base := strings.TrimRight(cfg.BaseURL, "/")
		targets = make([]string, 0, len(defaultJoinPaths))
		for _, path := range defaultJoinPaths {
			targets = append(targets, base+path)
		}
	}

	descriptors := make([]AttemptDescriptor, 0, 2*len(targets))
	for _, target := range targets {
		descriptors = append(descriptors,
			AttemptDescriptor{
				Label:   http.MethodPost + " " + target,
				Method:  http.MethodPost,
				Target:  target,
				Payload: &JoinPayload{Code: code, Name: name},
			},
			AttemptDescriptor{
				Label:  http.MethodGet + " " + target,
				Method: http.MethodGet,
				Target: target + "?" + joinQuery(code, name),
			},
		)
	}
	return descriptors
}

// joinQuery percent-encodes code and name as GET query parameters. The
// caller-provided values themselves are never mutated.
func joinQuery(code, name string) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("name", name)
	return q.Encode()
}
