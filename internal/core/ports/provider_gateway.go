package ports

import (
	"context"
	"net/http"
)

// ProviderRequest is a call to make on the identity provider on behalf of
// the client.
type ProviderRequest struct {
	Method string
	Header http.Header
	Body   []byte
}

// ProviderResult is the identity provider's answer.
type ProviderResult struct {
	Status int
	OK     bool
	// Body is the decoded JSON value (numbers as json.Number), the text for
	// text/* responses, or nil for anything else.
	Body   any
	Header http.Header
}

// ProviderGateway forwards requests to the identity provider. Response
// headers are appended to ex.Outbound.
type ProviderGateway interface {
	Forward(ctx context.Context, ex *Exchange, route string, r ProviderRequest) (*ProviderResult, error)
}
