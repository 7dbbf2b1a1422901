// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/rpc"
)

// EndpointRequester sends JSON-RPC requests to the methods of a single
// service.
type EndpointRequester struct {
	req  rpc.EndpointRequester
	base string
}

func New(uri, base string) *EndpointRequester {
	return &EndpointRequester{
		req:  rpc.NewEndpointRequester(uri),
		base: base,
	}
}

// SendRequest calls [base].[method].
func (e *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...rpc.Option,
) error {
	return e.req.SendRequest(ctx, fmt.Sprintf("%s.%s", e.base, method), params, reply, options...)
}
