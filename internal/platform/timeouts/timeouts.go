// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the feed gRPC service.
const GRPCDial = 2 * time.Second

// FeedRequest caps one outbound feed fetch, whatever the backend.
const FeedRequest = 4 * time.Second

// CacheOp caps a single cache read or write so a slow cache never stalls a
// sidebar render.
const CacheOp = 250 * time.Millisecond

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
