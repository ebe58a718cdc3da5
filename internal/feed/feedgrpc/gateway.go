// Package feedgrpc reads user feeds from the FeedService gRPC backend.
//
// Messages travel as google.protobuf.Struct so the service contract needs no
// generated stubs on this side.
package feedgrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/inkwell/internal/feed"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GetUserFeedMethod is the full gRPC method name.
const GetUserFeedMethod = "/inkwell.feed.v1.FeedService/GetUserFeed"

// Gateway implements feed.Fetcher over a gRPC connection.
type Gateway struct {
	conn grpc.ClientConnInterface
}

// NewGateway wraps conn. A nil conn yields a gateway that always reports the
// backend unavailable.
func NewGateway(conn grpc.ClientConnInterface) Gateway {
	return Gateway{conn: conn}
}

// FetchUserFeed implements feed.Fetcher.
func (g Gateway) FetchUserFeed(ctx context.Context, q feed.Query) (feed.Result, error) {
	if g.conn == nil {
		return feed.Result{}, fmt.Errorf("%w: feed grpc client is not configured", feed.ErrUnavailable)
	}
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return feed.Result{}, err
	}

	req, err := structpb.NewStruct(map[string]any{
		"sort_by":  q.SortBy,
		"username": q.Username,
		"limit":    float64(q.Limit),
	})
	if err != nil {
		return feed.Result{}, fmt.Errorf("build feed request: %w", err)
	}
	resp := &structpb.Struct{}
	if err := g.conn.Invoke(ctx, GetUserFeedMethod, req, resp); err != nil {
		return feed.Result{}, mapStatusError(err)
	}
	return feed.Result{Posts: decodePosts(resp)}, nil
}

func decodePosts(resp *structpb.Struct) []feed.Post {
	posts := []feed.Post{}
	list := resp.GetFields()["posts_data"].GetListValue()
	for _, value := range list.GetValues() {
		fields := value.GetStructValue().GetFields()
		if fields == nil {
			continue
		}
		posts = append(posts, feed.Post{
			ID:       int64(fields["id"].GetNumberValue()),
			Title:    fields["title"].GetStringValue(),
			Author:   fields["author"].GetStringValue(),
			Category: fields["category"].GetStringValue(),
			Permlink: fields["permlink"].GetStringValue(),
			Children: int(fields["children"].GetNumberValue()),
		})
	}
	return posts
}

// mapStatusError maps a gRPC status onto the feed sentinel errors. The
// ErrorInfo reason, when present, is kept in the message.
func mapStatusError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", feed.ErrUnavailable, err)
	}
	msg := strings.TrimSpace(st.Message())
	if reason := errorReason(st); reason != "" {
		msg = reason + ": " + msg
	}
	var sentinel error
	switch st.Code() {
	case codes.InvalidArgument, codes.OutOfRange, codes.FailedPrecondition:
		sentinel = feed.ErrInvalidQuery
	case codes.NotFound:
		sentinel = feed.ErrNotFound
	case codes.Canceled:
		return errors.Join(context.Canceled, errors.New(msg))
	default:
		sentinel = feed.ErrUnavailable
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}

func errorReason(st *status.Status) string {
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return strings.TrimSpace(info.GetReason())
		}
	}
	return ""
}
