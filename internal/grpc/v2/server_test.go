package v2_test

import (
	"context"
	"math"
	"net"
	"testing"

	v2 "github.com/Totarae/brevly/internal/grpc/v2"
	"github.com/Totarae/brevly/internal/model"
	"github.com/Totarae/brevly/internal/service"
	"github.com/Totarae/brevly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func newClient(t *testing.T) (*v2.LinksClient, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(v2.LoggingInterceptor(logger)))
	svc := service.NewLinkService(storage.NewMemoryStorage(), zap.NewNop())
	v2.Register(srv, v2.NewGRPCServer(svc, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return v2.NewLinksClient(conn), logs
}

func createReq(t *testing.T, originalURL, shortURL string) *structpb.Struct {
	t.Helper()

	req, err := structpb.NewStruct(map[string]any{"original_url": originalURL, "short_url": shortURL})
	require.NoError(t, err)
	return req
}

func TestGRPC_Lifecycle(t *testing.T) {
	client, logs := newClient(t)
	ctx := context.Background()

	created, err := client.Create(ctx, createReq(t, "https://go.dev", "go-dev"))
	require.NoError(t, err)
	assert.Equal(t, "go-dev", created.GetFields()["short_url"].GetStringValue())
	assert.Zero(t, created.GetFields()["access_count"].GetNumberValue())

	resolved, err := client.Resolve(ctx, wrapperspb.String("go-dev"))
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", resolved.GetFields()["original_url"].GetStringValue())
	assert.Equal(t, float64(1), resolved.GetFields()["access_count"].GetNumberValue())

	page, err := client.List(ctx, &structpb.Struct{})
	require.NoError(t, err)
	assert.Equal(t, float64(1), page.GetFields()["total"].GetNumberValue())
	assert.Len(t, page.GetFields()["items"].GetListValue().GetValues(), 1)
	_, isNull := page.GetFields()["next_cursor"].GetKind().(*structpb.Value_NullValue)
	assert.True(t, isNull)

	deleted, err := client.Delete(ctx, wrapperspb.String("go-dev"))
	require.NoError(t, err)
	assert.Equal(t, created.GetFields()["id"].GetStringValue(), deleted.GetValue())

	assert.Equal(t, 4, logs.FilterMessage("gRPC Request").Len())
}

func TestGRPC_ErrorCodes(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	_, err := client.Create(ctx, createReq(t, "https://go.dev", "go-dev"))
	require.NoError(t, err)

	_, err = client.Create(ctx, createReq(t, "https://go.dev/doc", "go-dev"))
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
	assert.ErrorIs(t, v2.FromStatus(err), model.ErrDuplicateURL)

	_, err = client.Create(ctx, createReq(t, "not a url", "Bad Slug"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Resolve(ctx, wrapperspb.String("missing"))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.ErrorIs(t, v2.FromStatus(err), model.ErrNotFound)

	_, err = client.Delete(ctx, wrapperspb.String("missing"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	badCursor, err := structpb.NewStruct(map[string]any{"cursor": "nope"})
	require.NoError(t, err)
	_, err = client.List(ctx, badCursor)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	zeroPage, err := structpb.NewStruct(map[string]any{"page_size": 0})
	require.NoError(t, err)
	_, err = client.List(ctx, zeroPage)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	for _, size := range []any{2.5, math.NaN(), math.Inf(1), 1e20, "10"} {
		req, err := structpb.NewStruct(map[string]any{"page_size": size})
		require.NoError(t, err)
		_, err = client.List(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%v", size)
	}

	three, err := structpb.NewStruct(map[string]any{"page_size": 3})
	require.NoError(t, err)
	_, err = client.List(ctx, three)
	assert.NoError(t, err)
}
