// Package v2 предоставляет gRPC API ссылок brevly.v2.Links поверх того же
// сервиса, что и HTTP. Сообщения построены на well-known типах protobuf,
// поэтому описание сервиса зарегистрировано вручную.
package v2

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Totarae/brevly/internal/handlers"
	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName полное имя gRPC-сервиса.
const ServiceName = "brevly.v2.Links"

// LinksServer методы gRPC-сервиса ссылок.
type LinksServer interface {
	List(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Resolve(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	Delete(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// GRPCServer реализует LinksServer.
type GRPCServer struct {
	Service handlers.LinkService
	Logger  *zap.Logger
}

// NewGRPCServer создаёт gRPC-сервер поверх сервиса ссылок.
func NewGRPCServer(service handlers.LinkService, logger *zap.Logger) *GRPCServer {
	return &GRPCServer{Service: service, Logger: logger}
}

// Register регистрирует сервис на gRPC-сервере.
func Register(s grpc.ServiceRegistrar, srv LinksServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// List принимает {cursor?, page_size?} и возвращает страницу в формате HTTP API.
func (s *GRPCServer) List(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()

	var cursor *uuid.UUID
	if v, ok := fields["cursor"]; ok && v.GetStringValue() != "" {
		id, err := uuid.Parse(v.GetStringValue())
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "cursor must be a UUID")
		}
		cursor = &id
	}

	pageSize := model.DefaultPageSize
	if v, ok := fields["page_size"]; ok {
		n, ok := wholeNumber(v)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "page_size must be a whole number")
		}
		pageSize = n
	}

	page, err := s.Service.List(ctx, cursor, pageSize)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(page)
}

// wholeNumber извлекает из значения целое число в пределах int32.
func wholeNumber(v *structpb.Value) (int, bool) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	n := num.NumberValue
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// Create принимает {original_url, short_url} и возвращает созданную запись.
func (s *GRPCServer) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	link, err := s.Service.Create(ctx, model.CreateLinkRequest{
		OriginalURL: fields["original_url"].GetStringValue(),
		ShortURL:    fields["short_url"].GetStringValue(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(link)
}

// Resolve увеличивает счётчик переходов и возвращает {original_url, access_count}.
func (s *GRPCServer) Resolve(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	resolved, err := s.Service.Resolve(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(resolved)
}

// Delete удаляет ссылку и возвращает её id.
func (s *GRPCServer) Delete(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	id, err := s.Service.Delete(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(id.String()), nil
}

// toStruct переводит значение в structpb.Struct через его JSON-представление,
// так что поля совпадают с HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return st, nil
}

func toStatus(err error) error {
	code := model.CodeOf(err)

	var grpcCode codes.Code
	switch code {
	case model.CodeNotFound:
		grpcCode = codes.NotFound
	case model.CodeDuplicateURL:
		grpcCode = codes.AlreadyExists
	case model.CodeValidation:
		grpcCode = codes.InvalidArgument
	case model.CodeServerError, model.CodeUnknown:
		grpcCode = codes.Internal
	default:
		grpcCode = codes.Unknown
	}
	return status.Error(grpcCode, fmt.Sprintf("%s: %s", code, code.Message()))
}

// FromStatus восстанавливает доменную ошибку из ответа gRPC.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var code model.ErrorCode
	switch st.Code() {
	case codes.NotFound:
		code = model.CodeNotFound
	case codes.AlreadyExists:
		code = model.CodeDuplicateURL
	case codes.InvalidArgument:
		code = model.CodeValidation
	case codes.Internal:
		code = model.CodeServerError
	default:
		code = model.CodeUnknown
	}
	return &model.Error{Code: code, Err: err}
}
