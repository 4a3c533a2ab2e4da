package grpc

// proto.go defines the gRPC server interface derived from
// crediflow/origination/v1/origination.proto. This file is a stand-in for
// buf-generated code; messages mirror the application DTOs and travel over
// the JSON codec until `buf generate` replaces it.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/crediflow/origination/internal/application/dto"
)

// Message types, one per RPC.
type (
	CreateApplicationRequest   = dto.CreateApplicationRequest
	UpdateLoanTermsRequest     = dto.UpdateLoanTermsRequest
	SubmitApplicationRequest   = dto.SubmitApplicationRequest
	ChangeStatusRequest        = dto.ChangeStatusRequest
	AssignApplicationRequest   = dto.AssignApplicationRequest
	ApproveApplicationRequest  = dto.ApproveApplicationRequest
	RejectApplicationRequest   = dto.RejectApplicationRequest
	CancelApplicationRequest   = dto.CancelApplicationRequest
	SendCounterOfferRequest    = dto.SendCounterOfferRequest
	RespondCounterOfferRequest = dto.RespondCounterOfferRequest
	MarkSyncedRequest          = dto.MarkSyncedRequest
	SimulateLoanRequest        = dto.SimulateLoanRequest
	GetApplicationRequest      = dto.GetApplicationRequest
	ListApplicationsRequest    = dto.ListApplicationsRequest
	GetStatusHistoryRequest    = dto.GetApplicationRequest

	ApplicationResponse = dto.ApplicationResponse
	SimulationResponse  = dto.SimulationResponse
)

// ListApplicationsResponse wraps the applications of one applicant.
type ListApplicationsResponse struct {
	Applications []dto.ApplicationResponse `json:"applications"`
}

// StatusHistoryResponse wraps the status-history ledger of one application.
type StatusHistoryResponse struct {
	Entries []dto.StatusHistoryEntryResponse `json:"entries"`
}

// OriginationServiceServer is the server API for OriginationService.
// It mirrors the proto interface from crediflow.origination.v1.OriginationService.
type OriginationServiceServer interface {
	CreateApplication(context.Context, *CreateApplicationRequest) (*ApplicationResponse, error)
	UpdateLoanTerms(context.Context, *UpdateLoanTermsRequest) (*ApplicationResponse, error)
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error)
	ChangeStatus(context.Context, *ChangeStatusRequest) (*ApplicationResponse, error)
	AssignApplication(context.Context, *AssignApplicationRequest) (*ApplicationResponse, error)
	ApproveApplication(context.Context, *ApproveApplicationRequest) (*ApplicationResponse, error)
	RejectApplication(context.Context, *RejectApplicationRequest) (*ApplicationResponse, error)
	CancelApplication(context.Context, *CancelApplicationRequest) (*ApplicationResponse, error)
	SendCounterOffer(context.Context, *SendCounterOfferRequest) (*ApplicationResponse, error)
	RespondCounterOffer(context.Context, *RespondCounterOfferRequest) (*ApplicationResponse, error)
	MarkSynced(context.Context, *MarkSyncedRequest) (*ApplicationResponse, error)
	SimulateLoan(context.Context, *SimulateLoanRequest) (*SimulationResponse, error)
	GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error)
	ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error)
	GetStatusHistory(context.Context, *GetStatusHistoryRequest) (*StatusHistoryResponse, error)
	mustEmbedUnimplementedOriginationServiceServer()
}

// UnimplementedOriginationServiceServer provides forward-compatible default implementations.
type UnimplementedOriginationServiceServer struct{}

func (UnimplementedOriginationServiceServer) CreateApplication(context.Context, *CreateApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateApplication not implemented")
}
func (UnimplementedOriginationServiceServer) UpdateLoanTerms(context.Context, *UpdateLoanTermsRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateLoanTerms not implemented")
}
func (UnimplementedOriginationServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedOriginationServiceServer) ChangeStatus(context.Context, *ChangeStatusRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ChangeStatus not implemented")
}
func (UnimplementedOriginationServiceServer) AssignApplication(context.Context, *AssignApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssignApplication not implemented")
}
func (UnimplementedOriginationServiceServer) ApproveApplication(context.Context, *ApproveApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApproveApplication not implemented")
}
func (UnimplementedOriginationServiceServer) RejectApplication(context.Context, *RejectApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RejectApplication not implemented")
}
func (UnimplementedOriginationServiceServer) CancelApplication(context.Context, *CancelApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelApplication not implemented")
}
func (UnimplementedOriginationServiceServer) SendCounterOffer(context.Context, *SendCounterOfferRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendCounterOffer not implemented")
}
func (UnimplementedOriginationServiceServer) RespondCounterOffer(context.Context, *RespondCounterOfferRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RespondCounterOffer not implemented")
}
func (UnimplementedOriginationServiceServer) MarkSynced(context.Context, *MarkSyncedRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MarkSynced not implemented")
}
func (UnimplementedOriginationServiceServer) SimulateLoan(context.Context, *SimulateLoanRequest) (*SimulationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SimulateLoan not implemented")
}
func (UnimplementedOriginationServiceServer) GetApplication(context.Context, *GetApplicationRequest) (*ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedOriginationServiceServer) ListApplications(context.Context, *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListApplications not implemented")
}
func (UnimplementedOriginationServiceServer) GetStatusHistory(context.Context, *GetStatusHistoryRequest) (*StatusHistoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatusHistory not implemented")
}
func (UnimplementedOriginationServiceServer) mustEmbedUnimplementedOriginationServiceServer() {}

// RegisterOriginationServiceServer registers the OriginationServiceServer with the gRPC server.
func RegisterOriginationServiceServer(s *grpclib.Server, srv OriginationServiceServer) {
	s.RegisterService(&_OriginationService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

const serviceName = "crediflow.origination.v1.OriginationService"

//nolint:revive // gRPC handler registration
var _OriginationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OriginationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateApplication", Handler: unaryHandler(OriginationServiceServer.CreateApplication, "CreateApplication")},
		{MethodName: "UpdateLoanTerms", Handler: unaryHandler(OriginationServiceServer.UpdateLoanTerms, "UpdateLoanTerms")},
		{MethodName: "SubmitApplication", Handler: unaryHandler(OriginationServiceServer.SubmitApplication, "SubmitApplication")},
		{MethodName: "ChangeStatus", Handler: unaryHandler(OriginationServiceServer.ChangeStatus, "ChangeStatus")},
		{MethodName: "AssignApplication", Handler: unaryHandler(OriginationServiceServer.AssignApplication, "AssignApplication")},
		{MethodName: "ApproveApplication", Handler: unaryHandler(OriginationServiceServer.ApproveApplication, "ApproveApplication")},
		{MethodName: "RejectApplication", Handler: unaryHandler(OriginationServiceServer.RejectApplication, "RejectApplication")},
		{MethodName: "CancelApplication", Handler: unaryHandler(OriginationServiceServer.CancelApplication, "CancelApplication")},
		{MethodName: "SendCounterOffer", Handler: unaryHandler(OriginationServiceServer.SendCounterOffer, "SendCounterOffer")},
		{MethodName: "RespondCounterOffer", Handler: unaryHandler(OriginationServiceServer.RespondCounterOffer, "RespondCounterOffer")},
		{MethodName: "MarkSynced", Handler: unaryHandler(OriginationServiceServer.MarkSynced, "MarkSynced")},
		{MethodName: "SimulateLoan", Handler: unaryHandler(OriginationServiceServer.SimulateLoan, "SimulateLoan")},
		{MethodName: "GetApplication", Handler: unaryHandler(OriginationServiceServer.GetApplication, "GetApplication")},
		{MethodName: "ListApplications", Handler: unaryHandler(OriginationServiceServer.ListApplications, "ListApplications")},
		{MethodName: "GetStatusHistory", Handler: unaryHandler(OriginationServiceServer.GetStatusHistory, "GetStatusHistory")},
	},
	Streams: []grpclib.StreamDesc{},
}

// unaryHandler builds the method handler for one RPC, threading the request
// through any registered interceptor.
func unaryHandler[Req any, Resp any](
	method func(OriginationServiceServer, context.Context, *Req) (*Resp, error),
	name string,
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + serviceName + "/" + name
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(OriginationServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return method(srv.(OriginationServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
