//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_test
package parcel

import (
	"context"

	"google.golang.org/grpc"

	proto "bidding-service/internal/generated/proto/tracking"
)

type client interface {
	GetPackage(ctx context.Context, in *proto.GetPackageRequest, opts ...grpc.CallOption) (*proto.GetPackageResponse, error)
}
