package tracking

//go:generate protoc -I ../../../../api/proto --go_out=../../../.. --go_opt=module=bidding-service --go-grpc_out=../../../.. --go-grpc_opt=module=bidding-service ../../../../api/proto/tracking/v1/package.proto
