package delivery_grpc

import (
	"fmt"
	"log/slog"
	"net"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	ports "blog-post-service/internal/domain/ports/output"
)

// Server exposes the standard gRPC health service so orchestrators can probe
// the process.
type Server struct {
	server  *grpc.Server
	health  *health.Server
	address string
	port    int
	log     ports.Logger
}

func NewServer(address string, port int, log ports.Logger, metrics ports.MetricsProvider) *Server {
	server := grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			UnaryLoggerInterceptor(log, metrics),
			grpc_recovery.UnaryServerInterceptor(),
		)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	return &Server{
		server:  server,
		health:  healthServer,
		address: address,
		port:    port,
		log:     log,
	}
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}
	s.log.Info("Starting gRPC server", slog.Int("port", s.port))
	return s.Serve(lis)
}

// Serve marks the service as serving and blocks until the server stops.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return s.server.Serve(lis)
}

// Shutdown reports NOT_SERVING to watchers before draining connections.
func (s *Server) Shutdown() error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}
