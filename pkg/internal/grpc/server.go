package grpc

import (
	"net"

	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GatewayService is the health service name that follows the chat server push connection.
const GatewayService = "meeting.gateway"

type Server struct {
	srv    *grpc.Server
	health *health.Server
}

func NewGrpc() *Server {
	server := &Server{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
	}

	healthpb.RegisterHealthServer(server.srv, server.health)
	server.health.SetServingStatus(GatewayService, healthpb.HealthCheckResponse_NOT_SERVING)

	reflection.Register(server.srv)

	return server
}

// SetGatewayConnected is meant to be used as the gateway listener's state hook.
func (v *Server) SetGatewayConnected(connected bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if connected {
		status = healthpb.HealthCheckResponse_SERVING
	}
	v.health.SetServingStatus(GatewayService, status)
}

func (v *Server) Listen() error {
	listener, err := net.Listen("tcp", viper.GetString("grpc_bind"))
	if err != nil {
		return err
	}

	return v.Serve(listener)
}

func (v *Server) Serve(listener net.Listener) error {
	return v.srv.Serve(listener)
}

func (v *Server) Stop() {
	v.health.Shutdown()
	v.srv.GracefulStop()
}
