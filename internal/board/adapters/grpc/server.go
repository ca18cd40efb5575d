// Package grpc содержит gRPC сервер со службой проверки состояния хранилищ.
package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"noteboard/pkg/logger"
)

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	address  string
	listener net.Listener
}

// New создает новый экземпляр gRPC сервера.
func New(address string) *Server {
	return &Server{
		server:  grpc.NewServer(),
		address: address,
	}
}

// RegisterService регистрирует gRPC сервисы.
func (s *Server) RegisterService(registerFunc func(*grpc.Server)) {
	registerFunc(s.server)
	reflection.Register(s.server)
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	log.Info(ctx, "gRPC server started", zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()

	return nil
}

// Addr возвращает адрес, на котором слушает сервер, после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, "stopping gRPC server")

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("graceful stop: %w", ctx.Err())
	}
}
