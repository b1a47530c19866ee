package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/Aidin1998/pxegate/internal/pxe"
	"github.com/Aidin1998/pxegate/pkg/metrics"
	"go.uber.org/zap"
)

const (
	OperationConnect      = "connect"
	OperationListAccounts = "list_accounts"
)

// GatewayService defines the ledger operations exposed over HTTP
type GatewayService interface {
	Connect(ctx context.Context) (*pxe.NodeInfo, error)
	ListAccounts(ctx context.Context) ([]pxe.CompleteAddress, error)
	Connected() bool
}

// Service implements GatewayService on top of a PXE session
type Service struct {
	logger      *zap.Logger
	session     *pxe.Session
	callTimeout time.Duration
}

// NewService creates a new GatewayService. A zero callTimeout leaves
// operations bounded only by the caller's context.
func NewService(logger *zap.Logger, session *pxe.Session, callTimeout time.Duration) GatewayService {
	return &Service{
		logger:      logger.Named("gateway"),
		session:     session,
		callTimeout: callTimeout,
	}
}

// Connect creates the session handle if needed and asks the node who it is
func (s *Service) Connect(ctx context.Context) (info *pxe.NodeInfo, err error) {
	defer observe(OperationConnect, &err)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	client, err := s.session.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	info, err = client.NodeInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s.logger.Info(fmt.Sprintf("Connected to chain %d", info.ChainID), zap.Uint64("chain_id", info.ChainID))
	return info, nil
}

// ListAccounts logs the addresses of every account registered on the node.
// It never dials; without a prior Connect it fails with pxe.ErrNotConnected.
func (s *Service) ListAccounts(ctx context.Context) (accounts []pxe.CompleteAddress, err error) {
	defer observe(OperationListAccounts, &err)
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	client, err := s.session.Client()
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts, err = client.RegisteredAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	addresses := make([]string, len(accounts))
	for i, account := range accounts {
		addresses[i] = account.Address.String()
	}
	s.logger.Info("User accounts", zap.Strings("addresses", addresses))
	return accounts, nil
}

func (s *Service) Connected() bool {
	return s.session.Connected()
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

func observe(operation string, err *error) {
	result := "ok"
	if *err != nil {
		result = "error"
	}
	metrics.GatewayOperations.WithLabelValues(operation, result).Inc()
}
