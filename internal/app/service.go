package app

import (
	"fmt"

	"github.com/anchorleg/anchorleg/internal/store"
)

type Service struct {
	Config *Config
	Store  store.AuditStore
	Lock   *AccountLock
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	auditStore, err := NewStore(config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	lock, err := NewAccountLock(config)
	if err != nil {
		return nil, fmt.Errorf("failed to init account lock: %w", err)
	}

	return &Service{
		Config: config,
		Store:  auditStore,
		Lock:   lock,
	}, nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Lock.Close(); err != nil {
		errs = append(errs, fmt.Errorf("lock: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
