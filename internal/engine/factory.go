package engine

import (
	"options-wizard/internal/interfaces"
	"options-wizard/internal/store"
)

func New(cfg *store.Config, advisor interfaces.Advisor, pricer interfaces.Pricer) (interfaces.Engine, error) {
	eng, err := newEngine(cfg, advisor, pricer)
	if err != nil {
		return nil, err
	}
	return eng, nil
}
