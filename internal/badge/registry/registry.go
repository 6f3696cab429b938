// Package registry implements the soulbound badge registry: event records
// and their minter allow-lists, attendance-gated issuance, the enumeration
// views over issued badges, and the domain-event journal.
//
// A Registry is a single-writer state machine. It holds no locks; callers
// that share one across goroutines must serialize access (see the badge
// service). Every mutating operation either applies all of its changes or
// returns an error having applied none, except BatchIssue which commits each
// recipient independently.
package registry

//go:generate mockgen -source=registry.go -destination=mocks/mocks.go -package=mocks OwnershipLedger

import (
	"errors"
	"fmt"

	"soulbound/internal/badge/enumeration"
	"soulbound/internal/badge/models"
	id "soulbound/pkg/domain"
)

// OwnershipLedger is the base token-ownership capability. Mint must fail
// without side effects when the id is already owned.
type OwnershipLedger interface {
	Mint(owner id.Address, tokenID id.TokenID) error
	OwnerOf(tokenID id.TokenID) (id.Address, error)
	BalanceOf(owner id.Address) uint64
}

// BatchPolicy decides what BatchIssue does when the ledger rejects a mint.
type BatchPolicy string

const (
	// BatchSkip drops the recipient and carries on.
	BatchSkip BatchPolicy = "skip"
	// BatchHalt stops the batch and reports the failure alongside the ids
	// minted so far.
	BatchHalt BatchPolicy = "halt"
)

func (p BatchPolicy) Valid() bool {
	return p == BatchSkip || p == BatchHalt
}

type Config struct {
	Owner       id.Address
	Name        string
	Symbol      string
	BaseURI     string
	BatchPolicy BatchPolicy
}

type Registry struct {
	name        string
	symbol      string
	owner       id.Address
	paused      bool
	batchPolicy BatchPolicy

	ledger OwnershipLedger
	index  *enumeration.Index
	uri    URIResolver

	// events[i] holds event id i+1.
	events   []*models.Event
	minters  map[id.EventID]map[id.Address]bool
	attended map[id.EventID]map[id.Address]bool

	tokenEvents map[id.TokenID]id.EventID
	lastTokenID id.TokenID

	journal []models.JournalEntry
}

func New(cfg Config, ledger OwnershipLedger) (*Registry, error) {
	if ledger == nil {
		return nil, errors.New("ownership ledger is required")
	}
	if cfg.Owner == id.ZeroAddress {
		return nil, errors.New("owner is required")
	}
	policy := cfg.BatchPolicy
	if policy == "" {
		policy = BatchSkip
	}
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown batch policy %q", policy)
	}
	return &Registry{
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		owner:       cfg.Owner,
		batchPolicy: policy,
		ledger:      ledger,
		index:       enumeration.New(),
		uri:         NewURIResolver(cfg.BaseURI),
		minters:     make(map[id.EventID]map[id.Address]bool),
		attended:    make(map[id.EventID]map[id.Address]bool),
		tokenEvents: make(map[id.TokenID]id.EventID),
	}, nil
}

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) Symbol() string {
	return r.symbol
}

func (r *Registry) BatchPolicy() BatchPolicy {
	return r.batchPolicy
}

func (r *Registry) Status() models.RegistryStatus {
	return models.RegistryStatus{
		Name:        r.name,
		Symbol:      r.symbol,
		Owner:       r.owner,
		Paused:      r.paused,
		TotalSupply: r.index.TotalSupply(),
		LastEventID: r.LastEventID(),
		LastTokenID: r.lastTokenID,
	}
}
