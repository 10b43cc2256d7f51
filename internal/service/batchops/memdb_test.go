package batchops_test

import (
	"context"
	"time"

	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
	"github.com/pticevod/poultry-ledger/internal/service/batchops"
)

// memDB is an in-memory stand-in for the postgres-backed stores. InTx
// snapshots state up front and restores it when fn fails, so rollback
// semantics match the real thing.
type memDB struct {
	batches    map[int64]*batches.Batch
	products   map[int64]*products.Product
	activities []*activities.Activity

	nextBatchID    int64
	nextProductID  int64
	nextActivityID int64
}

func newMemDB() *memDB {
	return &memDB{
		batches:  map[int64]*batches.Batch{},
		products: map[int64]*products.Product{},
	}
}

func (d *memDB) InTx(_ context.Context, fn func(batchops.Stores) error) error {
	backupBatches := make(map[int64]*batches.Batch, len(d.batches))
	for id, b := range d.batches {
		cp := *b
		backupBatches[id] = &cp
	}
	backupProducts := make(map[int64]*products.Product, len(d.products))
	for id, p := range d.products {
		cp := *p
		backupProducts[id] = &cp
	}
	backupActivities := len(d.activities)

	err := fn(batchops.Stores{
		Batches:    &memBatchStore{d: d},
		Products:   &memProductStore{d: d},
		Activities: &memActivityStore{d: d},
	})
	if err != nil {
		d.batches = backupBatches
		d.products = backupProducts
		d.activities = d.activities[:backupActivities]
	}
	return err
}

func (d *memDB) addBatch(b batches.Batch) *batches.Batch {
	d.nextBatchID++
	b.ID = d.nextBatchID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	d.batches[b.ID] = &b
	return &b
}

func (d *memDB) addProduct(p products.Product) *products.Product {
	d.nextProductID++
	p.ID = d.nextProductID
	p.Active = true
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	d.products[p.ID] = &p
	return &p
}

type memBatchStore struct{ d *memDB }

func (s *memBatchStore) Create(_ context.Context, b *batches.Batch) error {
	s.d.nextBatchID++
	b.ID = s.d.nextBatchID
	b.CreatedAt = time.Now()
	cp := *b
	s.d.batches[b.ID] = &cp
	return nil
}

func (s *memBatchStore) GetByID(_ context.Context, id int64, _ bool) (*batches.Batch, error) {
	b, ok := s.d.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (s *memBatchStore) GetByName(_ context.Context, name string) (*batches.Batch, error) {
	for _, b := range s.d.batches {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memBatchStore) UpdateName(_ context.Context, id int64, name string) (*batches.Batch, error) {
	b := s.d.batches[id]
	b.Name = name
	cp := *b
	return &cp, nil
}

func (s *memBatchStore) UpdateCounts(_ context.Context, id int64, male, female, unsexed int) error {
	b := s.d.batches[id]
	b.MaleCount, b.FemaleCount, b.UnsexedCount = male, female, unsexed
	return nil
}

func (s *memBatchStore) UpdateStatus(_ context.Context, id int64, status batches.Status) error {
	s.d.batches[id].Status = status
	return nil
}

type memProductStore struct{ d *memDB }

func (s *memProductStore) GetByID(_ context.Context, id int64, _ bool) (*products.Product, error) {
	p, ok := s.d.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memProductStore) UpdateStock(_ context.Context, id int64, stock float64) error {
	s.d.products[id].Stock = stock
	return nil
}

type memActivityStore struct{ d *memDB }

func (s *memActivityStore) Insert(_ context.Context, a *activities.Activity) error {
	s.d.nextActivityID++
	a.ID = s.d.nextActivityID
	a.Type = a.Payload.ActivityType()
	a.CreatedAt = time.Now()
	cp := *a
	s.d.activities = append(s.d.activities, &cp)
	return nil
}

// recordingNotifier captures alerts for assertions.
type recordingNotifier struct {
	mortality []string
	lowStock  []string
}

func (n *recordingNotifier) MortalityRegistered(batchName string, deaths int, sex string, population int) {
	n.mortality = append(n.mortality, batchName)
}

func (n *recordingNotifier) LowProductStock(productName string, stock float64, unit string) {
	n.lowStock = append(n.lowStock, productName)
}
