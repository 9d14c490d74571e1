// Package committer collects Spanner mutations into a CommitPlan and applies
// them atomically.
//
// Repositories build mutations but never apply them. A use case gathers the
// mutations it needs into one plan and hands it to the Committer:
//
//	plan := committer.NewPlan()
//	mut, err := ruleRepo.InsertMut(rule)
//	if err != nil {
//	    return err
//	}
//	plan.Add(mut)
//	return comm.Apply(ctx, plan)
//
// ApplyIfExists additionally checks, inside the same read-write transaction,
// that the row being changed is still there.
package committer

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// ErrRowNotFound is returned by ApplyIfExists when the guarded row is missing.
var ErrRowNotFound = errors.New("row not found")

// Applier applies CommitPlans. Use cases depend on this instead of *Committer.
type Applier interface {
	Apply(ctx context.Context, plan *CommitPlan) error
	ApplyIfExists(ctx context.Context, guard RowGuard, plan *CommitPlan) error
}

// RowGuard names the row ApplyIfExists requires to be present.
type RowGuard struct {
	Table     string
	KeyColumn string
	Key       spanner.Key
}

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyIfExists executes the plan in a read-write transaction that first reads
// the guarded row. If the row is gone it returns ErrRowNotFound and writes nothing.
func (c *Committer) ApplyIfExists(ctx context.Context, guard RowGuard, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if _, err := txn.ReadRow(ctx, guard.Table, guard.Key, []string{guard.KeyColumn}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return ErrRowNotFound
			}
			return fmt.Errorf("failed to read %s row: %w", guard.Table, err)
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			return ErrRowNotFound
		}
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}
