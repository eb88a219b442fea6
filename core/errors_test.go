package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetDomainError(t *testing.T) {
	base := NewDomainError(ModuleModel, ErrorCodeTrainTimeout, "model: deadline exceeded")

	tests := []struct {
		name string
		err  error
		want *DomainError
	}{
		{name: "direct", err: base, want: base},
		{name: "wrapped", err: fmt.Errorf("service: %w", base), want: base},
		{name: "doubly wrapped", err: fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", base)), want: base},
		{name: "plain error", err: errors.New("boom"), want: nil},
		{name: "nil", err: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetDomainError(tt.err); got != tt.want {
				t.Errorf("GetDomainError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	timeout := NewDomainError(ModuleService, ErrorCodeTrainTimeout, "service: timeout")
	if !IsTrainTimeout(timeout) {
		t.Error("IsTrainTimeout(direct) = false")
	}
	if !IsTrainTimeout(fmt.Errorf("pipeline: %w", timeout)) {
		t.Error("IsTrainTimeout(wrapped) = false")
	}
	if IsTrainTimeout(ErrStoreUnavailable) {
		t.Error("IsTrainTimeout(unavailable) = true")
	}

	if !IsNotFound(ErrStoreNotFound) {
		t.Error("IsNotFound(ErrStoreNotFound) = false")
	}
	if !IsStoreNotFound(fmt.Errorf("redis: %w", ErrStoreNotFound)) {
		t.Error("IsStoreNotFound(wrapped) = false")
	}
}

func TestHasInteracted(t *testing.T) {
	var empty *RecommendContext
	if empty.HasInteracted("p1") {
		t.Error("nil context must report no interactions")
	}

	rctx := &RecommendContext{UserID: "u1", Interacted: map[string]struct{}{"p1": {}}}
	if !rctx.HasInteracted("p1") {
		t.Error("HasInteracted(p1) = false")
	}
	if rctx.HasInteracted("p2") {
		t.Error("HasInteracted(p2) = true")
	}
}
