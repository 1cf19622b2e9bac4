package health

import (
	"context"
	"errors"
	"testing"
)

// Mock rowQuerier
type mockRowQuerier struct {
	getContextFunc func(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (m *mockRowQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return m.getContextFunc(ctx, dest, query, args...)
}

func TestDatabaseProbe_Success(t *testing.T) {
	db := &mockRowQuerier{
		getContextFunc: func(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
			*(dest.(*int)) = 1
			return nil
		},
	}

	probe := NewDatabaseProbe(db)
	if probe.Name() != "database" {
		t.Errorf("Expected name database, got %s", probe.Name())
	}
	if err := probe.Probe(context.Background()); err != nil {
		t.Errorf("Expected healthy probe, got %v", err)
	}
}

func TestDatabaseProbe_QueryError(t *testing.T) {
	db := &mockRowQuerier{
		getContextFunc: func(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
			return errors.New("connection refused")
		},
	}

	probe := NewDatabaseProbe(db)
	if err := probe.Probe(context.Background()); err == nil {
		t.Error("Expected probe failure on query error")
	}
}

func TestDatabaseProbe_UnexpectedResult(t *testing.T) {
	db := &mockRowQuerier{
		getContextFunc: func(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
			*(dest.(*int)) = 0
			return nil
		},
	}

	probe := NewDatabaseProbe(db)
	if err := probe.Probe(context.Background()); err == nil {
		t.Error("Expected probe failure on unexpected result value")
	}
}

func TestDatabaseProbe_BoundedAttempt(t *testing.T) {
	db := &mockRowQuerier{
		getContextFunc: func(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("Expected probe context to carry a deadline")
			}
			*(dest.(*int)) = 1
			return nil
		},
	}

	probe := NewDatabaseProbe(db)
	if err := probe.Probe(context.Background()); err != nil {
		t.Errorf("Expected healthy probe, got %v", err)
	}
}

// Mock ConnectionStater
type mockConnState struct {
	connected bool
}

func (m *mockConnState) Connected() bool { return m.connected }

func TestCacheProbe(t *testing.T) {
	probe := NewCacheProbe(&mockConnState{connected: true})
	if probe.Name() != "redis" {
		t.Errorf("Expected name redis, got %s", probe.Name())
	}
	if err := probe.Probe(context.Background()); err != nil {
		t.Errorf("Expected healthy probe, got %v", err)
	}

	probe = NewCacheProbe(&mockConnState{connected: false})
	if err := probe.Probe(context.Background()); err == nil {
		t.Error("Expected probe failure when connection flag is false")
	}
}
