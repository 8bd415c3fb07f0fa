package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockLiveStore implements LiveStore for testing
type MockLiveStore struct {
	mu                sync.Mutex
	Counters          map[string]int64
	PublishedMessages []PublishedMessage
	PublishErr        error
}

type PublishedMessage struct {
	Channel string
	Message interface{}
}

func NewMockLiveStore() *MockLiveStore {
	return &MockLiveStore{
		Counters:          make(map[string]int64),
		PublishedMessages: make([]PublishedMessage, 0),
	}
}

func (m *MockLiveStore) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key]++
	return m.Counters[key], nil
}

func (m *MockLiveStore) Publish(ctx context.Context, channel string, message interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.PublishedMessages = append(m.PublishedMessages, PublishedMessage{
		Channel: channel,
		Message: message,
	})
	return nil
}

func (m *MockLiveStore) Published() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedMessage(nil), m.PublishedMessages...)
}

func (m *MockLiveStore) Counter(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counters[key]
}

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu         sync.Mutex
	Statements []string
	Queries    []string
	Rows       [][]interface{}
	ExecErr    error
	SendErr    error
}

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExecErr != nil {
		return m.ExecErr
	}
	m.Statements = append(m.Statements, query)
	return nil
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()
	return &MockBatch{conn: m}, nil
}

func (m *MockClickHouseConn) SentRows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]interface{}(nil), m.Rows...)
}

// MockBatch buffers appended rows and hands them to its connection on Send.
type MockBatch struct {
	driver.Batch

	conn *MockClickHouseConn
	rows [][]interface{}
	sent bool
}

func (m *MockBatch) IsSent() bool {
	return m.sent
}

func (m *MockBatch) Rows() int {
	return len(m.rows)
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) Send() error {
	m.conn.mu.Lock()
	defer m.conn.mu.Unlock()
	if m.conn.SendErr != nil {
		return m.conn.SendErr
	}
	if m.sent {
		return errors.New("batch already sent")
	}
	m.sent = true
	m.conn.Rows = append(m.conn.Rows, m.rows...)
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}
