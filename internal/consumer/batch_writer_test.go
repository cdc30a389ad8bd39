package consumer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/repository"
)

// MockClickRepository is a mock implementation of repository.ClickRepository
type MockClickRepository struct {
	mock.Mock
}

func (m *MockClickRepository) InsertBatch(ctx context.Context, events []*domain.ClickEvent) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

func (m *MockClickRepository) QueryEvents(ctx context.Context, filter repository.EventFilter) ([]*domain.ClickEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ClickEvent), args.Error(1)
}

func (m *MockClickRepository) InitSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClickRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClickRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

func createTestEnvelope(shortCode string) *Envelope {
	event := &domain.ClickEvent{
		ShortCode:  shortCode,
		CampaignID: "c1",
		Platform:   "ios",
		Timestamp:  testTimestamp,
	}

	ack := func(ctx context.Context) error {
		return nil
	}

	nack := func(ctx context.Context) error {
		return nil
	}

	return NewEnvelope(event, ack, nack)
}

func TestBatchWriter_Start_BatchSizeThreshold(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.ClickEvent) bool {
		return len(events) == 3
	})).Return(3, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	// Three envelopes trip the size threshold
	in <- createTestEnvelope("abc00001")
	in <- createTestEnvelope("abc00002")
	in <- createTestEnvelope("abc00003")

	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestBatchWriter_Start_TimeoutFlush(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 50 * time.Millisecond,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.ClickEvent) bool {
		return len(events) == 2
	})).Return(2, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	// Fewer envelopes than the size threshold; the ticker flushes them
	in <- createTestEnvelope("abc00001")
	in <- createTestEnvelope("abc00002")

	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_InsertFailureNacks(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	insertErr := errors.New("database connection error")
	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(0, insertErr)

	var acked, nacked atomic.Int32

	makeEnvelope := func(shortCode string) *Envelope {
		event := &domain.ClickEvent{ShortCode: shortCode, Timestamp: testTimestamp}
		return NewEnvelope(event,
			func(ctx context.Context) error { acked.Add(1); return nil },
			func(ctx context.Context) error { nacked.Add(1); return nil },
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- makeEnvelope("abc00001")
	in <- makeEnvelope("abc00002")

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), acked.Load())
	assert.Equal(t, int32(2), nacked.Load())
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_PartialInsertNacks(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 3,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	// Repository reports 2 of 3 rows written
	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.ClickEvent) bool {
		return len(events) == 3
	})).Return(2, nil)

	var nacked atomic.Int32

	makeEnvelope := func(shortCode string) *Envelope {
		event := &domain.ClickEvent{ShortCode: shortCode, Timestamp: testTimestamp}
		return NewEnvelope(event,
			func(ctx context.Context) error { return nil },
			func(ctx context.Context) error { nacked.Add(1); return nil },
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- makeEnvelope("abc00001")
	in <- makeEnvelope("abc00002")
	in <- makeEnvelope("abc00003")

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(3), nacked.Load())
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_SuccessAcksAll(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(2, nil)

	var acked atomic.Int32

	makeEnvelope := func(shortCode string) *Envelope {
		event := &domain.ClickEvent{ShortCode: shortCode, Timestamp: testTimestamp}
		return NewEnvelope(event,
			func(ctx context.Context) error { acked.Add(1); return nil },
			func(ctx context.Context) error { return nil },
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	in <- makeEnvelope("abc00001")
	in <- makeEnvelope("abc00002")

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(2), acked.Load())
	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_InputChannelClosedFlushes(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.ClickEvent) bool {
		return len(events) == 2
	})).Return(2, nil)

	ctx := context.Background()

	in := make(chan *Envelope, 5)
	done := make(chan bool)

	go func() {
		writer.Start(ctx, in)
		done <- true
	}()

	in <- createTestEnvelope("abc00001")
	in <- createTestEnvelope("abc00002")

	close(in)

	select {
	case <-done:
		// Shutdown completed
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Shutdown took too long after input channel closed")
	}

	mockRepo.AssertExpectations(t)
}

func TestBatchWriter_Start_EmptyBatchNotFlushed(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 10,
		FlushTimeout: 50 * time.Millisecond,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 5)
	go writer.Start(ctx, in)

	<-ctx.Done()

	mockRepo.AssertNotCalled(t, "InsertBatch")
}

func TestBatchWriter_Start_MultipleBatches(t *testing.T) {
	mockRepo := new(MockClickRepository)
	log := zap.NewNop()

	config := BatchWriterConfig{
		MaxBatchSize: 2,
		FlushTimeout: 10 * time.Second,
	}

	writer := NewBatchWriter(mockRepo, config, log)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(events []*domain.ClickEvent) bool {
		return len(events) == 2
	})).Return(2, nil).Times(2)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	in := make(chan *Envelope, 10)
	go writer.Start(ctx, in)

	in <- createTestEnvelope("abc00001")
	in <- createTestEnvelope("abc00002")
	in <- createTestEnvelope("abc00003")
	in <- createTestEnvelope("abc00004")

	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "InsertBatch", 2)
}
