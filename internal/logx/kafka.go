package logx

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaWriter ships log lines to a Kafka topic. Writes never block the
// caller: lines go through a buffered inbox drained by a background loop,
// and are dropped when the inbox is full. Log delivery must not stall
// request handling.
type KafkaWriter struct {
	w       *kafka.Writer
	key     []byte
	inbox   chan kafka.Message
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaWriter(brokers []string, topic, service string, buf int) *KafkaWriter {
	kw := &KafkaWriter{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
		key:     []byte(service), // one partition per service keeps lines ordered
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
	go kw.loop()
	return kw
}

func (k *KafkaWriter) loop() {
	for m := range k.inbox {
		_ = k.w.WriteMessages(context.Background(), m)
	}
	_ = k.w.Close()
	close(k.closeCh)
}

// Write drops the line once the writer is closed instead of panicking on
// the closed inbox.
func (k *KafkaWriter) Write(p []byte) (int, error) {
	line := make([]byte, len(p))
	copy(line, p)

	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.closed {
		return len(p), nil
	}
	select {
	case k.inbox <- kafka.Message{Key: k.key, Value: line, Time: time.Now()}:
	default:
	}
	return len(p), nil
}

// Close drains the inbox and closes the writer. Safe to call twice.
func (k *KafkaWriter) Close() {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return
	}
	k.closed = true
	close(k.inbox)
	k.mu.Unlock()

	<-k.closeCh
}
