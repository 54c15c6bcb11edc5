package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// fakeReader реализует ReaderInterface и отдаёт заранее подготовленные сообщения и ошибки.
type fakeReader struct {
	// messages — список сообщений, которые нужно отдать в порядке индексов.
	messages []kafka.Message
	// errors — ошибки, которые нужно возвращать после того, как закончатся messages.
	errors []error
	// idx указывает, сколько раз уже вызывался ReadMessage.
	idx int
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if f.idx < len(f.messages) {
		msg := f.messages[f.idx]
		f.idx++
		return msg, nil
	}
	errIdx := f.idx - len(f.messages)
	if errIdx < len(f.errors) {
		err := f.errors[errIdx]
		f.idx++
		return kafka.Message{}, err
	}
	// Иначе — возвращаем context.Canceled, чтобы Consumer.Consume вышел
	return kafka.Message{}, context.Canceled
}

func (f *fakeReader) Close() error {
	return nil
}

func TestConsumer_Consume_ValidEvent(t *testing.T) {
	evt := Event{
		ProfileID: "test-profile",
		Type:      EventTypeSearch,
		ProductID: 42,
		CityCodes: []string{"ALA", "AST"},
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(evt)
	msg := kafka.Message{Value: payload}

	// fakeReader вернёт сначала валидное сообщение, потом context.Canceled, чтобы прервать цикл.
	fr := &fakeReader{
		messages: []kafka.Message{msg},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	var called bool
	var received Event

	handler := func(ctx context.Context, e Event) error {
		called = true
		received = e
		return nil
	}

	consumer.Consume(context.Background(), handler)

	if !called {
		t.Fatal("ожидали, что handler будет вызван")
	}
	if received.ProfileID != evt.ProfileID || received.Type != evt.Type {
		t.Errorf("handler получил не то событие: %+v", received)
	}
	if len(received.CityCodes) != 2 {
		t.Errorf("ожидали 2 кода города, получили %d", len(received.CityCodes))
	}
}

func TestConsumer_Consume_InvalidJSONIsSkipped(t *testing.T) {
	fr := &fakeReader{
		messages: []kafka.Message{{Value: []byte("not-json")}},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	var called bool
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	if called {
		t.Fatal("handler не должен вызываться для битого сообщения")
	}
}

func TestConsumer_Consume_HandlerErrorDoesNotStopLoop(t *testing.T) {
	first, _ := json.Marshal(Event{ProfileID: "p1", Type: EventTypeOfferUpdated, OfferID: 1})
	second, _ := json.Marshal(Event{ProfileID: "p2", Type: EventTypeOfferUpdated, OfferID: 2})

	fr := &fakeReader{
		messages: []kafka.Message{{Value: first}, {Value: second}},
		errors:   []error{context.Canceled},
	}

	logger := zapTestLogger(t)
	consumer := &Consumer{
		Reader: fr,
		Logger: logger,
	}

	var seen []int64
	consumer.Consume(context.Background(), func(ctx context.Context, e Event) error {
		seen = append(seen, e.OfferID)
		if e.OfferID == 1 {
			return errors.New("boom")
		}
		return nil
	})

	if len(seen) != 2 {
		t.Fatalf("ожидали обработку обоих событий, обработано %d", len(seen))
	}
}
