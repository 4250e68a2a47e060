package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// channel часть *amqp.Channel, нужная для публикации
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// session соединение с открытым каналом
type session struct {
	conn   io.Closer
	ch     channel
	closed <-chan *amqp.Error // Закрывается вместе с каналом, в том числе при обрыве соединения
}

func (s *session) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *session) close() error {
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

type dialFunc func(url, exchange string) (*session, error)

// Publisher публикует события бронирований в topic exchange RabbitMQ.
// После закрытия канала (например, при перезапуске брокера) переподключается при следующей публикации.
type Publisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	dial     dialFunc
	sess     *session
}

// NewPublisher подключается к RabbitMQ и объявляет durable topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, dial: dialSession}
	sess, err := p.dial(url, exchange)
	if err != nil {
		return nil, err
	}
	p.sess = sess
	return p, nil
}

func dialSession(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %v", ErrConnect, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}
	return &session{
		conn:   conn,
		ch:     ch,
		closed: ch.NotifyClose(make(chan *amqp.Error, 1)),
	}, nil
}

// Publish сериализует payload в JSON и публикует его с ключом маршрутизации routingKey
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
		Body:         body,
	}

	// Публикация в один канал из нескольких горутин сериализуется
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureSession(); err != nil {
		return err
	}

	err = p.sess.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) {
		// Канал закрылся до того, как пришло уведомление: одна попытка с новым каналом
		p.drop()
		if err := p.ensureSession(); err != nil {
			return err
		}
		err = p.sess.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}
	return nil
}

// ensureSession открывает новое соединение, если текущего нет или оно закрыто. Вызывается под mu.
func (p *Publisher) ensureSession() error {
	if p.sess != nil && !p.sess.isClosed() {
		return nil
	}
	p.drop()

	sess, err := p.dial(p.url, p.exchange)
	if err != nil {
		return err
	}
	p.sess = sess
	return nil
}

func (p *Publisher) drop() {
	if p.sess != nil {
		_ = p.sess.close()
		p.sess = nil
	}
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sess == nil {
		return nil
	}
	err := p.sess.close()
	p.sess = nil
	return err
}

// NoopPublisher используется, когда RabbitMQ выключен
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
