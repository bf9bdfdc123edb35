// internal/queue/amqp.go
package queue

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// AMQPQueue bridges the Queue interface onto RabbitMQ. Topics map to
// durable queues; payloads travel as JSON, and subscribers receive the
// raw body bytes.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPQueue(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	queue, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return q.ch.Publish(
		"",         // exchange
		queue.Name, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Subscribe consumes the topic's queue and hands each message body to
// the handler. A nil return acks; an error nacks without requeue so a
// poison message cannot spin forever.
func (q *AMQPQueue) Subscribe(topic string, handler func(payload any) error) error {
	queue, err := q.ch.QueueDeclare(
		topic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				// Retry once via requeue; a delivery that already
				// failed twice is dropped so a poison message
				// cannot spin forever.
				if !d.Redelivered {
					log.Println("⚠️ Handler failed, requeueing message:", err)
					d.Nack(false, true)
					continue
				}
				log.Println("⚠️ Handler failed again, dropping message:", err)
				d.Nack(false, false)
				continue
			}
			d.Ack(false)
		}
	}()

	return nil
}

func (q *AMQPQueue) Close() {
	if q.ch != nil {
		q.ch.Close()
	}
	if q.conn != nil {
		q.conn.Close()
	}
}

var _ Queue = (*AMQPQueue)(nil)
