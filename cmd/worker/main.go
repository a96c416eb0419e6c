// The worker consumes generation jobs from a durable queue. External systems
// drop a snapshot export on the queue and get the same draft handling as the
// CLI and the HTTP API; with a replyTo queue they receive the result envelope
// back.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/internal/config"
	"github.com/kitawerk/dienstplan/pkg/core/services"
	"github.com/kitawerk/dienstplan/pkg/db"
	"github.com/kitawerk/dienstplan/pkg/filestore"
	"github.com/kitawerk/dienstplan/pkg/logging"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// generateJob is the message format on the generation queue
type generateJob struct {
	Snapshot json.RawMessage `json:"snapshot"`
	DryRun   bool            `json:"dryRun,omitempty"`
	ReplyTo  string          `json:"replyTo,omitempty"`
}

// generateResult is the envelope published to the reply queue
type generateResult struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Schedule *db.Schedule `json:"schedule,omitempty"`
}

func main() {
	appEnv, err := config.LoadEnv()
	if err != nil {
		os.Stderr.WriteString("failed to load environment: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.InitLogger(appEnv.Environment, appEnv.LogDir)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	switch {
	case errors.Is(err, config.ErrNotFound):
		logger.Debug("No config file found, using defaults")
		cfg = config.Default()
	case err != nil:
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	store, err := filestore.NewStore(appEnv.DataDir)
	if err != nil {
		logger.Fatal("Failed to open schedule store", zap.Error(err))
	}

	conn, err := amqp.Dial(appEnv.AMQP.URL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", zap.Error(err))
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(
		appEnv.AMQP.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		logger.Fatal("Failed to declare queue", zap.Error(err))
	}

	deliveries, err := ch.Consume(
		queue.Name,
		"",    // consumer tag assigned by the broker
		false, // autoAck off, jobs are acked after the store write
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					logger.Error("Delivery channel closed, stopping")
					return
				}
				handleDelivery(ctx, ch, store, cfg, logger, delivery)
			}
		}
	}()

	logger.Info("Worker ready", zap.String("queue", queue.Name))
	<-sigChan

	logger.Info("Shutting down worker")
	cancel()
	wg.Wait()
	logger.Info("Worker stopped")
}

// handleDelivery runs one generation job. Malformed jobs are dropped, store
// failures are requeued, and both outcomes are reported to the reply queue
// when one is named.
func handleDelivery(ctx context.Context, ch *amqp.Channel, store *filestore.Store, cfg *config.Config, logger *zap.Logger, delivery amqp.Delivery) {
	var job generateJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		logger.Error("Failed to decode job", zap.Error(err))
		_ = delivery.Nack(false, false)
		return
	}

	snap, err := snapshot.Parse(job.Snapshot)
	if err != nil {
		logger.Error("Job carries an invalid snapshot", zap.Error(err))
		reply(ctx, ch, logger, job, delivery, generateResult{Success: false, Message: err.Error()})
		_ = delivery.Nack(false, false)
		return
	}

	logger.Info("Processing generation job",
		zap.String("week", snap.Week),
		zap.Bool("dry_run", job.DryRun))

	schedule, err := services.GenerateSchedule(ctx, store, cfg, logger, snap, job.DryRun)
	if err != nil {
		logger.Error("Generation failed, requeueing job", zap.Error(err))
		_ = delivery.Nack(false, true)
		return
	}

	reply(ctx, ch, logger, job, delivery, generateResult{Success: true, Schedule: schedule})
	_ = delivery.Ack(false)
}

func reply(ctx context.Context, ch *amqp.Channel, logger *zap.Logger, job generateJob, delivery amqp.Delivery, result generateResult) {
	if job.ReplyTo == "" {
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		logger.Error("Failed to marshal result", zap.Error(err))
		return
	}

	err = ch.PublishWithContext(ctx,
		"", // default exchange
		job.ReplyTo,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: delivery.CorrelationId,
			Body:          body,
		})
	if err != nil {
		logger.Error("Failed to publish result", zap.String("reply_to", job.ReplyTo), zap.Error(err))
	}
}
