package persistence

import (
	"context"

	"loyalty-rules/internal/rules/domain/repository"
	"loyalty-rules/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisDecisionLog appends every authorization decision to a Redis Stream.
// The stream is the audit trail consumed by out-of-band tooling; it is never
// read back on the decision path.
type RedisDecisionLog struct {
	client *redis.Client
	stream string
	logger logger.Logger
}

// NewRedisDecisionLog creates a new Redis-backed decision log
func NewRedisDecisionLog(client *redis.Client, stream string, log logger.Logger) *RedisDecisionLog {
	return &RedisDecisionLog{
		client: client,
		stream: stream,
		logger: log,
	}
}

// Record appends one decision event to the stream.
func (r *RedisDecisionLog) Record(ctx context.Context, event *repository.DecisionEvent) error {
	_, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"decisionId": event.ID,
			"uid":        event.UID,
			"collection": event.Collection,
			"documentId": event.DocumentID,
			"operation":  string(event.Operation),
			"decision":   string(event.Decision),
			"cause":      string(event.Cause),
			"reason":     event.Reason,
			"timestamp":  event.Timestamp.UnixNano(),
		},
	}).Result()

	if err != nil {
		r.logger.Error("Failed to append decision to Redis stream",
			zap.String("stream", r.stream),
			zap.String("decisionId", event.ID),
			zap.Error(err))
		return err
	}

	r.logger.Debug("Decision appended to audit stream",
		zap.String("stream", r.stream),
		zap.String("decisionId", event.ID),
		zap.String("decision", string(event.Decision)))

	return nil
}
