package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
)

// SessionRegistry marks a player's active quiz in Redis so that two
// processes sharing the same database cannot run quizzes for one player at
// the same time. The marker expires after ttl in case a process dies
// mid-quiz.
type SessionRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRegistry(client *redis.Client, ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{client: client, ttl: ttl}
}

func (r *SessionRegistry) Acquire(ctx context.Context, playerID int64, sessionID string) error {
	ok, err := r.client.SetNX(ctx, r.key(playerID), sessionID, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire session slot: %w", err)
	}
	if !ok {
		return app.ErrSessionActive
	}
	return nil
}

// releaseScript deletes the marker only if it still names the releasing session.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release frees the player's slot unless the marker already belongs to a
// newer session, which happens after the old marker expired.
func (r *SessionRegistry) Release(ctx context.Context, playerID int64, sessionID string) error {
	if err := releaseScript.Run(ctx, r.client, []string{r.key(playerID)}, sessionID).Err(); err != nil {
		return fmt.Errorf("release session slot: %w", err)
	}
	return nil
}

func (r *SessionRegistry) key(playerID int64) string {
	return "quiz:session:" + strconv.FormatInt(playerID, 10)
}
