package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	warningInterval   = 30 * time.Second
	cleanupInterval   = 10 * time.Minute
	inactiveThreshold = time.Hour
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	limiter       *rate.Limiter
	lastSeen      time.Time
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware limits each user to a token bucket of questions
type RateLimiterMiddleware struct {
	mu     sync.Mutex
	limits map[int64]*userLimit
	every  rate.Limit
	burst  int
	now    func() time.Time
	logger *zap.Logger
	sender Sender
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	sender Sender,
) *RateLimiterMiddleware {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 1
	}
	if burstSize <= 0 {
		burstSize = 1
	}

	rl := &RateLimiterMiddleware{
		limits: make(map[int64]*userLimit),
		every:  rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:  burstSize,
		now:    time.Now,
		logger: logger,
		sender: sender,
		stop:   make(chan struct{}),
	}

	go rl.cleanupInactiveUsers()

	return rl
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, ok := updateIDs(update)
	if !ok {
		next(update)
		return
	}

	allowed, warn := rl.allowRequest(userID)
	if !allowed {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		if warn > 0 {
			rl.sendRateLimitWarning(chatID, warn)
		}
		return
	}

	next(update)
}

// Stop ends the background cleanup
func (rl *RateLimiterMiddleware) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// allowRequest reports whether the user may proceed. When it may not, warn is the
// number of the warning to send, or zero if one was sent recently.
func (rl *RateLimiterMiddleware) allowRequest(userID int64) (allowed bool, warn int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limits[userID] = limit
	}
	limit.lastSeen = now

	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true, 0
	}

	if now.Sub(limit.lastWarningAt) <= warningInterval {
		return false, 0
	}

	limit.warningsSent++
	limit.lastWarningAt = now
	return false, limit.warningsSent
}

func rateLimitWarning(warningCount int) string {
	switch {
	case warningCount <= 1:
		return "⚠️ Too many questions. Please wait a moment."
	case warningCount == 2:
		return "⚠️ Rate limit exceeded. Please wait about 30 seconds before asking again."
	default:
		return "🛑 You are sending questions too often. Please wait a minute."
	}
}

func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	msg := tgbotapi.NewMessage(chatID, rateLimitWarning(warningCount))
	if _, err := rl.sender.Send(msg); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// cleanupInactiveUsers forgets users that have been quiet for an hour
func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictInactive()
		}
	}
}

func (rl *RateLimiterMiddleware) evictInactive() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		if now.Sub(limit.lastSeen) > inactiveThreshold {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter",
				zap.Int64("user_id", userID),
			)
		}
	}
}
