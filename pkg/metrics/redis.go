package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// RedisMetrics counts failed Redis commands. A missing key is not a failure.
type RedisMetrics struct {
	errors *prometheus.CounterVec
}

func NewRedisMetrics(reg prometheus.Registerer) *RedisMetrics {
	if reg == nil {
		return &RedisMetrics{}
	}
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Failed Redis commands, by command name. Transactions count as multi.",
	}, []string{"command"})
	reg.MustRegister(errs)
	return &RedisMetrics{errors: errs}
}

// Hook returns a go-redis hook feeding the error counter.
func (m *RedisMetrics) Hook() redis.Hook {
	return redisHook{m: m}
}

func (m *RedisMetrics) observe(command string, err error) {
	if m == nil || m.errors == nil || err == nil || errors.Is(err, redis.Nil) {
		return
	}
	m.errors.WithLabelValues(normalizeLabel(command)).Inc()
}

type redisHook struct{ m *RedisMetrics }

func (h redisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h redisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if !connectionSetup[cmd.Name()] {
			h.m.observe(cmd.Name(), err)
		}
		return err
	}
}

func (h redisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if isConnectionSetup(cmds) {
			return err
		}
		name := "pipeline"
		if len(cmds) > 0 && cmds[0].Name() == "multi" {
			name = "multi"
		}
		h.m.observe(name, err)
		return err
	}
}

// connectionSetup names the commands go-redis sends while initialising a
// pooled connection. It tolerates their errors, so they are not failures.
var connectionSetup = map[string]bool{
	"hello":    true,
	"auth":     true,
	"select":   true,
	"client":   true,
	"readonly": true,
}

func isConnectionSetup(cmds []redis.Cmder) bool {
	if len(cmds) == 0 {
		return true
	}
	for _, cmd := range cmds {
		if !connectionSetup[cmd.Name()] {
			return false
		}
	}
	return true
}
