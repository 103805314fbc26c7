// Package circuitbreaker 熔断器
//
// 用于保护订单事件发布：消息代理不可用时，结账流程不应每次都等待连接超时。
// 三种状态：
//   - CLOSED：正常放行，统计失败
//   - OPEN：快速失败，Timeout后进入HALF_OPEN
//   - HALF_OPEN：放行少量探测请求，成功则关闭，失败则重新打开
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开，请求未执行
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许的探测请求数
	MaxRequests uint32
	// Interval 关闭状态下的统计窗口，到期清零
	Interval time.Duration
	// Timeout 打开状态持续时间
	Timeout time.Duration
	// ReadyToTrip 关闭状态下每次失败后调用，返回true时打开熔断器
	ReadyToTrip func(counts Counts) bool
}

// DefaultConfig 连续失败5次，或窗口内至少10次请求且失败率达到60%时熔断，30秒后探测
func DefaultConfig() Config {
	return Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			return counts.Requests >= 10 && counts.FailureRate() >= 0.6
		},
	}
}

// Counts 当前统计窗口的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器，可并发使用
type CircuitBreaker struct {
	name   string
	config Config

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃旧窗口内请求的结果
	counts     Counts
	expiry     time.Time

	onStateChange func(name string, from, to State)
	onResult      func(name string, state State, result string)
}

// NewCircuitBreaker 零值配置项使用DefaultConfig对应的值
func NewCircuitBreaker(name string, config Config) *CircuitBreaker {
	def := DefaultConfig()
	if config.MaxRequests == 0 {
		config.MaxRequests = def.MaxRequests
	}
	if config.Interval <= 0 {
		config.Interval = def.Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.ReadyToTrip == nil {
		config.ReadyToTrip = def.ReadyToTrip
	}

	return &CircuitBreaker{
		name:   name,
		config: config,
		state:  StateClosed,
		expiry: time.Now().Add(config.Interval),
	}
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// OnStateChange 状态切换回调（日志）
func (cb *CircuitBreaker) OnStateChange(fn func(name string, from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// OnResult 每次调用结束后的回调（指标），result为success/failure/rejected
func (cb *CircuitBreaker) OnResult(fn func(name string, state State, result string)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onResult = fn
}

// Execute 在熔断保护下执行req
// 熔断器打开时不执行req，直接返回ErrOpenState；ctx已取消时同样不执行
func (cb *CircuitBreaker) Execute(ctx context.Context, req func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	generation, err := cb.beforeRequest()
	if err != nil {
		cb.report("rejected")
		return err
	}

	err = req(ctx)
	cb.afterRequest(generation, err == nil)
	if err != nil {
		cb.report("failure")
	} else {
		cb.report("success")
	}
	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(time.Now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.config.MaxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.config.ReadyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState 处理到期：关闭状态清零窗口，打开状态转半开
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = now.Add(cb.config.Interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts = Counts{}

	switch state {
	case StateClosed:
		cb.expiry = now.Add(cb.config.Interval)
	case StateOpen:
		cb.expiry = now.Add(cb.config.Timeout)
	default:
		cb.expiry = time.Time{}
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

func (cb *CircuitBreaker) report(result string) {
	cb.mu.Lock()
	fn, state := cb.onResult, cb.state
	cb.mu.Unlock()

	if fn != nil {
		fn(cb.name, state, result)
	}
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 当前统计窗口的计数
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}
