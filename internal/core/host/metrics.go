package host

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Metrics 宿主执行指标
//
// 只暴露两项：入口调用计数（按阶段与结果码）和交易执行耗时。
type Metrics struct {
	entrypoints *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics 创建并注册指标；reg 为 nil 时不注册（测试用）
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		entrypoints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hellocontract",
				Subsystem: "host",
				Name:      "entrypoint_total",
				Help:      "Contract entrypoint invocations by kind and result code.",
			},
			[]string{"kind", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hellocontract",
				Subsystem: "host",
				Name:      "transaction_duration_seconds",
				Help:      "Transaction execution time from first metadata call to commit.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.entrypoints, err = register(reg, m.entrypoints); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// register 注册收集器；已注册时复用现有实例
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveEntrypoint 记录一次入口调用
func (m *Metrics) ObserveEntrypoint(kind types.EntrypointKind, err error) {
	if m == nil {
		return
	}
	m.entrypoints.WithLabelValues(kind.String(), abi.CodeOf(err).String()).Inc()
}

// ObserveTransaction 记录一笔交易的执行耗时
func (m *Metrics) ObserveTransaction(start time.Time, err error) {
	if m == nil {
		return
	}
	result := "accepted"
	if err != nil {
		result = "rejected"
	}
	m.duration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}
