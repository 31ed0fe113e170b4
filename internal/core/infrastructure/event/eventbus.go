// Package event 基于 asaskevich/EventBus 的进程内事件总线
package event

import (
	evbus "github.com/asaskevich/EventBus"

	eventconfig "github.com/weisyn/hellocontract/internal/config/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
)

// EventBus 事件总线实现；配置禁用时所有操作静默成功
type EventBus struct {
	bus    evbus.Bus
	config *eventconfig.Config
	logger log.Logger
}

var _ event.EventBus = (*EventBus)(nil)

// New 创建事件总线；config 为 nil 时使用默认配置
func New(config *eventconfig.Config, logger log.Logger) *EventBus {
	if config == nil {
		config = eventconfig.New(nil)
	}
	return &EventBus{
		bus:    evbus.New(),
		config: config,
		logger: logger,
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	if !eb.config.IsEnabled() {
		return nil
	}
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// Publish 实现发布
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if !eb.config.IsEnabled() {
		return
	}
	if eb.logger != nil {
		eb.logger.Debugf("发布事件: %s", eventType)
	}
	eb.bus.Publish(string(eventType), args...)
}

// HasCallback 检查是否有回调
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	if !eb.config.IsEnabled() {
		return false
	}
	return eb.bus.HasCallback(string(eventType))
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	if !eb.config.IsEnabled() {
		return
	}
	eb.bus.WaitAsync()
}
