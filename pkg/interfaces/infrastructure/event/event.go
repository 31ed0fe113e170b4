// Package event 提供进程内事件总线接口定义
package event

// EventType 事件主题
type EventType string

// EventBus 进程内事件总线
//
// handler 为任意函数，参数须与发布时的参数一一对应。
type EventBus interface {
	// Subscribe 同步订阅，Publish 返回前处理完成
	Subscribe(eventType EventType, handler interface{}) error

	// SubscribeAsync 异步订阅；transactional 为 true 时同一处理器串行执行
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error

	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error

	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})

	// HasCallback 主题上是否存在订阅者
	HasCallback(eventType EventType) bool

	// WaitAsync 等待异步处理器全部完成
	WaitAsync()
}
