package notify

import (
	"fmt"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/panjf2000/ants/v2"
)

// templates 通知模板，占位符由 data 填充
var templates = map[string]string{
	"application_submitted":  "Your application for %s has been received and is awaiting review.",
	"status_changed":         "The application for %s moved to status %s.",
	"introduction_requested": "Investor %s requested an introduction to %s.",
	"introduction_decided":   "Your introduction request was %s.",
	"introduction_backlog":   "%s introduction requests are waiting for a decision.",
}

// Dispatcher 通知分发器，协程池异步发送
// 发送失败只记日志，绝不向调用方传播
type Dispatcher struct {
	pool *ants.Pool
	from string
}

// NewDispatcher 创建通知分发器
func NewDispatcher(cfg config.NotifyConfig) (*Dispatcher, error) {
	size := cfg.PoolSize
	if size <= 0 {
		size = 8
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create notify pool: %w", err)
	}
	return &Dispatcher{pool: pool, from: cfg.From}, nil
}

// Notify 按模板异步发送通知
func (d *Dispatcher) Notify(template string, recipient string, data map[string]string) {
	if recipient == "" {
		return
	}
	err := d.pool.Submit(func() {
		d.send(template, recipient, data)
	})
	if err != nil {
		// 池满时降级为同步发送
		logger.Warn("Notify pool rejected task, sending inline: %v", err)
		d.send(template, recipient, data)
	}
}

// send 渲染并投递单条通知
// 邮件通道由部署方对接，这里只记录投递日志
func (d *Dispatcher) send(template, recipient string, data map[string]string) {
	message := renderTemplate(template, data)
	logger.Info("Notification [%s] from %s to %s: %s", template, d.from, recipient, message)
}

// Close 关闭协程池
func (d *Dispatcher) Close() {
	d.pool.Release()
}

// renderTemplate 渲染通知正文，未知模板原样带出数据
func renderTemplate(template string, data map[string]string) string {
	switch template {
	case "application_submitted":
		return fmt.Sprintf(templates[template], data["companyName"])
	case "status_changed":
		return fmt.Sprintf(templates[template], data["companyName"], data["status"])
	case "introduction_requested":
		return fmt.Sprintf(templates[template], data["investor"], data["companyName"])
	case "introduction_decided":
		return fmt.Sprintf(templates[template], data["status"])
	case "introduction_backlog":
		return fmt.Sprintf(templates[template], data["count"])
	default:
		return fmt.Sprintf("%s %v", template, data)
	}
}
