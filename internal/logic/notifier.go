package logic

// Notifier 通知分发器接口，实现方负责异步发送
// 发送失败只记日志，不向调用方传播
type Notifier interface {
	Notify(template string, recipient string, data map[string]string)
}

// notify 空值安全的通知辅助函数
func notify(n Notifier, template, recipient string, data map[string]string) {
	if n == nil || recipient == "" {
		return
	}
	n.Notify(template, recipient, data)
}
