package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// FileRef 事件中携带的文件记录快照.
type FileRef struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentID  string `json:"parent_id"`
	IsPublic  bool   `json:"is_public"`
	LocalPath string `json:"local_path,omitempty"`
}

// FileCreatedPayload 文件记录创建完成.
type FileCreatedPayload struct {
	File FileRef `json:"file"`
	Size int     `json:"size,omitempty"`
}

// FileVisibilityPayload 文件公开状态变更.
type FileVisibilityPayload struct {
	File FileRef `json:"file"`
	// ActorID 执行操作的用户，publish_scope=any 时可能不是所有者.
	ActorID string `json:"actor_id"`
}
