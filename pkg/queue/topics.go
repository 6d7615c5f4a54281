// Package queue 定义消息主题常量，供发布/订阅使用.
package queue

// 主题命名规范：fv.<域>.<动作>，尽量稳定且向后兼容.

const (
	// 文件记录领域.
	TopicFileCreated     = "fv.file.created"     // 文件记录已持久化（非目录时内容已写入）
	TopicFilePublished   = "fv.file.published"   // 文件被设为公开
	TopicFileUnpublished = "fv.file.unpublished" // 文件被设为私有
)

// FileTopics 文件相关主题集合.
var FileTopics = []string{
	TopicFileCreated, TopicFilePublished, TopicFileUnpublished,
}
