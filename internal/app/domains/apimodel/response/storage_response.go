package response

// MessageResponse 通用消息响应
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

// S3FileResponse S3 文件内容
type S3FileResponse struct {
	Key     string                 `json:"key"`
	Content map[string]interface{} `json:"content"`
}

// SNSPublishResponse 发布结果
type SNSPublishResponse struct {
	MessageID string `json:"message_id"`
}
