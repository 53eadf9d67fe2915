package request

// S3UploadRequest 上传 JSON 文件请求
type S3UploadRequest struct {
	Key     string                 `json:"key" binding:"required" example:"users/u-1001/personal.json"`
	Content map[string]interface{} `json:"content" binding:"required"`
}

// S3UpdateRequest 合并更新 JSON 文件请求
type S3UpdateRequest struct {
	Content map[string]interface{} `json:"content" binding:"required"`
}

// SNSPublishRequest 发布通知请求
type SNSPublishRequest struct {
	Subject *string `json:"subject" example:"Weekly report"`
	Message string  `json:"message" binding:"required" example:"report generated"`
}
