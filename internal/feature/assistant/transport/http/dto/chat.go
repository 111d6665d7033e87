// Package dto はassistantフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// ChatRequest is the request body for the assistant chat endpoint.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
