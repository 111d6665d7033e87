// Package vision はGoogle Cloud Vision APIを使用したOCRクライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"journal_backend/internal/feature/tradescan/usecase"
)

// VisionTextExtractor はGoogle Cloud Vision APIを使用して画像からテキストを抽出します。
type VisionTextExtractor struct {
	client *gvision.ImageAnnotatorClient
}

// VisionTextExtractorがTextExtractorを実装していることをコンパイル時に検証します。
var _ usecase.TextExtractor = (*VisionTextExtractor)(nil)

// NewVisionTextExtractor はADCを使用してVisionTextExtractorの新しいインスタンスを生成します。
func NewVisionTextExtractor(ctx context.Context) (*VisionTextExtractor, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionTextExtractor{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionTextExtractor) Close() error {
	return v.client.Close()
}

// ExtractText は画像バイト列から全テキストを抽出します。
func (v *VisionTextExtractor) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}

	if resp.Responses[0].Error != nil {
		return "", fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	// TextAnnotationsの先頭要素は画像全体の連結テキスト
	annotations := resp.Responses[0].TextAnnotations
	if len(annotations) == 0 {
		return "", nil
	}
	return annotations[0].Description, nil
}
