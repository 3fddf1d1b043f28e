package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// OCRService 文字辨识黑盒：给一张图，还一串按版面顺序排好的文本行
type OCRService interface {
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}

// PaddleOCRClient 调 PaddleOCR serving 服务的 HTTP 客户端
type PaddleOCRClient struct {
	Endpoint string
	client   *http.Client
}

func NewPaddleOCRClient(endpoint string, timeout time.Duration) *PaddleOCRClient {
	return &PaddleOCRClient{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// serving 接口的请求/响应结构
type ocrRequest struct {
	Images []string `json:"images"`
}

type ocrLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type ocrResponse struct {
	Status  string      `json:"status"`
	Results [][]ocrLine `json:"results"`
}

func (c *PaddleOCRClient) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("读取图片失败: %w", err)
	}

	body, err := json.Marshal(ocrRequest{
		Images: []string{base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR 服务请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR 服务返回 %d", resp.StatusCode)
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("OCR 响应解析失败: %w", err)
	}

	var lines []string
	for _, page := range out.Results {
		for _, line := range page {
			lines = append(lines, line.Text)
		}
	}
	return lines, nil
}
