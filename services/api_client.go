package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// 响应体读取上限
const maxBodyBytes = 1 << 20

// APIClient 游戏服务端的 HTTP 传输封装，进程内只创建一次
type APIClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewAPIClient 创建带超时的客户端
func NewAPIClient(baseURL string, timeout time.Duration, logger *zap.Logger) *APIClient {
	return NewAPIClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, logger)
}

// NewAPIClientWithHTTP 使用外部提供的 http.Client
func NewAPIClientWithHTTP(baseURL string, httpClient *http.Client, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  orNop(logger),
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Close 释放空闲连接
func (c *APIClient) Close() {
	c.http.CloseIdleConnections()
	c.logger.Debug("连接已释放", zap.String("server", c.baseURL))
}

// call 发送一次请求并对结果分类：
// 传输失败返回 *NetworkError，非 200 返回 *ApplicationError，200 时解码到 out
func (c *APIClient) call(op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encodage de la requête: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("请求失败",
			zap.String("op", op),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	c.logger.Debug("请求完成",
		zap.String("op", op),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return newApplicationError(op, resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ApplicationError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: "réponse du serveur illisible",
			Err:     fmt.Errorf("%w: %v", errUndecodableBody, err),
		}
	}
	return nil
}

// errUndecodableBody 200 响应体无法解码；请求本身已被服务端接受
var errUndecodableBody = errors.New("corps de réponse illisible")

func newApplicationError(op string, status int, raw []byte) *ApplicationError {
	appErr := &ApplicationError{Op: op, Status: status}
	var payload models.ErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		appErr.Message = payload.Error
	} else {
		appErr.Message = http.StatusText(status)
	}
	return appErr
}

// IsTimeout 判断网络错误是否为超时
func IsTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}
