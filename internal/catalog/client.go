// Package catalog 外部商品目录（GET {base}/{id}）及其读穿缓存
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aiqfome-api/internal/domain"
)

const maxBody = 1 << 20

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Fetch 返回校验过的原始 JSON。
// 非 200、空 body、null、无法解析都算商品不存在；网络错误为 ErrCatalogUnavailable。
func (c *Client) Fetch(ctx context.Context, id int64) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("%w: catalog base url not configured", domain.ErrProductNotFound)
	}
	url := c.BaseURL + "/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBody))
		return nil, fmt.Errorf("%w: catalog status %d", domain.ErrProductNotFound, res.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return nil, fmt.Errorf("%w: empty catalog response", domain.ErrProductNotFound)
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProductNotFound, err)
	}
	if p.ID == 0 {
		return nil, fmt.Errorf("%w: catalog response without id", domain.ErrProductNotFound)
	}
	return body, nil
}
