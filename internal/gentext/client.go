// Package gentext asks a generative-text API for customer-facing copy. Every
// failure path, including an absent key, degrades to a fixed template.
package gentext

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	applog "maktaba/internal/log"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func New(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point at a stub server.
func NewWithBaseURL(apiKey, model, baseURL string) *Client {
	c := New(apiKey, model)
	c.baseURL = baseURL
	return c
}

func fallbackEmail(orderID, customerName string) string {
	return fmt.Sprintf(`عزيزي %s،

يسعدنا إعلامك بأن طلبك رقم %s أصبح جاهزاً للاستلام من المكتبة الإلكترونية.

يمكنك الحضور لاستلامه في أي وقت خلال ساعات العمل.

شكراً لتسوقك معنا!

مع تحيات،
فريق المكتبة الإلكترونية`, customerName, orderID)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// OrderReadyEmail produces the Arabic order-ready email body. Missing key or
// any request failure returns the template instead; errors are logged only.
func (c *Client) OrderReadyEmail(ctx context.Context, orderID, customerName string) string {
	if c == nil || c.apiKey == "" {
		return fallbackEmail(orderID, customerName)
	}

	prompt := fmt.Sprintf(`اكتب بريدًا إلكترونيًا ودودًا واحترافيًا باللغة العربية لإعلام عميل بأن طلبه أصبح جاهزًا للاستلام.
- اسم العميل: %s
- رقم الطلب: %s
- اسم المتجر: المكتبة الإلكترونية
- يجب أن تكون الرسالة موجزة وواضحة.
- اذكر أن الدفع نقداً عند الاستلام.
- أنهِ الرسالة بتحية لطيفة.`, customerName, orderID)

	body, err := c.generate(ctx, prompt)
	if err != nil {
		applog.Error(nil, "gentext.generate.fail", err, map[string]any{"order_id": orderID})
		return fallbackEmail(orderID, customerName)
	}
	return body
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gentext: status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("gentext: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gentext: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
