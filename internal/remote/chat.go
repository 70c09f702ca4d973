package remote

import (
	"context"
	"net/url"
	"strings"
)

type chatPart struct {
	Text string `json:"text"`
}

type chatContent struct {
	Parts []chatPart `json:"parts"`
}

type chatRequest struct {
	Contents []chatContent `json:"contents"`
}

type chatResponse struct {
	Candidates []struct {
		Content chatContent `json:"content"`
	} `json:"candidates"`
}

// ChatClient sends single-turn prompts to a generateContent endpoint.
type ChatClient struct {
	base
	url string
	key string
}

func NewChatClient(endpoint, key string, opts Options) *ChatClient {
	return &ChatClient{base: newBase("chat", opts), url: endpoint, key: key}
}

// Complete returns the text of the first candidate.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	endpoint := c.url
	if c.key != "" {
		u, err := url.Parse(c.url)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("key", c.key)
		u.RawQuery = q.Encode()
		endpoint = u.String()
	}

	req := chatRequest{Contents: []chatContent{{Parts: []chatPart{{Text: prompt}}}}}
	var resp chatResponse
	if err := c.postJSON(ctx, endpoint, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
