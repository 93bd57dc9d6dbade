package transport

import (
	"fmt"
	"net/url"

	"git.solsynth.dev/hypernet/meeting/pkg/internal/models"
)

type threadResponse struct {
	Order []string               `json:"order"`
	Posts map[string]models.Post `json:"posts"`
}

// ResolveThreadChannel finds the channel a thread belongs to.
// The client must point at the chat server, not at the plugin.
func (v *Client) ResolveThreadChannel(threadID string) (string, error) {
	if len(threadID) == 0 {
		return "", fmt.Errorf("thread id is required")
	}

	var resp threadResponse
	if err := v.Get(fmt.Sprintf("/api/v4/posts/%s/thread", url.PathEscape(threadID)), &resp); err != nil {
		return "", err
	}

	if root, ok := resp.Posts[threadID]; ok && len(root.ChannelID) > 0 {
		return root.ChannelID, nil
	}
	for _, id := range resp.Order {
		if post, ok := resp.Posts[id]; ok && len(post.ChannelID) > 0 {
			return post.ChannelID, nil
		}
	}
	return "", fmt.Errorf("thread %s has no posts", threadID)
}
