package client

import "context"

// AssistantClient talks to the scholarship assistant.
type AssistantClient struct {
	client *Client
}

// Ask sends message and returns the assistant's reply.
func (a *AssistantClient) Ask(ctx context.Context, message string) (*Reply, error) {
	var out Reply
	req := struct {
		Message string `json:"message"`
	}{message}
	if err := a.client.post(ctx, "/api/v1/assistant/messages", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns the conversation, starting with the welcome message.
func (a *AssistantClient) History(ctx context.Context) ([]Message, error) {
	var out struct {
		Messages []Message `json:"messages"`
	}
	if err := a.client.get(ctx, "/api/v1/assistant/history", &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// ClearHistory forgets the conversation.
func (a *AssistantClient) ClearHistory(ctx context.Context) error {
	return a.client.delete(ctx, "/api/v1/assistant/history")
}

//Personal.AI order the ending
