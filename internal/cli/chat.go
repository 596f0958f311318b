package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"roteiro/internal/modules/chat"
	"roteiro/internal/service"
)

func newChatCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
		plain   bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a running roteiro server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &chatClient{
				baseURL: strings.TrimRight(server, "/"),
				httpc:   &http.Client{Timeout: timeout},
			}
			return runChat(cmd.Context(), c, cmd.InOrStdin(), cmd.OutOrStdout(), plain)
		},
	}
	cmd.Flags().StringVar(&server, "server", "http://localhost:5000", "roteiro server base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 90*time.Second, "per-request timeout")
	cmd.Flags().BoolVar(&plain, "plain", false, "print itineraries without terminal styling")
	return cmd
}

type chatClient struct {
	baseURL string
	httpc   *http.Client
}

type generateResp struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (c *chatClient) generate(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(map[string]string{"user_input": input})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate_response", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var out generateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error == "" {
			out.Error = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("server error (%d): %s", resp.StatusCode, out.Error)
	}
	return out.Response, nil
}

// runChat reads one message per line until EOF or "sair".
func runChat(ctx context.Context, c *chatClient, in io.Reader, out io.Writer, plain bool) error {
	fmt.Fprintf(out, "%s\n\n> ", chat.GreetingText)

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "sair" || line == "exit" {
			break
		}
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}

		text, err := c.generate(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "%s (%v)\n\n> ", chat.ErrorText, err)
			continue
		}

		reply := service.Classify(text)
		if reply.Kind == service.KindItinerary {
			if err := writeItinerary(out, reply.Itinerary, plain); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, reply.Text)
		}
		fmt.Fprint(out, "\n> ")
	}
	return sc.Err()
}
