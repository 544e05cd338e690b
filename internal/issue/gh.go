package issue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Client is the subset of GitHub issue operations the review workflow
// needs. The production implementation shells out to the gh CLI so the
// tool picks up whatever auth the runner already has.
type Client interface {
	Body(ctx context.Context, number int) (string, error)
	Assignees(ctx context.Context, number int) ([]string, error)
	LastComment(ctx context.Context, number int) (string, error)
	SetTitle(ctx context.Context, number int, title string) error
	Comment(ctx context.Context, number int, body string) error
	EditLastComment(ctx context.Context, number int, body string) error
	Assign(ctx context.Context, number int, user string) error
}

// GHClient drives the gh CLI against a single repository.
type GHClient struct {
	// Repo is the owner/name of the repository holding review issues.
	Repo string
}

func (c *GHClient) run(ctx context.Context, args ...string) ([]byte, error) {
	args = append(args, "--repo", c.Repo)
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("gh %s: %w: %s", args[0], err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.Bytes(), nil
}

func (c *GHClient) Body(ctx context.Context, number int) (string, error) {
	out, err := c.run(ctx, "issue", "view", strconv.Itoa(number), "--json", "body")
	if err != nil {
		return "", err
	}
	var payload struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return "", fmt.Errorf("parsing gh output: %w", err)
	}
	return payload.Body, nil
}

func (c *GHClient) Assignees(ctx context.Context, number int) ([]string, error) {
	out, err := c.run(ctx, "issue", "view", strconv.Itoa(number), "--json", "assignees")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Assignees []struct {
			Login string `json:"login"`
		} `json:"assignees"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("parsing gh output: %w", err)
	}
	var logins []string
	for _, a := range payload.Assignees {
		logins = append(logins, a.Login)
	}
	return logins, nil
}

func (c *GHClient) LastComment(ctx context.Context, number int) (string, error) {
	out, err := c.run(ctx, "issue", "view", strconv.Itoa(number), "--json", "comments")
	if err != nil {
		return "", err
	}
	var payload struct {
		Comments []struct {
			Body string `json:"body"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return "", fmt.Errorf("parsing gh output: %w", err)
	}
	if len(payload.Comments) == 0 {
		return "", nil
	}
	return payload.Comments[len(payload.Comments)-1].Body, nil
}

func (c *GHClient) SetTitle(ctx context.Context, number int, title string) error {
	_, err := c.run(ctx, "issue", "edit", strconv.Itoa(number), "--title", title)
	return err
}

func (c *GHClient) Comment(ctx context.Context, number int, body string) error {
	_, err := c.run(ctx, "issue", "comment", strconv.Itoa(number), "--body", body)
	return err
}

func (c *GHClient) EditLastComment(ctx context.Context, number int, body string) error {
	_, err := c.run(ctx, "issue", "comment", strconv.Itoa(number), "--edit-last", "--body", body)
	return err
}

func (c *GHClient) Assign(ctx context.Context, number int, user string) error {
	_, err := c.run(ctx, "issue", "edit", strconv.Itoa(number), "--add-assignee", user)
	return err
}
