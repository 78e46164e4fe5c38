package summary

import "context"

type StubClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (s *StubClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
