// Package webhook posts sip_config change events to configured URLs.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/sipconfig/internal/sipconfig/conf"
	"github.com/sjzar/sipconfig/internal/sipconfig/watch"
)

type Config interface {
	GetWebhook() *conf.Webhook
}

type Service struct {
	hooks  []*Hook
	client *http.Client
}

func New(config Config) *Service {
	wc := config.GetWebhook()
	s := &Service{
		client: &http.Client{Timeout: wc.GetTimeout()},
	}
	if wc == nil {
		return s
	}

	for _, item := range wc.Items {
		if item == nil || item.Disabled {
			continue
		}
		if item.URL == "" {
			log.Error().Msg("webhook item without url skipped")
			continue
		}
		s.hooks = append(s.hooks, &Hook{conf: item, client: s.client})
	}
	return s
}

func (s *Service) Len() int {
	return len(s.hooks)
}

// Notify posts ev to every hook concurrently and waits for all of them.
func (s *Service) Notify(ctx context.Context, ev watch.Event) {
	if len(s.hooks) == 0 {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("marshal webhook payload failed")
		return
	}

	var wg sync.WaitGroup
	for _, hook := range s.hooks {
		wg.Add(1)
		go func(h *Hook) {
			defer wg.Done()
			if err := h.Do(ctx, body); err != nil {
				log.Error().Err(err).Str("url", h.conf.URL).Msg("post sip config change failed")
			}
		}(hook)
	}
	wg.Wait()
}

type Hook struct {
	conf   *conf.WebhookItem
	client *http.Client
}

func (h *Hook) Do(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.conf.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range h.conf.Headers {
		req.Header.Set(k, v)
	}

	log.Debug().Msgf("post sip config change to %s, body: %s", h.conf.URL, string(body))
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
