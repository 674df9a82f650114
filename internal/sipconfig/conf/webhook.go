package conf

import "time"

type Webhook struct {
	Timeout time.Duration  `mapstructure:"timeout" json:"timeout"`
	Items   []*WebhookItem `mapstructure:"items" json:"items"`
}

type WebhookItem struct {
	URL      string            `mapstructure:"url" json:"url"`
	Headers  map[string]string `mapstructure:"headers" json:"headers,omitempty"`
	Disabled bool              `mapstructure:"disabled" json:"disabled"`
}

func (w *Webhook) GetTimeout() time.Duration {
	if w == nil || w.Timeout <= 0 {
		return DefaultWebhookTimeout
	}
	return w.Timeout
}
